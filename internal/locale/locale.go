// Package locale formats date labels for a locale string such as "en-GB",
// "de" or the Java-style "fr_FR".
package locale

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

const (
	fallback          = monday.LocaleEnGB
	defaultLongLayout = "Mon, 2 January 2006"
)

//nolint:gochecknoglobals // built once from the supported locales
var (
	locales []monday.Locale
	matcher language.Matcher

	// longLayouts overrides the long date order, keyed by locale or base
	// language.
	longLayouts = map[string]string{
		string(monday.LocaleEnUS): "Mon, January 2, 2006",
		"de":                      "Mon., 2. January 2006",
		"fr":                      "Mon 2 January 2006",
		"es":                      "Mon, 2 de January de 2006",
	}
)

func init() {
	locales = []monday.Locale{fallback}
	tags := []language.Tag{language.BritishEnglish}
	for _, l := range monday.ListLocales() {
		if l == fallback {
			continue
		}
		tag, err := language.Parse(strings.ReplaceAll(string(l), "_", "-"))
		if err != nil {
			continue
		}
		locales = append(locales, l)
		tags = append(tags, tag)
	}
	matcher = language.NewMatcher(tags)
}

// resolve maps a locale string to the closest supported locale. Unknown or
// malformed locales fall back to British English.
func resolve(loc string) monday.Locale {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(loc), "_", "-"))
	if err != nil {
		return fallback
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(locales) {
		return fallback
	}
	return locales[idx]
}

func longLayout(l monday.Locale) string {
	if layout, ok := longLayouts[string(l)]; ok {
		return layout
	}
	base, _, _ := strings.Cut(string(l), "_")
	if layout, ok := longLayouts[base]; ok {
		return layout
	}
	return defaultLongLayout
}

// Month returns the full month name.
func Month(loc string, m time.Month) string {
	return monday.Format(time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC), "January", resolve(loc))
}

// ShortMonth returns the abbreviated month name.
func ShortMonth(loc string, m time.Month) string {
	return monday.Format(time.Date(2000, m, 1, 0, 0, 0, 0, time.UTC), "Jan", resolve(loc))
}

// Weekday returns the abbreviated weekday name.
func Weekday(loc string, d time.Weekday) string {
	// 2 January 2000 was a Sunday.
	return monday.Format(time.Date(2000, time.January, 2+int(d), 0, 0, 0, 0, time.UTC), "Mon", resolve(loc))
}

// LongDate formats t with weekday, day, full month and year, e.g.
// "Mon, 5 January 2026" for en-GB.
func LongDate(loc string, t time.Time) string {
	l := resolve(loc)
	return monday.Format(t, longLayout(l), l)
}
