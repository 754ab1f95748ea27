//nolint:testpackage // Tests require internal access for thorough testing
package locale

import (
	"strings"
	"testing"
	"time"
)

func TestLongDate(t *testing.T) {
	d := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC) // Monday

	tests := []struct {
		locale string
		want   string
	}{
		{"en-GB", "Mon, 5 January 2026"},
		{"en_US", "Mon, January 5, 2026"},
		{"", "Mon, 5 January 2026"},
		{"not a locale!", "Mon, 5 January 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := LongDate(tt.locale, d); got != tt.want {
				t.Errorf("LongDate(%q) = %q, want %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestLongDateTranslated(t *testing.T) {
	d := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		locale string
		want   string
	}{
		{"de", "5. Januar 2026"},
		{"fr_FR", "5 janvier 2026"},
		{"es", "5 de enero de 2026"},
		{"it-IT", "5 gennaio 2026"},
		{"nl", "5 januari 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			if got := LongDate(tt.locale, d); !strings.Contains(got, tt.want) {
				t.Errorf("LongDate(%q) = %q, want it to contain %q", tt.locale, got, tt.want)
			}
		})
	}
}

func TestMonthNames(t *testing.T) {
	if got := Month("de-AT", time.March); got != "März" {
		t.Errorf("Month(de-AT, March) = %q, want März", got)
	}
	if got := Month("pt-BR", time.July); got != "julho" && got != "Julho" {
		t.Errorf("Month(pt-BR, July) = %q, want julho", got)
	}
	if got := ShortMonth("en", time.September); got != "Sep" {
		t.Errorf("ShortMonth(en, September) = %q, want Sep", got)
	}
	if got := Weekday("en-GB", time.Sunday); got != "Sun" {
		t.Errorf("Weekday(en-GB, Sunday) = %q, want Sun", got)
	}
	if got := Weekday("en-GB", time.Saturday); got != "Sat" {
		t.Errorf("Weekday(en-GB, Saturday) = %q, want Sat", got)
	}
}
