package bars

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"

	colorful "github.com/lucasb-eyer/go-colorful"
)

//nolint:gochecknoglobals // compiled once
var hslPattern = regexp.MustCompile(`(?i)^hsl\(\s*(\d+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*\)$`)

// Darken scales a color towards black by amount (0..1). Hex colors have each
// channel multiplied by 1-amount; hsl() colors have their lightness scaled.
// Anything else is returned unchanged.
func Darken(color string, amount float64) string {
	c := strings.TrimSpace(color)
	factor := 1 - amount

	if isHex(c) {
		rgb, err := colorful.Hex(c)
		if err != nil {
			return color
		}
		return colorful.Color{R: rgb.R * factor, G: rgb.G * factor, B: rgb.B * factor}.Clamped().Hex()
	}

	if m := hslPattern.FindStringSubmatch(c); m != nil {
		h, _ := strconv.ParseFloat(m[1], 64)
		s, errS := strconv.ParseFloat(m[2], 64)
		l, errL := strconv.ParseFloat(m[3], 64)
		if errS != nil || errL != nil {
			return color
		}
		nl := max(0, min(100, l*factor))
		return fmt.Sprintf("hsl(%s, %s%%, %s%%)", number(h), number(s), number(nl))
	}

	return color
}

// isHex reports whether c is a #rgb or #rrggbb color.
func isHex(c string) bool {
	if len(c) != 4 && len(c) != 7 || c[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(c[1:], 16, 32)
	return err == nil
}

// HashColor derives a stable hsl() color from key with 60% saturation and
// 50% lightness.
func HashColor(key string) string {
	var hash int32
	for _, unit := range utf16.Encode([]rune(key)) {
		hash = hash*31 + int32(unit)
	}
	hue := int64(hash)
	if hue < 0 {
		hue = -hue
	}
	return fmt.Sprintf("hsl(%d, 60%%, 50%%)", hue%360)
}

// number formats f with the shortest representation, dropping a zero fraction.
func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
