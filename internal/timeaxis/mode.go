package timeaxis

import (
	"fmt"
	"strings"
	"time"
)

// ViewMode is the granularity of one chart column.
type ViewMode string

const (
	Hour        ViewMode = "Hour"
	QuarterDay  ViewMode = "Quarter Day"
	HalfDay     ViewMode = "Half Day"
	Day         ViewMode = "Day"
	Week        ViewMode = "Week"
	Month       ViewMode = "Month"
	QuarterYear ViewMode = "QuarterYear"
	Year        ViewMode = "Year"
)

// InvalidViewModeError indicates an unrecognized granularity name.
type InvalidViewModeError struct {
	Value string
}

func (e InvalidViewModeError) Error() string {
	return fmt.Sprintf("invalid view mode: %s (valid: hour, quarter-day, half-day, day, week, month, quarter-year, year)", e.Value)
}

// Modes lists every view mode from finest to coarsest.
func Modes() []ViewMode {
	return []ViewMode{Hour, QuarterDay, HalfDay, Day, Week, Month, QuarterYear, Year}
}

// ParseViewMode accepts a mode name case-insensitively, ignoring spaces,
// dashes and underscores ("quarter-day", "QuarterDay", "quarter day").
func ParseViewMode(s string) (ViewMode, error) {
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	for _, m := range Modes() {
		if strings.ReplaceAll(strings.ToLower(string(m)), " ", "") == key {
			return m, nil
		}
	}
	return "", InvalidViewModeError{Value: s}
}

// DefaultColumnWidth returns the column width in pixels used when the caller
// does not configure one. Coarser modes get wider columns so labels fit.
func DefaultColumnWidth(m ViewMode) float64 {
	switch m {
	case Year:
		return 350
	case Month, QuarterYear:
		return 300
	case Week:
		return 250
	default:
		return 65
	}
}

// step advances t by n columns of mode m using wall-clock arithmetic.
func step(t time.Time, m ViewMode, n int) time.Time {
	switch m {
	case Year:
		return t.AddDate(n, 0, 0)
	case QuarterYear:
		return t.AddDate(0, 3*n, 0)
	case Month:
		return t.AddDate(0, n, 0)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Day:
		return t.AddDate(0, 0, n)
	case HalfDay:
		return addHours(t, 12*n)
	case QuarterDay:
		return addHours(t, 6*n)
	default:
		return addHours(t, n)
	}
}

func addHours(t time.Time, h int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+h, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// align truncates t to the start of its column in mode m.
func align(t time.Time, m ViewMode) time.Time {
	y, mo, d := t.Date()
	loc := t.Location()
	switch m {
	case Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case QuarterYear:
		return time.Date(y, mo-(mo-1)%3, 1, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, loc)
	case Week:
		return monday(time.Date(y, mo, d, 0, 0, 0, 0, loc))
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case HalfDay:
		return time.Date(y, mo, d, t.Hour()-t.Hour()%12, 0, 0, 0, loc)
	case QuarterDay:
		return time.Date(y, mo, d, t.Hour()-t.Hour()%6, 0, 0, 0, loc)
	default:
		return time.Date(y, mo, d, t.Hour(), 0, 0, 0, loc)
	}
}

func startOfDay(t time.Time) time.Time {
	return align(t, Day)
}

// monday returns the Monday on or before t.
func monday(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -back)
}
