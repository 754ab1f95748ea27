package timeaxis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abatilo/gantt/internal/locale"
)

// Column is one header cell of the calendar.
type Column struct {
	X      float64
	Date   time.Time
	Top    string
	Bottom string
}

// TopLabel is the coarse grouping label shown above a tick.
func TopLabel(m ViewMode, t time.Time, loc string) string {
	switch m {
	case Year, QuarterYear, Month:
		return strconv.Itoa(t.Year())
	case Week, Day:
		return fmt.Sprintf("%s %d", locale.Month(loc, t.Month()), t.Year())
	default:
		return locale.LongDate(loc, t)
	}
}

// BottomLabel is the per-column label of a tick.
func BottomLabel(m ViewMode, t time.Time, loc string) string {
	switch m {
	case Year:
		return strconv.Itoa(t.Year())
	case QuarterYear:
		return fmt.Sprintf("Q%d", (int(t.Month())-1)/3+1)
	case Month:
		return locale.Month(loc, t.Month())
	case Week:
		_, w := t.ISOWeek()
		return fmt.Sprintf("W%02d", w)
	case Day:
		return fmt.Sprintf("%s, %d", locale.Weekday(loc, t.Weekday()), t.Day())
	default:
		return t.Format("15:04")
	}
}

// Header returns the labelled columns of s, one per tick, in tick order.
func (s Scale) Header(loc string) []Column {
	cols := make([]Column, 0, len(s.Dates))
	for i, d := range s.Dates {
		x := float64(i) * s.ColumnWidth
		if s.RTL {
			x = s.mirror(x) - s.ColumnWidth
		}
		cols = append(cols, Column{
			X:      x,
			Date:   d,
			Top:    TopLabel(s.Mode, d, loc),
			Bottom: BottomLabel(s.Mode, d, loc),
		})
	}
	return cols
}
