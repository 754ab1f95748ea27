// Package timeaxis maps instants onto the horizontal pixel axis of a chart.
//
// A Scale is an ordered sequence of tick dates with a fixed column width.
// Dates between two ticks are placed by linear interpolation inside that
// column; dates outside the sequence clamp to its edges.
package timeaxis

import (
	"math"
	"time"
)

// Scale converts between dates and x coordinates.
type Scale struct {
	Mode        ViewMode
	Dates       []time.Time
	ColumnWidth float64
	RTL         bool
}

// New builds a Scale. A non-positive column width selects the mode default.
func New(m ViewMode, dates []time.Time, columnWidth float64, rtl bool) Scale {
	if columnWidth <= 0 {
		columnWidth = DefaultColumnWidth(m)
	}
	return Scale{Mode: m, Dates: dates, ColumnWidth: columnWidth, RTL: rtl}
}

// Width is the full pixel width of the grid.
func (s Scale) Width() float64 {
	return float64(len(s.Dates)) * s.ColumnWidth
}

// X returns the pixel position of t. With fewer than two ticks every date
// maps to the origin.
func (s Scale) X(t time.Time) float64 {
	x := s.ltr(t)
	if s.RTL && len(s.Dates) >= 2 {
		return s.mirror(x)
	}
	return x
}

func (s Scale) ltr(t time.Time) float64 {
	n := len(s.Dates)
	if n < 2 {
		return 0
	}
	if !t.After(s.Dates[0]) {
		return 0
	}
	if !t.Before(s.Dates[n-1]) {
		return float64(n-1) * s.ColumnWidth
	}

	// first tick strictly after t; the bracketing pair is (i-1, i)
	i := 1
	for i < n-1 && !s.Dates[i].After(t) {
		i++
	}
	lo, hi := s.Dates[i-1], s.Dates[i]
	var frac float64
	if span := hi.Sub(lo); span > 0 {
		frac = float64(t.Sub(lo)) / float64(span)
	}
	return (float64(i-1) + frac) * s.ColumnWidth
}

// mirror reflects a left-to-right coordinate for right-to-left layouts.
// Applying it twice yields the original value.
func (s Scale) mirror(x float64) float64 {
	return float64(len(s.Dates)-1)*s.ColumnWidth - x + s.ColumnWidth
}

// DateAt is the inverse of X. When snap is positive the result is rounded
// to the nearest multiple of snap counted from the tick that starts the
// column under x.
func (s Scale) DateAt(x float64, snap time.Duration) time.Time {
	n := len(s.Dates)
	switch n {
	case 0:
		return time.Time{}
	case 1:
		return s.Dates[0]
	}
	if s.RTL {
		x = s.mirror(x)
	}
	if x <= 0 {
		return s.Dates[0]
	}

	pos := x / s.ColumnWidth
	i := int(math.Floor(pos))
	if i >= n-1 {
		return s.Dates[n-1]
	}
	lo, hi := s.Dates[i], s.Dates[i+1]
	offset := time.Duration((pos - float64(i)) * float64(hi.Sub(lo)))
	if snap > 0 {
		offset = time.Duration(math.Round(float64(offset)/float64(snap))) * snap
	}
	return lo.Add(offset)
}

// XStep converts a time step into the pixel distance it covers, using the
// first column as reference. Degenerate scales return 0.
func (s Scale) XStep(timeStep time.Duration) float64 {
	if len(s.Dates) < 2 {
		return 0
	}
	span := s.Dates[1].Sub(s.Dates[0])
	if span <= 0 {
		return 0
	}
	return float64(timeStep) / float64(span) * s.ColumnWidth
}

// TodayColumn returns the left edge of the column containing now.
func (s Scale) TodayColumn(now time.Time) (float64, bool) {
	for i := 0; i+1 < len(s.Dates); i++ {
		if !now.Before(s.Dates[i]) && now.Before(s.Dates[i+1]) {
			x := float64(i) * s.ColumnWidth
			if s.RTL {
				// left edge of the mirrored column
				x = s.mirror(x) - s.ColumnWidth
			}
			return x, true
		}
	}
	return 0, false
}
