package bars

import "fmt"

// RowY is the top of a bar of height barHeight centred in row index.
func RowY(index int, rowHeight, barHeight float64) float64 {
	return float64(index)*rowHeight + (rowHeight-barHeight)/2
}

// ProgressGeometry returns the fill rectangle's x and width for a bar
// spanning x1..x2. The fill grows from x1, or from x2 when rtl is set.
// A disabled fill has zero width anchored at its growing edge.
func ProgressGeometry(x1, x2, progress float64, rtl, enabled bool) (float64, float64) {
	if !enabled {
		if rtl {
			return x2, 0
		}
		return x1, 0
	}
	width := (x2 - x1) * progress * 0.01
	if rtl {
		return x2 - width, width
	}
	return x1, width
}

// ProgressPoint is the polygon of the progress handle triangle drawn under
// the fill edge at progressX.
func ProgressPoint(progressX, y, height float64) string {
	bottom := y + height
	return fmt.Sprintf("%s,%s,%s,%s,%s,%s",
		number(progressX-5), number(bottom),
		number(progressX+5), number(bottom),
		number(progressX), number(bottom-8.66))
}

// progressEdge is the x coordinate of the fill's moving edge.
func (b Bar) progressEdge(rtl bool) float64 {
	if rtl {
		return b.ProgressX
	}
	return b.ProgressX + b.ProgressWidth
}

// ProgressHandle returns the progress handle polygon for b.
func (b Bar) ProgressHandle(rtl bool) string {
	return ProgressPoint(b.progressEdge(rtl), b.Y, b.Height)
}
