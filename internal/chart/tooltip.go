package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abatilo/gantt/internal/locale"
	"github.com/abatilo/gantt/internal/task"
)

// DefaultTooltip renders a task's name and dates, its duration in whole
// days rounded up, and its progress when there is any.
func DefaultTooltip(t task.Task, loc string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s - %s", t.Name, locale.LongDate(loc, t.Start), locale.LongDate(loc, t.End))
	if days := Duration(t); days > 0 {
		fmt.Fprintf(&b, "\nDuration: %d day(s)", days)
	}
	if t.Type != task.TypeMilestone && t.ProgressOn() && t.Progress != 0 {
		fmt.Fprintf(&b, "\nProgress: %s %%", strconv.FormatFloat(t.Progress, 'f', -1, 64))
	}
	return b.String()
}

// Duration reports a task's span in days, rounded up.
func Duration(t task.Task) int {
	d := t.End.Sub(t.Start)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}
