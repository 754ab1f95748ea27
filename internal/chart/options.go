package chart

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abatilo/gantt/internal/bars"
	ganttlog "github.com/abatilo/gantt/internal/log"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/timeaxis"
)

// Options configures a Chart.
type Options struct {
	ViewMode timeaxis.ViewMode
	// ViewDate, when set, is the date ScrollX scrolls to.
	ViewDate time.Time
	PreSteps int
	// ColumnWidth of zero selects the view mode's default.
	ColumnWidth float64
	// TimeStep is the snap step of drag gestures.
	TimeStep time.Duration

	HeaderHeight float64
	Style        bars.Style
	Statuses     []task.StatusOption

	ArrowColor  string
	ArrowIndent float64
	TodayColor  string

	Locale   string
	Location *time.Location
	RTL      bool

	// EnforceConstraints rejects date changes that break a task's
	// start-offset constraints before the host is asked.
	EnforceConstraints bool

	// TooltipContent replaces DefaultTooltip.
	TooltipContent func(t task.Task, locale string) string
	// NameRenderer replaces the task name in the table's first column.
	NameRenderer func(t task.Task) string

	Now    func() time.Time
	Logger *logrus.Logger
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		ViewMode:     timeaxis.Day,
		PreSteps:     1,
		TimeStep:     5 * time.Minute,
		HeaderHeight: 50,
		Style:        bars.DefaultStyle(),
		ArrowColor:   "grey",
		ArrowIndent:  20,
		TodayColor:   "rgba(252, 248, 227, 0.5)",
		Locale:       "en-GB",
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.ViewMode == "" {
		o.ViewMode = def.ViewMode
	}
	if o.TimeStep <= 0 {
		o.TimeStep = def.TimeStep
	}
	if o.Style.RowHeight <= 0 {
		o.Style = def.Style
	}
	if o.Locale == "" {
		o.Locale = def.Locale
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = ganttlog.GetLogger()
	}
	if o.TooltipContent == nil {
		o.TooltipContent = DefaultTooltip
	}
	return o
}
