// Package config loads chart settings from an optional YAML file, GANTT_*
// environment variables and built-in defaults, in that order of precedence
// after the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/abatilo/gantt/internal/bars"
	"github.com/abatilo/gantt/internal/chart"
	"github.com/abatilo/gantt/internal/storage"
	"github.com/abatilo/gantt/internal/task"
	"github.com/abatilo/gantt/internal/timeaxis"
)

const (
	envPrefix  = "GANTT"
	configName = "gantt"
)

// ColorSet is the palette of one task type.
type ColorSet struct {
	Background         string `mapstructure:"background"`
	BackgroundSelected string `mapstructure:"background_selected"`
	Progress           string `mapstructure:"progress"`
	ProgressSelected   string `mapstructure:"progress_selected"`
}

func (c ColorSet) styles() task.Styles {
	return task.Styles{
		BackgroundColor:         c.Background,
		BackgroundSelectedColor: c.BackgroundSelected,
		ProgressColor:           c.Progress,
		ProgressSelectedColor:   c.ProgressSelected,
	}
}

// Colors holds the per-type palettes.
type Colors struct {
	Task      ColorSet `mapstructure:"task"`
	Project   ColorSet `mapstructure:"project"`
	Milestone ColorSet `mapstructure:"milestone"`
}

// Config is the full set of settings.
type Config struct {
	ViewMode    string        `mapstructure:"view_mode"`
	PreSteps    int           `mapstructure:"pre_steps"`
	ColumnWidth float64       `mapstructure:"column_width"`
	TimeStep    time.Duration `mapstructure:"time_step"`
	Locale      string        `mapstructure:"locale"`
	Timezone    string        `mapstructure:"timezone"`
	RTL         bool          `mapstructure:"rtl"`

	HeaderHeight    float64 `mapstructure:"header_height"`
	RowHeight       float64 `mapstructure:"row_height"`
	BarFill         float64 `mapstructure:"bar_fill"`
	BarCornerRadius float64 `mapstructure:"bar_corner_radius"`
	HandleWidth     float64 `mapstructure:"handle_width"`
	ArrowColor      string  `mapstructure:"arrow_color"`
	ArrowIndent     float64 `mapstructure:"arrow_indent"`
	TodayColor      string  `mapstructure:"today_color"`
	Colors          Colors  `mapstructure:"colors"`

	Statuses []task.StatusOption `mapstructure:"statuses"`

	StoreDir           string `mapstructure:"store_dir"`
	EnforceConstraints bool   `mapstructure:"enforce_constraints"`
	LogLevel           string `mapstructure:"log_level"`
}

// DefaultStatuses is the global status palette.
func DefaultStatuses() []task.StatusOption {
	return []task.StatusOption{
		{ID: "NOT_STARTED", Value: "Not started", Color: "#e0e0e0"},
		{ID: "IN_PROGRESS", Value: "In progress", Color: "#42a5f5"},
		{ID: "COMPLETED", Value: "Completed", Color: "#66bb6a"},
		{ID: "BLOCKED", Value: "Blocked", Color: "#ef5350"},
		{ID: "ON_HOLD", Value: "On hold", Color: "#ffb74d"},
		{ID: "CANCELLED", Value: "Cancelled", Color: "#9e9e9e"},
	}
}

func setDefaults(v *viper.Viper) {
	style := bars.DefaultStyle()
	def := chart.DefaultOptions()

	v.SetDefault("view_mode", string(def.ViewMode))
	v.SetDefault("pre_steps", def.PreSteps)
	v.SetDefault("column_width", 0)
	v.SetDefault("time_step", def.TimeStep)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("timezone", "")
	v.SetDefault("rtl", false)

	v.SetDefault("header_height", def.HeaderHeight)
	v.SetDefault("row_height", style.RowHeight)
	v.SetDefault("bar_fill", style.BarFill)
	v.SetDefault("bar_corner_radius", style.BarCornerRadius)
	v.SetDefault("handle_width", style.HandleWidth)
	v.SetDefault("arrow_color", def.ArrowColor)
	v.SetDefault("arrow_indent", def.ArrowIndent)
	v.SetDefault("today_color", def.TodayColor)

	for name, s := range map[string]task.Styles{"task": style.Task, "project": style.Project, "milestone": style.Milestone} {
		v.SetDefault("colors."+name+".background", s.BackgroundColor)
		v.SetDefault("colors."+name+".background_selected", s.BackgroundSelectedColor)
		v.SetDefault("colors."+name+".progress", s.ProgressColor)
		v.SetDefault("colors."+name+".progress_selected", s.ProgressSelectedColor)
	}

	v.SetDefault("statuses", DefaultStatuses())
	v.SetDefault("store_dir", storage.DefaultDir)
	v.SetDefault("enforce_constraints", false)
	v.SetDefault("log_level", "warn")
}

// Load reads the configuration. With an empty path, a gantt.yaml in the
// working directory is used when present.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Style returns the bar layout and palette.
func (c Config) Style() bars.Style {
	return bars.Style{
		RowHeight:       c.RowHeight,
		BarFill:         c.BarFill,
		BarCornerRadius: c.BarCornerRadius,
		HandleWidth:     c.HandleWidth,
		Task:            c.Colors.Task.styles(),
		Project:         c.Colors.Project.styles(),
		Milestone:       c.Colors.Milestone.styles(),
	}
}

// Location returns the configured time zone, or time.Local when unset.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

// ChartOptions converts the settings into chart options.
func (c Config) ChartOptions() (chart.Options, error) {
	mode, err := timeaxis.ParseViewMode(c.ViewMode)
	if err != nil {
		return chart.Options{}, err
	}
	loc, err := c.Location()
	if err != nil {
		return chart.Options{}, err
	}
	if c.BarFill <= 0 || c.BarFill > 100 {
		return chart.Options{}, fmt.Errorf("bar_fill must be in (0,100], got %v", c.BarFill)
	}

	return chart.Options{
		ViewMode:           mode,
		PreSteps:           c.PreSteps,
		ColumnWidth:        c.ColumnWidth,
		TimeStep:           c.TimeStep,
		HeaderHeight:       c.HeaderHeight,
		Style:              c.Style(),
		Statuses:           c.Statuses,
		ArrowColor:         c.ArrowColor,
		ArrowIndent:        c.ArrowIndent,
		TodayColor:         c.TodayColor,
		Locale:             c.Locale,
		Location:           loc,
		RTL:                c.RTL,
		EnforceConstraints: c.EnforceConstraints,
	}, nil
}
