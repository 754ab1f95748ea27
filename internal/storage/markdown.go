package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	gantterrors "github.com/abatilo/gantt/internal/errors"
	"github.com/abatilo/gantt/internal/task"
)

const frontmatterDelimiter = "---"

// taskFrontmatter is the YAML-serializable portion of a task.
type taskFrontmatter struct {
	ID              string                 `yaml:"id"`
	Type            task.Type              `yaml:"type"`
	Name            string                 `yaml:"name"`
	Start           string                 `yaml:"start"`
	End             string                 `yaml:"end"`
	Progress        float64                `yaml:"progress,omitempty"`
	ProgressEnabled *bool                  `yaml:"progress_enabled,omitempty"`
	Disabled        bool                   `yaml:"disabled,omitempty"`
	Project         string                 `yaml:"project,omitempty"`
	Dependencies    []string               `yaml:"dependencies,omitempty"`
	StartAfter      []task.StartConstraint `yaml:"start_after,omitempty"`
	StartBefore     []task.StartConstraint `yaml:"start_before,omitempty"`
	HideChildren    *bool                  `yaml:"hide_children,omitempty"`
	DisplayOrder    *int                   `yaml:"display_order,omitempty"`
	Status          string                 `yaml:"status,omitempty"`
	Statuses        []task.StatusOption    `yaml:"statuses,omitempty"`
	Styles          *task.Styles           `yaml:"styles,omitempty"`
	Weight          *int                   `yaml:"weight,omitempty"`
}

// ParseMarkdown parses a markdown file with YAML frontmatter into a Task.
// The body after the frontmatter becomes the task's notes.
func ParseMarkdown(content []byte) (task.Task, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return task.Task{}, ParseError{"missing YAML frontmatter"}
	}

	// Find closing delimiter
	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return task.Task{}, ParseError{"unclosed YAML frontmatter"}
	}

	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(yamlContent), &fm); err != nil {
		return task.Task{}, ParseError{"invalid YAML: " + err.Error()}
	}

	if fm.Type == "" {
		fm.Type = task.TypeTask
	}
	if !task.IsValidType(fm.Type) {
		return task.Task{}, ParseError{gantterrors.InvalidTypeError{Value: string(fm.Type)}.Error()}
	}

	start, err := ParseTime(fm.Start)
	if err != nil {
		return task.Task{}, ParseError{"invalid start: " + err.Error()}
	}
	end := start
	if fm.End != "" {
		if end, err = ParseTime(fm.End); err != nil {
			return task.Task{}, ParseError{"invalid end: " + err.Error()}
		}
	}

	var notes string
	if frontmatterEnd+1 < len(lines) {
		notes = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}

	t := task.Task{
		ID:              fm.ID,
		Type:            fm.Type,
		Name:            fm.Name,
		Start:           start,
		End:             end,
		Progress:        task.ClampProgress(fm.Progress),
		ProgressEnabled: fm.ProgressEnabled,
		IsDisabled:      fm.Disabled,
		Project:         fm.Project,
		Dependencies:    fm.Dependencies,
		StartAfter:      fm.StartAfter,
		StartBefore:     fm.StartBefore,
		HideChildren:    fm.HideChildren,
		DisplayOrder:    fm.DisplayOrder,
		StatusID:        fm.Status,
		Statuses:        fm.Statuses,
		Styles:          fm.Styles,
		Weight:          fm.Weight,
		Notes:           notes,
	}
	return t.Normalize(), nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:              t.ID,
		Type:            t.Type,
		Name:            t.Name,
		Start:           t.Start.Format(time.RFC3339),
		End:             t.End.Format(time.RFC3339),
		Progress:        t.Progress,
		ProgressEnabled: t.ProgressEnabled,
		Disabled:        t.IsDisabled,
		Project:         t.Project,
		Dependencies:    t.Dependencies,
		StartAfter:      t.StartAfter,
		StartBefore:     t.StartBefore,
		HideChildren:    t.HideChildren,
		DisplayOrder:    t.DisplayOrder,
		Status:          t.StatusID,
		Statuses:        t.Statuses,
		Styles:          t.Styles,
		Weight:          t.Weight,
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if t.Notes != "" {
		buf.WriteString("\n")
		buf.WriteString(t.Notes)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ParseTime reads an instant in RFC 3339 or a plain YYYY-MM-DD date, which
// means local midnight.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, gantterrors.InvalidDateError{Value: s}
}
