// Package storage keeps a chart's task list as a directory of markdown
// files, one per task, with the task fields in YAML frontmatter.
package storage

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	gantterrors "github.com/abatilo/gantt/internal/errors"
	ganttlog "github.com/abatilo/gantt/internal/log"
	"github.com/abatilo/gantt/internal/task"
)

const (
	// DefaultDir is the store directory under the project root.
	DefaultDir = ".gantt"
	fileExt    = ".md"
)

// Store handles task file operations.
type Store struct {
	basePath string
}

// NewStore creates a Store for a configured directory; see ResolveDir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}
	basePath, err := ResolveDir(dir)
	if err != nil {
		return nil, err
	}
	return &Store{basePath: basePath}, nil
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string) *Store {
	return &Store{basePath: path}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// IsInitialized checks if the store directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the store directory.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return gantterrors.AlreadyInitializedError{}
	}
	return os.MkdirAll(s.basePath, 0o755)
}

func (s *Store) notInitialized() error {
	return gantterrors.NotInitializedError{Path: s.basePath}
}

// taskPath returns the full path for a task file.
func (s *Store) taskPath(id string) string {
	return filepath.Join(s.basePath, id+fileExt)
}

// Exists checks if a task with the given ID exists.
func (s *Store) Exists(id string) bool {
	_, err := os.Stat(s.taskPath(id))
	return err == nil
}

// Save writes a task to disk.
func (s *Store) Save(t task.Task) error {
	if !s.IsInitialized() {
		return s.notInitialized()
	}
	content, err := SerializeMarkdown(t)
	if err != nil {
		return err
	}
	return os.WriteFile(s.taskPath(t.ID), content, 0o644) //nolint:gosec // task files are not secret
}

// SaveAll writes every task in tasks, stopping at the first failure.
func (s *Store) SaveAll(tasks []task.Task) error {
	for _, t := range tasks {
		if err := s.Save(t); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a task from disk.
func (s *Store) Load(id string) (task.Task, error) {
	if !s.IsInitialized() {
		return task.Task{}, s.notInitialized()
	}
	content, err := os.ReadFile(s.taskPath(id))
	if os.IsNotExist(err) {
		return task.Task{}, gantterrors.TaskNotFoundError{ID: id}
	}
	if err != nil {
		return task.Task{}, err
	}
	return ParseMarkdown(content)
}

// Delete removes a task file.
func (s *Store) Delete(id string) error {
	if !s.IsInitialized() {
		return s.notInitialized()
	}
	err := os.Remove(s.taskPath(id))
	if os.IsNotExist(err) {
		return gantterrors.TaskNotFoundError{ID: id}
	}
	return err
}

// List returns all tasks in display order. Files that fail to parse are
// skipped with a warning.
func (s *Store) List() ([]task.Task, error) {
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.Load(id)
		if err != nil {
			ganttlog.GetLogger().WithError(err).WithField("file", s.taskPath(id)).Warn("Skipping task file")
			continue
		}
		tasks = append(tasks, t)
	}
	return task.SortByDisplayOrder(tasks), nil
}

// ids returns the task IDs on disk in file name order.
func (s *Store) ids() ([]string, error) {
	if !s.IsInitialized() {
		return nil, s.notInitialized()
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), fileExt))
	}
	return ids, nil
}

// AllIDs returns all task IDs (for ID generation collision checking).
func (s *Store) AllIDs() (map[string]bool, error) {
	ids, err := s.ids()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// RemoveReferences drops id from every task's dependencies and start-offset
// constraints, and detaches the tasks it owned as a project.
func (s *Store) RemoveReferences(id string) error {
	tasks, err := s.List()
	if err != nil {
		return err
	}

	for _, t := range tasks {
		modified := false
		if slices.Contains(t.Dependencies, id) {
			t.Dependencies = slices.DeleteFunc(slices.Clone(t.Dependencies), func(d string) bool { return d == id })
			modified = true
		}
		refersTo := func(c task.StartConstraint) bool { return c.ID == id }
		if slices.ContainsFunc(t.StartAfter, refersTo) {
			t.StartAfter = slices.DeleteFunc(slices.Clone(t.StartAfter), refersTo)
			modified = true
		}
		if slices.ContainsFunc(t.StartBefore, refersTo) {
			t.StartBefore = slices.DeleteFunc(slices.Clone(t.StartBefore), refersTo)
			modified = true
		}
		if t.Project == id {
			t.Project = ""
			modified = true
		}
		if modified {
			if err := s.Save(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// CreateTask saves a new task. An empty ID is generated from the name; an
// explicit one must be unused. A task without a display order goes last.
func (s *Store) CreateTask(t task.Task) (task.Task, error) {
	if !s.IsInitialized() {
		return task.Task{}, s.notInitialized()
	}
	if t.Type == "" {
		t.Type = task.TypeTask
	}
	if !task.IsValidType(t.Type) {
		return task.Task{}, gantterrors.InvalidTypeError{Value: string(t.Type)}
	}

	existing, err := s.List()
	if err != nil {
		return task.Task{}, err
	}
	existingIDs, err := s.AllIDs()
	if err != nil {
		return task.Task{}, err
	}
	switch {
	case t.ID == "":
		t.ID = task.GenerateID(t.Name, func(id string) bool { return existingIDs[id] })
	case existingIDs[t.ID]:
		return task.Task{}, gantterrors.AlreadyExistsError{ID: t.ID}
	}

	if t.DisplayOrder == nil {
		last := 0
		for _, e := range existing {
			if e.DisplayOrder != nil {
				last = max(last, *e.DisplayOrder)
			}
		}
		t.DisplayOrder = task.Int(last + 1)
	}

	t = t.Normalize()
	if err := s.Save(t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}
