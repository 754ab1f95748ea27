// Package session persists the interactive state of a chart between CLI
// invocations: the selected task and the saved view.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const sessionFile = "session.json"

// Session is the view state stored next to the task files.
type Session struct {
	Selected  string     `json:"selected,omitempty"`
	ViewMode  string     `json:"view_mode,omitempty"`
	ViewDate  *time.Time `json:"view_date,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// sessionPath returns the full path to session.json for the given base path.
func sessionPath(basePath string) string {
	return filepath.Join(basePath, sessionFile)
}

// Exists checks if a session file exists.
func Exists(basePath string) bool {
	_, err := os.Stat(sessionPath(basePath))
	return err == nil
}

// Load reads the session from disk. A missing file yields an empty session.
func Load(basePath string) (Session, error) {
	data, err := os.ReadFile(sessionPath(basePath))
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if unmarshalErr := json.Unmarshal(data, &s); unmarshalErr != nil {
		return Session{}, unmarshalErr
	}
	return s, nil
}

// Save writes the session to disk, stamping UpdatedAt.
func Save(basePath string, s Session) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible chart directory
	if mkdirErr := os.MkdirAll(basePath, 0o755); mkdirErr != nil {
		return mkdirErr
	}

	s.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	//nolint:gosec // G306: 0644 is appropriate for user-readable session files
	return os.WriteFile(sessionPath(basePath), data, 0o644)
}

// Delete removes the session file.
func Delete(basePath string) error {
	err := os.Remove(sessionPath(basePath))
	if os.IsNotExist(err) {
		return nil // Already deleted, not an error
	}
	return err
}

// Select records id as the selected task, or clears the selection when
// selected is false and id is the one recorded.
func Select(basePath, id string, selected bool) error {
	s, err := Load(basePath)
	if err != nil {
		return err
	}
	switch {
	case selected:
		s.Selected = id
	case s.Selected == id:
		s.Selected = ""
	default:
		return nil
	}
	return Save(basePath, s)
}

// Forget clears the selection if it names id. Used after a task is removed.
func Forget(basePath, id string) error {
	if !Exists(basePath) {
		return nil
	}
	return Select(basePath, id, false)
}

// SetView stores the view mode and focus date. An empty mode or a nil date
// clears the stored value.
func SetView(basePath, mode string, date *time.Time) error {
	s, err := Load(basePath)
	if err != nil {
		return err
	}
	s.ViewMode = mode
	s.ViewDate = date
	return Save(basePath, s)
}
