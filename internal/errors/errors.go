//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// NotInitializedError indicates the chart directory doesn't exist.
type NotInitializedError struct {
	Path string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("chart not initialized at %s: run 'gantt init' first", e.Path)
}

// AlreadyInitializedError indicates the chart directory already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "chart already initialized"
}

// TaskNotFoundError indicates the task ID doesn't match any task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// AlreadyExistsError indicates an ID collision.
type AlreadyExistsError struct {
	ID string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("task already exists: %s", e.ID)
}

// InvalidTypeError indicates an invalid task type value.
type InvalidTypeError struct {
	Value string
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid task type: %s (valid: task, milestone, project)", e.Value)
}

// InvalidDateError indicates a date argument that matches no accepted layout.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %s (expected YYYY-MM-DD or RFC 3339)", e.Value)
}

// UnknownStatusError indicates a status id outside the task's palette.
type UnknownStatusError struct {
	ID     string
	Status string
}

func (e UnknownStatusError) Error() string {
	return fmt.Sprintf("task %s has no status option '%s'", e.ID, e.Status)
}

// DeclinedError indicates the host refused a change.
type DeclinedError struct {
	ID     string
	Reason string
}

func (e DeclinedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("change to task %s was declined", e.ID)
	}
	return fmt.Sprintf("change to task %s was declined: %s", e.ID, e.Reason)
}

// NotInRepoError indicates the command was run outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository (gantt requires a project root)"
}
