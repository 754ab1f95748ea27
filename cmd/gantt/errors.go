package main

import "fmt"

// InvalidFlagError indicates a flag value that could not be used.
type InvalidFlagError struct {
	Flag   string
	Value  string
	Reason string
}

func (e InvalidFlagError) Error() string {
	return fmt.Sprintf("invalid --%s '%s': %s", e.Flag, e.Value, e.Reason)
}

// NotProjectError indicates a task used as a project that is not one.
type NotProjectError struct {
	ID string
}

func (e NotProjectError) Error() string {
	return fmt.Sprintf("task %s is not a project", e.ID)
}

// NotVisibleError indicates a task with no row, such as the child of a
// collapsed project.
type NotVisibleError struct {
	ID string
}

func (e NotVisibleError) Error() string {
	return fmt.Sprintf("task %s is hidden inside a collapsed project; expand it first", e.ID)
}
