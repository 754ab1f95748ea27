package storage

import "fmt"

// ParseError indicates a task file that could not be decoded.
type ParseError struct {
	Reason string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("malformed task file: %s", e.Reason)
}
