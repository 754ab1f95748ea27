//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"testing"
)

func TestDeclinedError(t *testing.T) {
	tests := []struct {
		name string
		err  DeclinedError
		want string
	}{
		{
			name: "formats error with id and reason",
			err:  DeclinedError{ID: "abc123", Reason: "violates start_after"},
			want: "change to task abc123 was declined: violates start_after",
		},
		{
			name: "handles empty reason",
			err:  DeclinedError{ID: "def456"},
			want: "change to task def456 was declined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("DeclinedError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskNotFoundError(t *testing.T) {
	err := TaskNotFoundError{ID: "xyz789"}
	want := "task not found: xyz789"
	if got := err.Error(); got != want {
		t.Errorf("TaskNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidTypeError(t *testing.T) {
	err := InvalidTypeError{Value: "epic"}
	want := "invalid task type: epic (valid: task, milestone, project)"
	if got := err.Error(); got != want {
		t.Errorf("InvalidTypeError.Error() = %q, want %q", got, want)
	}
}

func TestUnknownStatusError(t *testing.T) {
	err := UnknownStatusError{ID: "abc", Status: "DONE"}
	want := "task abc has no status option 'DONE'"
	if got := err.Error(); got != want {
		t.Errorf("UnknownStatusError.Error() = %q, want %q", got, want)
	}
}

func TestNotInitializedError(t *testing.T) {
	err := NotInitializedError{Path: "/tmp/x/.gantt"}
	want := "chart not initialized at /tmp/x/.gantt: run 'gantt init' first"
	if got := err.Error(); got != want {
		t.Errorf("NotInitializedError.Error() = %q, want %q", got, want)
	}
}
