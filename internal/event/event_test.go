//nolint:testpackage // Tests require internal access for thorough testing
package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abatilo/gantt/internal/task"
)

func TestZeroAckIsAccepted(t *testing.T) {
	var a Ack
	assert.Equal(t, Accepted, a.Outcome())
	assert.NoError(t, a.Wait(context.Background()))
}

func TestFromBool(t *testing.T) {
	assert.Equal(t, Accepted, FromBool(true).Outcome())
	assert.Equal(t, Rejected, FromBool(false).Outcome())

	var rej RejectedError
	require.ErrorAs(t, FromBool(false).Wait(context.Background()), &rej)
}

func TestDeferred(t *testing.T) {
	tests := []struct {
		name    string
		send    func(chan error)
		wantErr bool
	}{
		{"nil error accepts", func(c chan error) { c <- nil }, false},
		{"closed channel accepts", func(c chan error) { close(c) }, false},
		{"error rejects", func(c chan error) { c <- errors.New("nope") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := make(chan error, 1)
			a := Defer(c)
			assert.Equal(t, Pending, a.Outcome())
			tt.send(c)

			outcome, err := a.Resolve(context.Background())
			if tt.wantErr {
				assert.Equal(t, Rejected, outcome)
				assert.Error(t, err)
			} else {
				assert.Equal(t, Accepted, outcome)
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeferNilChannelRejects(t *testing.T) {
	assert.Equal(t, Rejected, Defer(nil).Outcome())
}

func TestWaitHonorsContext(t *testing.T) {
	a := Defer(make(chan error))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.Wait(ctx), context.DeadlineExceeded)
}

func TestGoRecoversPanic(t *testing.T) {
	a := Go(func() error { panic("boom") })
	var pe PanicError
	require.ErrorAs(t, a.Wait(context.Background()), &pe)
	assert.Equal(t, "boom", pe.Value)
}

func TestCallRecoversPanic(t *testing.T) {
	ack, err := Call(func() Ack { panic("host bug") })
	require.Error(t, err)
	assert.Equal(t, Rejected, ack.Outcome())
}

func TestHandlersMissing(t *testing.T) {
	var h Handlers
	_, ok, err := h.DateChange(task.Task{ID: "a"}, nil)
	assert.False(t, ok)
	assert.NoError(t, err)

	_, ok, _ = h.WeightsChange(nil)
	assert.False(t, ok)
}

func TestHandlersPassArguments(t *testing.T) {
	var gotStatus string
	var gotChildren int
	h := Handlers{
		OnStatusChange: func(_ task.Task, statusID string, children []task.Task) Ack {
			gotStatus = statusID
			gotChildren = len(children)
			return Reject("locked")
		},
	}

	ack, ok, err := h.StatusChange(task.Task{ID: "a"}, "DONE", []task.Task{{ID: "b"}})
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, "DONE", gotStatus)
	assert.Equal(t, 1, gotChildren)
	assert.EqualError(t, ack.Wait(context.Background()), "change rejected: locked")
}

func TestNotify(t *testing.T) {
	assert.NoError(t, Notify(func() {}))
	assert.Error(t, Notify(func() { panic("x") }))
}

func TestAll(t *testing.T) {
	assert.Equal(t, Accepted, All().Outcome())
	assert.Equal(t, Accepted, All(Accept(), Accept()).Outcome())
	assert.Equal(t, Rejected, All(Accept(), Reject("x")).Outcome())

	c := make(chan error, 1)
	a := All(Accept(), Defer(c))
	assert.Equal(t, Pending, a.Outcome())
	c <- errors.New("late")
	assert.EqualError(t, a.Wait(context.Background()), "late")
}
