// Package event defines the callback surface between the chart and its host.
//
// A host callback answers with an Ack: the change is accepted, rejected, or
// pending until a channel delivers the host's verdict. The chart never
// mutates authoritative state before an Ack resolves to Accepted.
package event

import (
	"context"
	"fmt"
)

// Outcome is the resolution state of an Ack.
type Outcome int

const (
	Accepted Outcome = iota
	Rejected
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Pending:
		return "pending"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// RejectedError is returned by Wait when the host declined the change.
type RejectedError struct {
	Reason string
}

func (e RejectedError) Error() string {
	if e.Reason == "" {
		return "change rejected"
	}
	return fmt.Sprintf("change rejected: %s", e.Reason)
}

// Ack is a host's answer to a change callback. The zero value is Accepted,
// matching a callback that returns nothing.
type Ack struct {
	outcome Outcome
	reason  string
	done    <-chan error
}

// Accept acknowledges a change.
func Accept() Ack {
	return Ack{outcome: Accepted}
}

// Reject declines a change.
func Reject(reason string) Ack {
	return Ack{outcome: Rejected, reason: reason}
}

// FromBool maps a plain yes/no answer onto an Ack.
func FromBool(ok bool) Ack {
	if ok {
		return Accept()
	}
	return Reject("")
}

// Defer returns a pending Ack resolved by done. A nil error or a closed
// channel accepts; any other error rejects. A nil channel never resolves
// and is treated as a rejection instead.
func Defer(done <-chan error) Ack {
	if done == nil {
		return Reject("no result channel")
	}
	return Ack{outcome: Pending, done: done}
}

// Go runs fn on its own goroutine and returns a pending Ack for its result.
func Go(fn func() error) Ack {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- PanicError{Value: r}
			}
		}()
		done <- fn()
	}()
	return Defer(done)
}

// Outcome reports the Ack's state at the time it was returned.
func (a Ack) Outcome() Outcome {
	return a.outcome
}

// Wait blocks until the Ack resolves or ctx is done. It returns nil when the
// change was accepted, a RejectedError (or the host's own error) when it was
// declined, and ctx.Err() when the context ended first.
func (a Ack) Wait(ctx context.Context) error {
	switch a.outcome {
	case Accepted:
		return nil
	case Rejected:
		return RejectedError{Reason: a.reason}
	}

	select {
	case err, ok := <-a.done:
		if !ok || err == nil {
			return nil
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve waits for the Ack and collapses it onto Accepted or Rejected.
func (a Ack) Resolve(ctx context.Context) (Outcome, error) {
	if err := a.Wait(ctx); err != nil {
		return Rejected, err
	}
	return Accepted, nil
}

// All combines acks: it rejects as soon as one of them is already rejected,
// accepts when all of them are accepted, and otherwise stays pending until
// every pending ack has resolved.
func All(acks ...Ack) Ack {
	var pending []Ack
	for _, a := range acks {
		switch a.outcome {
		case Rejected:
			return a
		case Pending:
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return Accept()
	}
	return Go(func() error {
		var first error
		for _, a := range pending {
			if err := a.Wait(context.Background()); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
