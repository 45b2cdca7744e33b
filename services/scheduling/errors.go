package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned when a newer call of the same action started
	// before this one could be applied.
	ErrSuperseded = errors.New("superseded by a newer call of the same action")
	// ErrStaleLocalState matches any StaleLocalStateError.
	ErrStaleLocalState = errors.New("local schedule is stale")
	// ErrNoClients is returned when an assign call names no client.
	ErrNoClients = errors.New("no client ids given")
)

// StaleLocalStateError means the backend confirmed a change the local schedule
// could not apply. A reload was attempted; ReloadErr is set if it failed.
type StaleLocalStateError struct {
	Action    Action
	SlotID    string
	Cause     error
	ReloadErr error
}

func (e *StaleLocalStateError) Error() string {
	msg := fmt.Sprintf("%s on slot %s: local schedule is stale: %v", e.Action, e.SlotID, e.Cause)
	if e.ReloadErr != nil {
		msg += fmt.Sprintf("; reload failed: %v", e.ReloadErr)
	}
	return msg
}

func (e *StaleLocalStateError) Is(target error) bool { return target == ErrStaleLocalState }

func (e *StaleLocalStateError) Unwrap() []error {
	var out []error
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	if e.ReloadErr != nil {
		out = append(out, e.ReloadErr)
	}
	return out
}
