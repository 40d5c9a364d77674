package domain

import (
	"errors"
	"fmt"
)

var ErrTransitionNotAllowed = errors.New("order status transition not allowed")

// TransitionPolicy decides which status changes are legal.
type TransitionPolicy interface {
	Allows(from, to Status) bool
}

// PermissivePolicy accepts any status from any status.
type PermissivePolicy struct{}

func (PermissivePolicy) Allows(Status, Status) bool { return true }

// StrictPolicy enforces the fulfilment lifecycle. Completed and cancelled orders are terminal.
type StrictPolicy struct{}

var strictTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (StrictPolicy) Allows(from, to Status) bool {
	for _, next := range strictTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the order to the target status. Re-applying the current status is a no-op and reports false.
func (o *Order) TransitionTo(to Status, policy TransitionPolicy) (bool, error) {
	if _, err := ParseStatus(string(to)); err != nil {
		return false, err
	}
	if o.Status == to {
		return false, nil
	}
	if policy == nil {
		policy = PermissivePolicy{}
	}
	if !policy.Allows(o.Status, to) {
		return false, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, o.Status, to)
	}
	o.Status = to
	return true, nil
}
