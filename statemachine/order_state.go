package statemachine

import (
	"strings"

	"smartserve-api/models"
)

// validTransitions is the authoritative state machine definition: each status
// maps to the set of statuses an order in that state may move to next. An
// order progresses strictly forward, one step at a time, and `completed` is
// terminal.
var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:   {models.StatusPreparing},
	models.StatusPreparing: {models.StatusReady},
	models.StatusReady:     {models.StatusCompleted},
	models.StatusCompleted: {},
}

// InvalidTransitionError reports an order status change that the state
// machine does not allow. It carries both sides of the attempted transition.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return "cannot transition from '" + string(e.From) + "' to '" + string(e.To) +
		"'. Allowed: " + describeNext(e.From)
}

// ValidNextStates returns all statuses reachable from the given status.
func ValidNextStates(status models.OrderStatus) []models.OrderStatus {
	return validTransitions[status]
}

// IsTerminal reports whether a status has no outgoing transitions.
func IsTerminal(status models.OrderStatus) bool {
	return len(validTransitions[status]) == 0
}

// Validate checks that from → to is an allowed transition, returning an
// *InvalidTransitionError when it is not.
func Validate(from, to models.OrderStatus) error {
	for _, next := range validTransitions[from] {
		if next == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

func describeNext(status models.OrderStatus) string {
	nexts := validTransitions[status]
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
