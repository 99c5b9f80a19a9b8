package domain

// allowedTransitions lists the forward lifecycle moves observed in the dashboards.
// It is only consulted when a manager is configured to enforce transitions.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusNew:        {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusResolved},
	TicketStatusResolved:   {TicketStatusClosed},
	TicketStatusClosed:     {},
}

// CanTransition reports whether current may move to next under the lifecycle table.
// Writing the current status again is always allowed.
func CanTransition(current, next TicketStatus) bool {
	if current == next {
		return current.Valid()
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
