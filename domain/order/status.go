package order

// Status is the closed set of order lifecycle states.
type Status string

const (
	StatusDraft     Status = "DRAFT"     // assembled from a cart, not yet confirmed
	StatusPending   Status = "PENDING"   // confirmed, awaiting pickup or online payment
	StatusPaid      Status = "PAID"      // payment confirmed by the payment collaborator
	StatusCompleted Status = "COMPLETED" // terminal
	StatusCanceled  Status = "CANCELED"  // terminal
)

// PaymentType is set at confirmation and selects the confirmation side effects.
type PaymentType string

const (
	PaymentOnPickup PaymentType = "PAY_ON_PICKUP"
	PaymentOnline   PaymentType = "PAY_ONLINE"
)

// Action names a lifecycle transition request.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionMarkPaid Action = "mark_paid"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"

	// ActionAdminOverride is the audited administrative escape hatch: it may
	// move an order to any status. Every use is logged and emits an
	// order.updated event.
	ActionAdminOverride Action = "admin_override"
)

// transitions is the single source of truth for lifecycle legality.
// currentStatus x action -> nextStatus. Anything not listed is illegal,
// except ActionAdminOverride which is handled separately.
//
// mark_paid is invoked by the trusted payment callback and is deliberately
// permissive: it is legal from every non-terminal state, and from PAID itself
// so a redelivered callback stays harmless.
var transitions = map[Action]map[Status]Status{
	ActionConfirm: {
		StatusDraft: StatusPending,
	},
	ActionMarkPaid: {
		StatusDraft:   StatusPaid,
		StatusPending: StatusPaid,
		StatusPaid:    StatusPaid,
	},
	ActionComplete: {
		StatusPending: StatusCompleted,
		StatusPaid:    StatusCompleted,
	},
	ActionCancel: {
		StatusDraft:   StatusCanceled,
		StatusPending: StatusCanceled,
		StatusPaid:    StatusCanceled,
	},
}

// NextStatus resolves an action against the transition table.
func NextStatus(current Status, action Action) (Status, bool) {
	byStatus, ok := transitions[action]
	if !ok {
		return "", false
	}
	next, ok := byStatus[current]
	return next, ok
}

// IsValidStatus reports membership in the closed status set.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further guarded transition leaves s.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

// IsValidPaymentType reports membership in the closed payment type set.
func IsValidPaymentType(p PaymentType) bool {
	return p == PaymentOnPickup || p == PaymentOnline
}
