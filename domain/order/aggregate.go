package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// Order is the aggregate root of the order subdomain. All modifications to an
// order and its items go through it; lifecycle legality is decided by the
// transition table in status.go, never by guards scattered at entry points.
type Order struct {
	id          string
	userID      string
	items       []OrderItem
	totalAmount shared.Money
	status      Status

	// Set at confirmation, zero-valued before it
	contactName  string
	contactPhone string
	notes        string
	paymentType  PaymentType

	version   int // optimistic lock, incremented by the repository on save
	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
	isNew  bool
}

// OrderItem is an entity owned by exactly one Order. Name and price are
// catalog snapshots taken at assembly time and are never refreshed, so
// historical orders stay stable when products are renamed or delisted.
type OrderItem struct {
	id            string
	orderID       string
	productID     string
	name          string
	localizedName string
	unitPrice     shared.Money
	quantity      int
}

// ItemSnapshot is the validated input for one order line: catalog snapshots
// plus the cart quantity.
type ItemSnapshot struct {
	ProductID     string
	Name          string
	LocalizedName string
	UnitPrice     shared.Money
	Quantity      int
}

// NewDraft creates a Draft order from resolved line snapshots. This is the
// only creation path; both the cart assembler and the draft factory end here.
// The total is computed from the snapshots, establishing the invariant
// totalAmount == sum(unitPrice * quantity) at creation time.
//
// No event is recorded: downstream consumers only learn about an order once
// it is confirmed (or paid, for online payment).
func NewDraft(userID string, snapshots []ItemSnapshot) (*Order, error) {
	if userID == "" {
		return nil, shared.NewValidationError("order", "user_id", "user id is required")
	}
	if len(snapshots) == 0 {
		return nil, NewInvalidStateError(ErrEmptyOrderItems)
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order ID: %w", err)
	}

	items := make([]OrderItem, len(snapshots))
	var total *shared.Money
	for i, snap := range snapshots {
		if snap.Quantity <= 0 {
			return nil, NewInvalidStateError(ErrInvalidQuantity)
		}

		itemID, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order item ID: %w", err)
		}

		items[i] = OrderItem{
			id:            itemID.String(),
			orderID:       orderID.String(),
			productID:     snap.ProductID,
			name:          snap.Name,
			localizedName: snap.LocalizedName,
			unitPrice:     snap.UnitPrice,
			quantity:      snap.Quantity,
		}

		lineTotal, err := snap.UnitPrice.Multiply(snap.Quantity)
		if err != nil {
			return nil, err
		}
		if total == nil {
			total = lineTotal
		} else {
			total, err = total.Add(*lineTotal)
			if err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	return &Order{
		id:          orderID.String(),
		userID:      userID,
		items:       items,
		totalAmount: *total,
		status:      StatusDraft,
		version:     0,
		createdAt:   now,
		updatedAt:   now,
		events:      make([]shared.DomainEvent, 0),
		isNew:       true,
	}, nil
}

// ============================================================================
// Reconstruction - repository layer only
// ============================================================================

// ReconstructionDTO rebuilds an Order from storage without exposing setters.
// Only the repository implementation may use it.
type ReconstructionDTO struct {
	ID           string
	UserID       string
	Items        []OrderItem
	TotalAmount  shared.Money
	Status       Status
	ContactName  string
	ContactPhone string
	Notes        string
	PaymentType  PaymentType
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RebuildFromDTO reconstructs an Order aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:           dto.ID,
		userID:       dto.UserID,
		items:        dto.Items,
		totalAmount:  dto.TotalAmount,
		status:       dto.Status,
		contactName:  dto.ContactName,
		contactPhone: dto.ContactPhone,
		notes:        dto.Notes,
		paymentType:  dto.PaymentType,
		version:      dto.Version,
		createdAt:    dto.CreatedAt,
		updatedAt:    dto.UpdatedAt,
		events:       nil,
		isNew:        false,
	}
}

// ItemReconstructionDTO rebuilds one OrderItem from storage.
type ItemReconstructionDTO struct {
	ID            string
	OrderID       string
	ProductID     string
	Name          string
	LocalizedName string
	UnitPrice     shared.Money
	Quantity      int
}

// RebuildItemFromDTO reconstructs an OrderItem from persisted state.
func RebuildItemFromDTO(dto ItemReconstructionDTO) OrderItem {
	return OrderItem{
		id:            dto.ID,
		orderID:       dto.OrderID,
		productID:     dto.ProductID,
		name:          dto.Name,
		localizedName: dto.LocalizedName,
		unitPrice:     dto.UnitPrice,
		quantity:      dto.Quantity,
	}
}

// ============================================================================
// Lifecycle transitions
// ============================================================================

// Confirm moves a Draft to Pending on behalf of its owner, fixing contact
// details and the payment type.
//
// Side effect rule: pay-on-pickup records order.created immediately, because
// fulfillment may start right away. Online payment records nothing here; the
// event is deferred to MarkPaid since the payment is not guaranteed to
// succeed and the kitchen must not start until it does. Cart clearing follows
// the same split and is performed by the application layer.
func (o *Order) Confirm(callerUserID, contactName, contactPhone, notes string, paymentType PaymentType) error {
	if o.userID != callerUserID {
		return NewNotOwnerError(o.id, callerUserID)
	}
	next, ok := NextStatus(o.status, ActionConfirm)
	if !ok {
		return NewInvalidStateError(ErrOnlyDraftConfirmable)
	}
	if !IsValidPaymentType(paymentType) {
		return shared.NewValidationError("order", "payment_type", "unknown payment type: "+string(paymentType))
	}

	o.contactName = contactName
	o.contactPhone = contactPhone
	o.notes = notes
	o.paymentType = paymentType
	o.status = next
	o.updatedAt = time.Now()

	if paymentType == PaymentOnPickup {
		o.events = append(o.events, NewOrderCreatedEvent(o.id, o.userID, o.totalAmount))
	}
	return nil
}

// MarkPaid records a payment confirmation from the trusted payment callback.
// There is no ownership check; the caller is system-internal. The transition
// table allows it from any non-terminal state, including PAID itself so a
// redelivered callback does not fail.
func (o *Order) MarkPaid() error {
	previous := o.status
	next, ok := NextStatus(o.status, ActionMarkPaid)
	if !ok {
		return NewInvalidTransitionError(o.status, ActionMarkPaid)
	}

	o.status = next
	o.updatedAt = time.Now()

	if previous == StatusPaid {
		// Callback redelivery: state is already settled, emit nothing
		return nil
	}

	o.events = append(o.events, NewOrderPaidEvent(o.id))
	if o.paymentType == PaymentOnline {
		// The order.created deferred at confirmation fires now
		o.events = append(o.events, NewOrderCreatedEvent(o.id, o.userID, o.totalAmount))
	}
	return nil
}

// AdminUpdate is the audited administrative override. It may set any subset
// of fields, including a status that is not a legal successor; that bypass is
// an explicit ActionAdminOverride, not a missing check. An order.updated
// event is always recorded, even when nothing changed.
type AdminUpdate struct {
	Status       *Status
	Notes        *string
	ContactName  *string
	ContactPhone *string
}

func (o *Order) ApplyAdminUpdate(upd AdminUpdate) error {
	if upd.Status != nil {
		if !IsValidStatus(*upd.Status) {
			return shared.NewValidationError("order", "status", "unknown status: "+string(*upd.Status))
		}
		o.status = *upd.Status
	}
	if upd.Notes != nil {
		o.notes = *upd.Notes
	}
	if upd.ContactName != nil {
		o.contactName = *upd.ContactName
	}
	if upd.ContactPhone != nil {
		o.contactPhone = *upd.ContactPhone
	}

	o.updatedAt = time.Now()
	o.events = append(o.events, NewOrderUpdatedEvent(o.id, o.status))
	return nil
}

// MarkDeleted records the deletion event before the repository removes the
// row. Deletion is unconditional: any status, including PAID, may be deleted.
func (o *Order) MarkDeleted() {
	o.events = append(o.events, NewOrderDeletedEvent(o.id, o.userID))
}

// ============================================================================
// Item correction
// ============================================================================

// CorrectItemQuantity adjusts one line's quantity. This sits beside the state
// machine, not behind it: no status guard and no lower bound, zero and
// negative quantities are stored as given (reconciliation bookkeeping).
// totalAmount is deliberately not recomputed; totals are frozen at assembly
// time. RecalculatedTotal exposes the live sum so the drift stays visible.
func (o *Order) CorrectItemQuantity(itemID string, quantity int) error {
	for i := range o.items {
		if o.items[i].id == itemID {
			o.items[i].quantity = quantity
			o.updatedAt = time.Now()
			return nil
		}
	}
	return NewItemNotFoundError(itemID)
}

// Item returns the item with the given ID.
func (o *Order) Item(itemID string) (OrderItem, bool) {
	for _, item := range o.items {
		if item.id == itemID {
			return item, true
		}
	}
	return OrderItem{}, false
}

// RecalculatedTotal returns the current sum of line totals. It may differ
// from TotalAmount after an item correction.
func (o *Order) RecalculatedTotal() (*shared.Money, error) {
	total := shared.NewMoney(0, o.totalAmount.Currency())
	for _, item := range o.items {
		lineTotal, err := item.LineTotal()
		if err != nil {
			return nil, err
		}
		total, err = total.Add(*lineTotal)
		if err != nil {
			return nil, err
		}
	}
	return total, nil
}

// ============================================================================
// Accessors
// ============================================================================

func (o *Order) ID() string     { return o.id }
func (o *Order) UserID() string { return o.userID }

// Items returns a copy; callers cannot mutate aggregate state through it.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() shared.Money  { return o.totalAmount }
func (o *Order) Status() Status             { return o.status }
func (o *Order) ContactName() string        { return o.contactName }
func (o *Order) ContactPhone() string       { return o.contactPhone }
func (o *Order) Notes() string              { return o.notes }
func (o *Order) PaymentType() PaymentType   { return o.paymentType }
func (o *Order) Version() int               { return o.version }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }

// IsNew reports whether the aggregate has never been persisted. The
// repository uses it to choose between insert and conditional update.
func (o *Order) IsNew() bool { return o.isNew }

// IncrementVersionForSave is called by the repository after a successful
// conditional update so the in-memory version matches the row.
func (o *Order) IncrementVersionForSave() {
	o.version++
}

// MarkPersisted is called by the repository after the first successful insert.
func (o *Order) MarkPersisted() {
	o.isNew = false
}

// PullEvents returns and clears the recorded domain events. The unit of work
// calls this inside the transaction to write the events to the outbox.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = o.events[:0]
	return events
}

// OrderItem accessors

func (item OrderItem) ID() string            { return item.id }
func (item OrderItem) OrderID() string       { return item.orderID }
func (item OrderItem) ProductID() string     { return item.productID }
func (item OrderItem) Name() string          { return item.name }
func (item OrderItem) LocalizedName() string { return item.localizedName }
func (item OrderItem) UnitPrice() shared.Money { return item.unitPrice }
func (item OrderItem) Quantity() int         { return item.quantity }

// LineTotal is derived, never stored: unit price snapshot times quantity.
func (item OrderItem) LineTotal() (*shared.Money, error) {
	return item.unitPrice.Multiply(item.quantity)
}

var _ shared.AggregateRoot = (*Order)(nil)
