package order

import (
	"errors"
	"testing"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

func testSnapshots() []ItemSnapshot {
	return []ItemSnapshot{
		{ProductID: "p1", Name: "Plov", UnitPrice: *shared.NewMoney(100, "UZS"), Quantity: 2},
		{ProductID: "p2", Name: "Lagman", UnitPrice: *shared.NewMoney(150, "UZS"), Quantity: 1},
	}
}

func mustDraft(t *testing.T, userID string) *Order {
	t.Helper()
	o, err := NewDraft(userID, testSnapshots())
	if err != nil {
		t.Fatalf("NewDraft() failed: %v", err)
	}
	return o
}

func eventNames(events []shared.DomainEvent) []string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}

func TestNewDraft(t *testing.T) {
	o := mustDraft(t, "u1")

	if o.Status() != StatusDraft {
		t.Errorf("status = %s, want %s", o.Status(), StatusDraft)
	}
	// 2*100 + 1*150
	if o.TotalAmount().Amount() != 350 {
		t.Errorf("total = %d, want 350", o.TotalAmount().Amount())
	}
	if len(o.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(o.Items()))
	}
	if !o.IsNew() {
		t.Error("IsNew() = false for fresh draft")
	}
	if events := o.PullEvents(); len(events) != 0 {
		t.Errorf("draft creation recorded events: %v", eventNames(events))
	}
}

func TestNewDraftValidation(t *testing.T) {
	if _, err := NewDraft("", testSnapshots()); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("missing user id: error = %v, want ErrInvalidInput", err)
	}
	if _, err := NewDraft("u1", nil); !errors.Is(err, ErrEmptyOrderItems) {
		t.Errorf("no items: error = %v, want ErrEmptyOrderItems", err)
	}

	bad := testSnapshots()
	bad[0].Quantity = 0
	if _, err := NewDraft("u1", bad); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: error = %v, want ErrInvalidQuantity", err)
	}
}

func TestConfirmPayOnPickup(t *testing.T) {
	o := mustDraft(t, "u1")

	if err := o.Confirm("u1", "Aziz", "+998901234567", "no onions", PaymentOnPickup); err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}

	if o.Status() != StatusPending {
		t.Errorf("status = %s, want %s", o.Status(), StatusPending)
	}
	if o.ContactPhone() != "+998901234567" {
		t.Errorf("contact phone not stored: %q", o.ContactPhone())
	}

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.created" {
		t.Fatalf("pickup confirmation events = %v, want [order.created]", eventNames(events))
	}
	created := events[0].(*OrderCreatedEvent)
	if created.TotalAmount().Amount() != 350 {
		t.Errorf("event total = %d, want 350", created.TotalAmount().Amount())
	}
}

func TestConfirmPayOnline(t *testing.T) {
	o := mustDraft(t, "u1")

	if err := o.Confirm("u1", "Aziz", "+998901234567", "", PaymentOnline); err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}

	// order.created is deferred until the payment callback
	if events := o.PullEvents(); len(events) != 0 {
		t.Fatalf("online confirmation events = %v, want none", eventNames(events))
	}
}

func TestConfirmGuards(t *testing.T) {
	t.Run("not owner", func(t *testing.T) {
		o := mustDraft(t, "u1")
		err := o.Confirm("intruder", "X", "+998", "", PaymentOnPickup)
		if !errors.Is(err, ErrNotOrderOwner) {
			t.Errorf("error = %v, want ErrNotOrderOwner", err)
		}
		if !errors.Is(err, shared.ErrUnauthorized) {
			t.Errorf("error not classified unauthorized: %v", err)
		}
		if o.Status() != StatusDraft {
			t.Errorf("status changed on failed confirm: %s", o.Status())
		}
	})

	t.Run("not draft", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.Confirm("u1", "A", "+998", "", PaymentOnPickup); err != nil {
			t.Fatalf("first confirm failed: %v", err)
		}
		err := o.Confirm("u1", "A", "+998", "", PaymentOnPickup)
		if !errors.Is(err, ErrOnlyDraftConfirmable) {
			t.Errorf("error = %v, want ErrOnlyDraftConfirmable", err)
		}
	})

	t.Run("bad payment type", func(t *testing.T) {
		o := mustDraft(t, "u1")
		err := o.Confirm("u1", "A", "+998", "", PaymentType("CASH"))
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("online payment fires deferred created event", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.Confirm("u1", "A", "+998", "", PaymentOnline); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		o.PullEvents()

		if err := o.MarkPaid(); err != nil {
			t.Fatalf("MarkPaid() failed: %v", err)
		}
		if o.Status() != StatusPaid {
			t.Errorf("status = %s, want %s", o.Status(), StatusPaid)
		}

		names := eventNames(o.PullEvents())
		if len(names) != 2 || names[0] != "order.paid" || names[1] != "order.created" {
			t.Errorf("events = %v, want [order.paid order.created]", names)
		}
	})

	t.Run("pickup payment emits only paid", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.Confirm("u1", "A", "+998", "", PaymentOnPickup); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		o.PullEvents()

		if err := o.MarkPaid(); err != nil {
			t.Fatalf("MarkPaid() failed: %v", err)
		}
		names := eventNames(o.PullEvents())
		if len(names) != 1 || names[0] != "order.paid" {
			t.Errorf("events = %v, want [order.paid]", names)
		}
	})

	t.Run("redelivered callback is silent", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.Confirm("u1", "A", "+998", "", PaymentOnline); err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if err := o.MarkPaid(); err != nil {
			t.Fatalf("first MarkPaid() failed: %v", err)
		}
		o.PullEvents()

		if err := o.MarkPaid(); err != nil {
			t.Fatalf("redelivered MarkPaid() failed: %v", err)
		}
		if events := o.PullEvents(); len(events) != 0 {
			t.Errorf("redelivery emitted events: %v", eventNames(events))
		}
	})

	t.Run("terminal state rejects", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.ApplyAdminUpdate(AdminUpdate{Status: statusPtr(StatusCanceled)}); err != nil {
			t.Fatalf("admin update failed: %v", err)
		}
		o.PullEvents()

		err := o.MarkPaid()
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("error = %v, want ErrInvalidTransition", err)
		}
	})
}

func statusPtr(s Status) *Status { return &s }

func TestApplyAdminUpdate(t *testing.T) {
	t.Run("status override skips successor checks", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.ApplyAdminUpdate(AdminUpdate{Status: statusPtr(StatusCompleted)}); err != nil {
			t.Fatalf("ApplyAdminUpdate() failed: %v", err)
		}
		if o.Status() != StatusCompleted {
			t.Errorf("status = %s, want %s", o.Status(), StatusCompleted)
		}
		names := eventNames(o.PullEvents())
		if len(names) != 1 || names[0] != "order.updated" {
			t.Errorf("events = %v, want [order.updated]", names)
		}
	})

	t.Run("empty update still emits", func(t *testing.T) {
		o := mustDraft(t, "u1")
		if err := o.ApplyAdminUpdate(AdminUpdate{}); err != nil {
			t.Fatalf("ApplyAdminUpdate() failed: %v", err)
		}
		if len(o.PullEvents()) != 1 {
			t.Error("empty admin update did not emit order.updated")
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		o := mustDraft(t, "u1")
		bad := Status("SHIPPED")
		err := o.ApplyAdminUpdate(AdminUpdate{Status: &bad})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestCorrectItemQuantity(t *testing.T) {
	o := mustDraft(t, "u1")
	itemID := o.Items()[0].ID()

	if err := o.CorrectItemQuantity(itemID, 5); err != nil {
		t.Fatalf("CorrectItemQuantity() failed: %v", err)
	}

	item, ok := o.Item(itemID)
	if !ok || item.Quantity() != 5 {
		t.Fatalf("quantity not updated: %d", item.Quantity())
	}

	// The stored total is frozen at assembly time
	if o.TotalAmount().Amount() != 350 {
		t.Errorf("stored total changed to %d, want 350", o.TotalAmount().Amount())
	}

	// The live sum reflects the correction: 5*100 + 1*150
	recalc, err := o.RecalculatedTotal()
	if err != nil {
		t.Fatalf("RecalculatedTotal() failed: %v", err)
	}
	if recalc.Amount() != 650 {
		t.Errorf("recalculated total = %d, want 650", recalc.Amount())
	}
}

func TestCorrectItemQuantityEdgeCases(t *testing.T) {
	o := mustDraft(t, "u1")
	itemID := o.Items()[0].ID()

	// Zero and negative quantities are stored as given
	for _, q := range []int{0, -3} {
		if err := o.CorrectItemQuantity(itemID, q); err != nil {
			t.Fatalf("CorrectItemQuantity(%d) failed: %v", q, err)
		}
		item, _ := o.Item(itemID)
		if item.Quantity() != q {
			t.Errorf("quantity = %d, want %d", item.Quantity(), q)
		}
	}

	if err := o.CorrectItemQuantity("missing", 1); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item: error = %v, want ErrItemNotFound", err)
	}
}

func TestCorrectItemQuantityIgnoresStatus(t *testing.T) {
	o := mustDraft(t, "u1")
	if err := o.Confirm("u1", "A", "+998", "", PaymentOnPickup); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if err := o.MarkPaid(); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	itemID := o.Items()[0].ID()
	if err := o.CorrectItemQuantity(itemID, 9); err != nil {
		t.Errorf("correction on paid order failed: %v", err)
	}
}

func TestMarkDeleted(t *testing.T) {
	o := mustDraft(t, "u1")
	o.MarkDeleted()

	events := o.PullEvents()
	if len(events) != 1 || events[0].EventName() != "order.deleted" {
		t.Fatalf("events = %v, want [order.deleted]", eventNames(events))
	}
	deleted := events[0].(*OrderDeletedEvent)
	if deleted.UserID() != "u1" {
		t.Errorf("event user = %s, want u1", deleted.UserID())
	}
}

func TestRebuildFromDTO(t *testing.T) {
	o := mustDraft(t, "u1")
	items := o.Items()

	rebuilt := RebuildFromDTO(ReconstructionDTO{
		ID:          o.ID(),
		UserID:      o.UserID(),
		Items:       items,
		TotalAmount: o.TotalAmount(),
		Status:      StatusPending,
		PaymentType: PaymentOnPickup,
		Version:     3,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	})

	if rebuilt.IsNew() {
		t.Error("rebuilt aggregate reports IsNew")
	}
	if rebuilt.Version() != 3 {
		t.Errorf("version = %d, want 3", rebuilt.Version())
	}
	if rebuilt.Status() != StatusPending {
		t.Errorf("status = %s, want %s", rebuilt.Status(), StatusPending)
	}
	if len(rebuilt.PullEvents()) != 0 {
		t.Error("rebuilt aggregate carries events")
	}
}

func TestPullEventsDrains(t *testing.T) {
	o := mustDraft(t, "u1")
	if err := o.Confirm("u1", "A", "+998", "", PaymentOnPickup); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if n := len(o.PullEvents()); n != 1 {
		t.Fatalf("first pull = %d events, want 1", n)
	}
	if n := len(o.PullEvents()); n != 0 {
		t.Errorf("second pull = %d events, want 0", n)
	}
}
