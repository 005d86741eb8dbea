package order

import (
	"context"
	"errors"
	"testing"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence/memory"
)

type testEnv struct {
	service  *ApplicationService
	repo     *memory.OrderRepository
	carts    *memory.CartGateway
	catalog  *memory.CatalogGateway
	profiles *memory.ProfileGateway
	uow      *memory.UnitOfWork
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:     memory.NewOrderRepository(),
		carts:    memory.NewCartGateway(),
		catalog:  memory.NewCatalogGateway(),
		profiles: memory.NewProfileGateway(),
		uow:      memory.NewUnitOfWork(),
	}
	env.service = NewApplicationService(env.repo, env.carts, env.catalog, env.profiles, env.uow)
	return env
}

// seedCheckout sets up a user with a phone number and a two-line cart whose
// products are both purchasable. Line totals: 2*100 + 1*150 = 350.
func (env *testEnv) seedCheckout() {
	env.profiles.Users["u1"] = &order.UserInfo{ID: "u1", PhoneNumber: "+998901234567", DisplayName: "Aziz"}
	env.catalog.Products["p1"] = &order.ProductInfo{
		ID: "p1", Name: "Plov", Price: 120, EffectivePrice: 100, Currency: "UZS", IsAvailable: true, Stock: 10,
	}
	env.catalog.Products["p2"] = &order.ProductInfo{
		ID: "p2", Name: "Lagman", Price: 150, EffectivePrice: 150, Currency: "UZS", IsAvailable: true, Stock: 10,
	}
	env.carts.Carts["u1"] = &order.CartSnapshot{
		UserID: "u1",
		Items: []order.CartLine{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		},
	}
}

func countEvents(env *testEnv, name string) int {
	return len(env.uow.EventsNamed(name))
}

func TestCreateFromCart(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()

	resp, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateFromCart() failed: %v", err)
	}

	if resp.Status != string(order.StatusDraft) {
		t.Errorf("status = %s, want DRAFT", resp.Status)
	}
	// Promotion price is what gets snapshotted
	if resp.TotalAmount.Amount != 350 {
		t.Errorf("total = %d, want 350", resp.TotalAmount.Amount)
	}
	if len(resp.Items) != 2 {
		t.Errorf("items = %d, want 2", len(resp.Items))
	}

	// The cart survives draft creation
	if len(env.carts.Cleared) != 0 {
		t.Error("cart was cleared at draft creation")
	}
	// Draft creation announces nothing
	if n := len(env.uow.Events()); n != 0 {
		t.Errorf("draft creation produced %d events, want 0", n)
	}

	// The draft is persisted
	if _, err := env.repo.FindByID(context.Background(), resp.ID); err != nil {
		t.Errorf("draft not persisted: %v", err)
	}
}

func TestCreateFromCartEmptyCart(t *testing.T) {
	env := newTestEnv()
	env.profiles.Users["u1"] = &order.UserInfo{ID: "u1", PhoneNumber: "+998"}

	// No cart at all
	if _, err := env.service.CreateFromCart(context.Background(), "u1"); !errors.Is(err, order.ErrCartEmpty) {
		t.Errorf("missing cart: error = %v, want ErrCartEmpty", err)
	}

	// Cart exists but has no lines
	env.carts.Carts["u1"] = &order.CartSnapshot{UserID: "u1"}
	if _, err := env.service.CreateFromCart(context.Background(), "u1"); !errors.Is(err, order.ErrCartEmpty) {
		t.Errorf("empty cart: error = %v, want ErrCartEmpty", err)
	}
}

func TestCreateFromCartDropsUnpurchasableLines(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	env.catalog.Products["p3"] = &order.ProductInfo{
		ID: "p3", Name: "Somsa", EffectivePrice: 50, Currency: "UZS", IsAvailable: false,
	}
	env.carts.Carts["u1"].Items = append(env.carts.Carts["u1"].Items,
		order.CartLine{ProductID: "p3", Quantity: 4},    // unavailable
		order.CartLine{ProductID: "ghost", Quantity: 1}, // delisted
	)

	resp, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateFromCart() failed: %v", err)
	}

	if len(resp.Items) != 2 {
		t.Errorf("items = %d, want 2 (unpurchasable lines dropped)", len(resp.Items))
	}
	if resp.TotalAmount.Amount != 350 {
		t.Errorf("total = %d, want 350", resp.TotalAmount.Amount)
	}
}

func TestCreateFromCartAllLinesDropped(t *testing.T) {
	env := newTestEnv()
	env.profiles.Users["u1"] = &order.UserInfo{ID: "u1", PhoneNumber: "+998"}
	env.carts.Carts["u1"] = &order.CartSnapshot{
		UserID: "u1",
		Items:  []order.CartLine{{ProductID: "ghost", Quantity: 1}},
	}

	_, err := env.service.CreateFromCart(context.Background(), "u1")
	if !errors.Is(err, order.ErrNoValidProducts) {
		t.Errorf("error = %v, want ErrNoValidProducts", err)
	}
}

func TestCreateFromCartCatalogOutage(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	env.catalog.Err = shared.NewUpstreamError("catalog", errors.New("connection refused"))

	_, err := env.service.CreateFromCart(context.Background(), "u1")
	if !errors.Is(err, shared.ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
	// An outage must not be healed by the drop policy
	if errors.Is(err, order.ErrNoValidProducts) {
		t.Error("outage misclassified as no valid products")
	}
}

func TestCreateFromCartProfileChecks(t *testing.T) {
	t.Run("profile missing", func(t *testing.T) {
		env := newTestEnv()
		env.seedCheckout()
		delete(env.profiles.Users, "u1")

		_, err := env.service.CreateFromCart(context.Background(), "u1")
		if !errors.Is(err, order.ErrUserInfoUnavailable) {
			t.Errorf("error = %v, want ErrUserInfoUnavailable", err)
		}
	})

	t.Run("phone missing", func(t *testing.T) {
		env := newTestEnv()
		env.seedCheckout()
		env.profiles.Users["u1"].PhoneNumber = ""

		_, err := env.service.CreateFromCart(context.Background(), "u1")
		if !errors.Is(err, order.ErrPhoneNumberRequired) {
			t.Errorf("error = %v, want ErrPhoneNumberRequired", err)
		}
	})
}

func TestCreateFromCartIgnoresStock(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	env.catalog.Products["p1"].Stock = 3
	env.carts.Carts["u1"].Items[0].Quantity = 10

	resp, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("CreateFromCart() failed: %v", err)
	}
	if resp.Items[0].Quantity != 10 {
		t.Errorf("quantity = %d, want 10 (stock is informational)", resp.Items[0].Quantity)
	}
}

func confirmRequest(orderID string, paymentType order.PaymentType) ConfirmOrderRequest {
	return ConfirmOrderRequest{
		OrderID:      orderID,
		CallerUserID: "u1",
		ContactName:  "Aziz",
		ContactPhone: "+998901234567",
		PaymentType:  string(paymentType),
	}
}

func TestConfirmPayOnPickup(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	resp, err := env.service.Confirm(context.Background(), confirmRequest(draft.ID, order.PaymentOnPickup))
	if err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}

	if resp.Status != string(order.StatusPending) {
		t.Errorf("status = %s, want PENDING", resp.Status)
	}
	if n := countEvents(env, "order.created"); n != 1 {
		t.Errorf("order.created events = %d, want 1", n)
	}
	if len(env.carts.Cleared) != 1 || env.carts.Cleared[0] != "u1" {
		t.Errorf("cart not cleared after pickup confirmation: %v", env.carts.Cleared)
	}
}

func TestConfirmPayOnline(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if _, err := env.service.Confirm(context.Background(), confirmRequest(draft.ID, order.PaymentOnline)); err != nil {
		t.Fatalf("Confirm() failed: %v", err)
	}

	// Everything is deferred to the payment callback
	if n := len(env.uow.Events()); n != 0 {
		t.Fatalf("online confirmation produced %d events, want 0", n)
	}
	if len(env.carts.Cleared) != 0 {
		t.Fatal("cart cleared before payment")
	}

	resp, err := env.service.MarkPaid(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("MarkPaid() failed: %v", err)
	}
	if resp.Status != string(order.StatusPaid) {
		t.Errorf("status = %s, want PAID", resp.Status)
	}
	if n := countEvents(env, "order.paid"); n != 1 {
		t.Errorf("order.paid events = %d, want 1", n)
	}
	if n := countEvents(env, "order.created"); n != 1 {
		t.Errorf("order.created events = %d, want 1", n)
	}
	if len(env.carts.Cleared) != 1 {
		t.Error("cart not cleared after payment")
	}
}

func TestConfirmNotOwner(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	req := confirmRequest(draft.ID, order.PaymentOnPickup)
	req.CallerUserID = "intruder"

	_, err = env.service.Confirm(context.Background(), req)
	if !errors.Is(err, order.ErrNotOrderOwner) {
		t.Errorf("error = %v, want ErrNotOrderOwner", err)
	}
}

func TestMarkPaidRedelivery(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := env.service.Confirm(context.Background(), confirmRequest(draft.ID, order.PaymentOnline)); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := env.service.MarkPaid(context.Background(), draft.ID); err != nil {
		t.Fatalf("first MarkPaid() failed: %v", err)
	}

	if _, err := env.service.MarkPaid(context.Background(), draft.ID); err != nil {
		t.Fatalf("redelivered MarkPaid() failed: %v", err)
	}

	if n := countEvents(env, "order.paid"); n != 1 {
		t.Errorf("order.paid events after redelivery = %d, want 1", n)
	}
	if n := countEvents(env, "order.created"); n != 1 {
		t.Errorf("order.created events after redelivery = %d, want 1", n)
	}
}

func TestAdminUpdate(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	status := string(order.StatusCompleted)
	notes := "handled by support"
	resp, err := env.service.Update(context.Background(), UpdateOrderRequest{
		OrderID: draft.ID,
		Status:  &status,
		Notes:   &notes,
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	// DRAFT -> COMPLETED is not a legal successor; the override applies anyway
	if resp.Status != string(order.StatusCompleted) {
		t.Errorf("status = %s, want COMPLETED", resp.Status)
	}
	if resp.Notes != notes {
		t.Errorf("notes = %q, want %q", resp.Notes, notes)
	}
	if n := countEvents(env, "order.updated"); n != 1 {
		t.Errorf("order.updated events = %d, want 1", n)
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := env.service.Delete(context.Background(), draft.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	if n := countEvents(env, "order.deleted"); n != 1 {
		t.Errorf("order.deleted events = %d, want 1", n)
	}
	if _, err := env.service.GetOrder(context.Background(), draft.ID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("GetOrder after delete: error = %v, want ErrOrderNotFound", err)
	}
	if err := env.service.Delete(context.Background(), draft.ID); !errors.Is(err, order.ErrOrderNotFound) {
		t.Errorf("second delete: error = %v, want ErrOrderNotFound", err)
	}
}

func TestSetItemQuantity(t *testing.T) {
	env := newTestEnv()
	env.seedCheckout()
	draft, err := env.service.CreateFromCart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	itemID := draft.Items[0].ID

	item, err := env.service.SetItemQuantity(context.Background(), SetItemQuantityRequest{
		ItemID:   itemID,
		Quantity: 7,
	})
	if err != nil {
		t.Fatalf("SetItemQuantity() failed: %v", err)
	}
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", item.Quantity)
	}

	// The stored order total stays frozen
	updated, err := env.service.GetOrder(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("GetOrder() failed: %v", err)
	}
	if updated.TotalAmount.Amount != 350 {
		t.Errorf("total after correction = %d, want 350", updated.TotalAmount.Amount)
	}

	if _, err := env.service.SetItemQuantity(context.Background(), SetItemQuantityRequest{
		ItemID:   "missing",
		Quantity: 1,
	}); !errors.Is(err, order.ErrItemNotFound) {
		t.Errorf("unknown item: error = %v, want ErrItemNotFound", err)
	}
}

func TestCreateDraft(t *testing.T) {
	env := newTestEnv()

	resp, err := env.service.CreateDraft(context.Background(), CreateDraftRequest{
		UserID: "u2",
		Items: []DraftItemRequest{
			{ProductID: "p9", Name: "Shashlik", UnitPrice: 200, Currency: "UZS", Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("CreateDraft() failed: %v", err)
	}
	if resp.TotalAmount.Amount != 600 {
		t.Errorf("total = %d, want 600", resp.TotalAmount.Amount)
	}
	if resp.Status != string(order.StatusDraft) {
		t.Errorf("status = %s, want DRAFT", resp.Status)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv()

	for i := 0; i < 3; i++ {
		_, err := env.service.CreateDraft(context.Background(), CreateDraftRequest{
			UserID: "u1",
			Items: []DraftItemRequest{
				{ProductID: "p1", Name: "Plov", UnitPrice: int64(100 * (i + 1)), Currency: "UZS", Quantity: 1},
			},
		})
		if err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	page, err := env.service.Search(context.Background(), SearchOrdersRequest{
		UserID:   "u1",
		Page:     1,
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}

	if page.TotalItems != 3 {
		t.Errorf("total items = %d, want 3", page.TotalItems)
	}
	if page.TotalPages != 2 {
		t.Errorf("total pages = %d, want 2", page.TotalPages)
	}
	if len(page.Orders) != 2 {
		t.Errorf("page size = %d, want 2", len(page.Orders))
	}

	min := int64(250)
	filtered, err := env.service.Search(context.Background(), SearchOrdersRequest{
		UserID:    "u1",
		MinAmount: &min,
	})
	if err != nil {
		t.Fatalf("filtered Search() failed: %v", err)
	}
	if filtered.TotalItems != 1 {
		t.Errorf("filtered total = %d, want 1", filtered.TotalItems)
	}
}
