/*
Package order - application layer of the order lifecycle engine.

The application service orchestrates:
 1. Cart-to-order conversion: fan-out reads against the cart, catalog and
    profile services, the partial-availability policy, and persistence of the
    resulting Draft.
 2. Lifecycle transitions (confirm, mark-paid, administrative update, delete)
    with their conditional side effects: event emission and cart clearing.
 3. Item correction, which sits beside the state machine.

Events are never published from here. Aggregates record them, the unit of
work writes them to the outbox inside the commit, and the outbox worker
publishes them asynchronously. Cart clearing is the one remote side effect
issued from this layer, and only after the commit succeeded.
*/
package order

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
	"github.com/vladyslavplus/KosherClouds-sub000/pkg/logger"
)

// ApplicationService coordinates the order lifecycle business processes.
type ApplicationService struct {
	orders   order.Repository
	carts    order.CartGateway
	catalog  order.CatalogGateway
	profiles order.ProfileGateway
	uow      shared.UnitOfWork
}

// NewApplicationService creates the order application service.
func NewApplicationService(
	orders order.Repository,
	carts order.CartGateway,
	catalog order.CatalogGateway,
	profiles order.ProfileGateway,
	uow shared.UnitOfWork,
) *ApplicationService {
	return &ApplicationService{
		orders:   orders,
		carts:    carts,
		catalog:  catalog,
		profiles: profiles,
		uow:      uow,
	}
}

// ============================================================================
// Cart-to-order conversion
// ============================================================================

// CreateFromCart converts the user's cart into a persisted Draft order.
//
// Partial-availability policy: catalog state may have drifted since a line
// was added to the cart, so individually unpurchasable lines (product absent
// or unavailable) are dropped rather than failing the whole checkout. The
// conversion fails only when no purchasable line remains. Stock is read but
// not checked: reserving inventory is explicitly out of scope here.
//
// The cart is NOT cleared; clearing happens at confirmation so an abandoned
// Draft does not lose the cart.
func (s *ApplicationService) CreateFromCart(ctx context.Context, userID string) (*OrderResponse, error) {
	if userID == "" {
		return nil, shared.NewValidationError("order", "user_id", "user id is required")
	}

	// The cart read gates everything else: it produces the product IDs.
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, order.NewInvalidStateError(order.ErrCartEmpty)
	}

	// The per-line product reads are independent of each other, and the
	// profile read is independent of all of them. Issue everything at once
	// and join; results land in index-matched slices so no lock is needed.
	products := make([]*order.ProductInfo, len(cart.Items))
	productErrs := make([]error, len(cart.Items))
	var user *order.UserInfo
	var userErr error

	var wg sync.WaitGroup
	wg.Add(len(cart.Items) + 1)
	go func() {
		defer wg.Done()
		user, userErr = s.profiles.GetUser(ctx, userID)
	}()
	for i, line := range cart.Items {
		go func(i int, productID string) {
			defer wg.Done()
			products[i], productErrs[i] = s.catalog.GetProduct(ctx, productID)
		}(i, line.ProductID)
	}
	wg.Wait()

	// A failed read is a collaborator outage, not an unavailable product;
	// it must not be healed by the drop policy.
	for _, perr := range productErrs {
		if perr != nil {
			return nil, perr
		}
	}

	snapshots := make([]order.ItemSnapshot, 0, len(cart.Items))
	for i, line := range cart.Items {
		p := products[i]
		if p == nil || !p.IsAvailable {
			continue
		}
		snapshots = append(snapshots, order.ItemSnapshot{
			ProductID:     p.ID,
			Name:          p.Name,
			LocalizedName: p.LocalizedName,
			UnitPrice:     *shared.NewMoney(p.EffectivePrice, p.Currency),
			Quantity:      line.Quantity,
		})
	}
	if len(snapshots) == 0 {
		return nil, order.NewInvalidStateError(order.ErrNoValidProducts)
	}

	if userErr != nil {
		return nil, userErr
	}
	if user == nil {
		return nil, order.NewInvalidStateError(order.ErrUserInfoUnavailable)
	}
	if user.PhoneNumber == "" {
		return nil, order.NewInvalidStateError(order.ErrPhoneNumberRequired)
	}

	return s.persistDraft(ctx, userID, snapshots)
}

// CreateDraft is the lower-level factory: it persists a Draft from already
// validated line data without any gateway calls.
func (s *ApplicationService) CreateDraft(ctx context.Context, req CreateDraftRequest) (*OrderResponse, error) {
	return s.persistDraft(ctx, req.UserID, toItemSnapshots(req.Items))
}

// persistDraft writes the order and its items in a single atomic commit.
func (s *ApplicationService) persistDraft(ctx context.Context, userID string, snapshots []order.ItemSnapshot) (*OrderResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = order.NewDraft(userID, snapshots)
		if err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		s.uow.RegisterNew(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(o), nil
}

// ============================================================================
// Lifecycle transitions
// ============================================================================

// Confirm moves a Draft to Pending on behalf of its owner.
//
// Pay-on-pickup publishes order.created and clears the cart now. Online
// payment defers both to MarkPaid. The save is conditional on the aggregate
// version, so two concurrent confirmations of the same Draft cannot both
// win: the loser reloads a Pending order and fails the Draft-only guard.
func (s *ApplicationService) Confirm(ctx context.Context, req ConfirmOrderRequest) (*OrderResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if err := o.Confirm(req.CallerUserID, req.ContactName, req.ContactPhone, req.Notes, order.PaymentType(req.PaymentType)); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if o.PaymentType() == order.PaymentOnPickup {
		s.clearCart(ctx, o)
	}
	return toOrderResponse(o), nil
}

// MarkPaid records a payment confirmation from the trusted payment callback.
// No ownership check: the caller is system-internal. For online payment this
// is where the deferred order.created fires and the cart is cleared.
func (s *ApplicationService) MarkPaid(ctx context.Context, orderID string) (*OrderResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkPaid(); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if o.PaymentType() == order.PaymentOnline {
		s.clearCart(ctx, o)
	}
	return toOrderResponse(o), nil
}

// Update is the administrative override. The requested status is applied
// without successor checks, an order.updated event is always emitted and the
// override is logged with its inputs for the audit trail.
func (s *ApplicationService) Update(ctx context.Context, req UpdateOrderRequest) (*OrderResponse, error) {
	upd := order.AdminUpdate{
		Notes:        req.Notes,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	}
	if req.Status != nil {
		st := order.Status(*req.Status)
		upd.Status = &st
	}

	var o *order.Order
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if err := o.ApplyAdminUpdate(upd); err != nil {
			return err
		}
		if err := s.orders.Save(ctx, o); err != nil {
			return err
		}
		s.uow.RegisterDirty(o)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("order_id", o.ID()),
		zap.String("status", string(o.Status())),
	}
	if req.Status != nil {
		fields = append(fields, zap.String("status_override", *req.Status))
	}
	logger.Warn("administrative order update applied", fields...)

	return toOrderResponse(o), nil
}

// Delete hard-deletes an order in any state, including Paid. The
// order.deleted event is written in the same commit as the removal.
func (s *ApplicationService) Delete(ctx context.Context, orderID string) error {
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		o.MarkDeleted()
		s.uow.RegisterRemoved(o)
		return s.orders.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	logger.Warn("order hard-deleted", zap.String("order_id", orderID))
	return nil
}

// clearCart is fire-and-forget from the order's point of view: the
// transition has committed, so a cart service failure is logged, not
// propagated. The user can clear the cart manually.
func (s *ApplicationService) clearCart(ctx context.Context, o *order.Order) {
	if err := s.carts.ClearCart(ctx, o.UserID()); err != nil {
		logger.Warn("failed to clear cart after order transition",
			zap.String("order_id", o.ID()),
			zap.String("user_id", o.UserID()),
			zap.Error(err))
	}
}

// ============================================================================
// Item correction
// ============================================================================

// ListItems returns an order's items in creation order.
func (s *ApplicationService) ListItems(ctx context.Context, orderID string) ([]OrderItemResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := o.Items()
	responses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		responses[i] = toItemResponse(item)
	}
	return responses, nil
}

// GetItem returns a single line item.
func (s *ApplicationService) GetItem(ctx context.Context, itemID string) (*OrderItemResponse, error) {
	o, err := s.orders.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item, ok := o.Item(itemID)
	if !ok {
		return nil, order.NewItemNotFoundError(itemID)
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// SetItemQuantity adjusts one line's quantity. Any integer is stored as
// given, and the parent order's total is intentionally left untouched; see
// Order.CorrectItemQuantity.
func (s *ApplicationService) SetItemQuantity(ctx context.Context, req SetItemQuantityRequest) (*OrderItemResponse, error) {
	var o *order.Order

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		o, err = s.orders.FindByItemID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if err := o.CorrectItemQuantity(req.ItemID, req.Quantity); err != nil {
			return err
		}
		return s.orders.Save(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	item, _ := o.Item(req.ItemID)
	resp := toItemResponse(item)
	return &resp, nil
}

// ============================================================================
// Queries
// ============================================================================

// GetOrder returns one order with its items.
func (s *ApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetUserOrders returns all orders of one user, newest first.
func (s *ApplicationService) GetUserOrders(ctx context.Context, userID string) ([]*OrderResponse, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses, nil
}

// Search returns one page of orders matching the listing contract filters.
func (s *ApplicationService) Search(ctx context.Context, req SearchOrdersRequest) (*OrderPageResponse, error) {
	criteria := toSearchCriteria(req)
	criteria.Normalize()

	orders, total, err := s.orders.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}

	totalPages := int((total + int64(criteria.PageSize) - 1) / int64(criteria.PageSize))
	return &OrderPageResponse{
		Orders:     responses,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
