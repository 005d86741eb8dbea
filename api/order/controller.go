/*
Package order - order API controller.

Responsibilities:
 1. Parse and validate HTTP input.
 2. Delegate to the order application service.
 3. Render replies through the response package.

Binding errors return 400 directly via response.HandleError; business errors
go through response.HandleAppError, which maps stable error codes to HTTP
statuses.

The authenticated caller is taken from the X-User-ID header, which the
gateway in front of this service sets after verifying the session. The
mark-paid route has no caller check at all: it is exposed to the payment
provider's callback, which authenticates at the network layer.
*/
package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vladyslavplus/KosherClouds-sub000/api/response"
	orderapp "github.com/vladyslavplus/KosherClouds-sub000/application/order"
	"github.com/vladyslavplus/KosherClouds-sub000/pkg/errors"
)

// UserIDHeader carries the authenticated user ID set by the edge gateway.
const UserIDHeader = "X-User-ID"

// Controller exposes the order lifecycle over HTTP.
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes registers all order routes on the API group.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("/from-cart", c.CreateFromCart)
		orderGroup.POST("", c.CreateDraft)
		orderGroup.GET("/search", c.Search)
		orderGroup.GET("/user/:userId", c.GetUserOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.POST("/:id/confirm", c.Confirm)
		orderGroup.POST("/:id/paid", c.MarkPaid)
		orderGroup.PUT("/:id", c.Update)
		orderGroup.DELETE("/:id", c.Delete)
		orderGroup.GET("/:id/items", c.ListItems)
	}

	itemGroup := router.Group("/order-items")
	{
		itemGroup.GET("/:id", c.GetItem)
		itemGroup.PUT("/:id/quantity", c.SetItemQuantity)
	}
}

func callerUserID(ctx *gin.Context) string {
	return ctx.GetHeader(UserIDHeader)
}

// CreateFromCart converts the caller's cart into a Draft order.
// POST /api/v1/orders/from-cart
func (c *Controller) CreateFromCart(ctx *gin.Context) {
	userID := callerUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "X-User-ID header is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateFromCart(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created from cart")
}

// CreateDraft creates a Draft from pre-validated line data.
// POST /api/v1/orders
func (c *Controller) CreateDraft(ctx *gin.Context) {
	var req orderapp.CreateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateDraft(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created")
}

// Confirm moves a Draft to Pending on behalf of its owner.
// POST /api/v1/orders/:id/confirm
func (c *Controller) Confirm(ctx *gin.Context) {
	userID := callerUserID(ctx)
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "X-User-ID header is required", http.StatusBadRequest)
		return
	}

	var req orderapp.ConfirmOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")
	req.CallerUserID = userID

	order, err := c.orderService.Confirm(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order confirmed")
}

// MarkPaid records a payment confirmation callback.
// POST /api/v1/orders/:id/paid
func (c *Controller) MarkPaid(ctx *gin.Context) {
	order, err := c.orderService.MarkPaid(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order marked as paid")
}

// Update applies an administrative partial update.
// PUT /api/v1/orders/:id
func (c *Controller) Update(ctx *gin.Context) {
	var req orderapp.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.OrderID = ctx.Param("id")

	order, err := c.orderService.Update(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated")
}

// Delete hard-deletes an order.
// DELETE /api/v1/orders/:id
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.orderService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// GetOrder returns one order with its items.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.GetOrder(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved")
}

// GetUserOrders returns all orders of one user, newest first.
// GET /api/v1/orders/user/:userId
func (c *Controller) GetUserOrders(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if userID == "" {
		response.HandleError(ctx, errors.BadRequest("user ID is required"), "user ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.GetUserOrders(ctx.Request.Context(), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "user orders retrieved")
}

// Search returns one page of orders matching the query filters.
// GET /api/v1/orders/search
func (c *Controller) Search(ctx *gin.Context) {
	var req orderapp.SearchOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	page, err := c.orderService.Search(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, page.Orders, response.Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}, "orders retrieved")
}

// ListItems returns an order's items in creation order.
// GET /api/v1/orders/:id/items
func (c *Controller) ListItems(ctx *gin.Context) {
	items, err := c.orderService.ListItems(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, items, "order items retrieved")
}

// GetItem returns one order line.
// GET /api/v1/order-items/:id
func (c *Controller) GetItem(ctx *gin.Context) {
	item, err := c.orderService.GetItem(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "order item retrieved")
}

// SetItemQuantity adjusts one line's quantity.
// PUT /api/v1/order-items/:id/quantity
func (c *Controller) SetItemQuantity(ctx *gin.Context) {
	var req orderapp.SetItemQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.ItemID = ctx.Param("id")

	item, err := c.orderService.SetItemQuantity(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, item, "item quantity updated")
}
