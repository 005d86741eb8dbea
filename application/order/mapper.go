package order

import (
	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

func toItemSnapshots(items []DraftItemRequest) []order.ItemSnapshot {
	snapshots := make([]order.ItemSnapshot, len(items))
	for i, item := range items {
		snapshots[i] = order.ItemSnapshot{
			ProductID:     item.ProductID,
			Name:          item.Name,
			LocalizedName: item.LocalizedName,
			UnitPrice:     *shared.NewMoney(item.UnitPrice, item.Currency),
			Quantity:      item.Quantity,
		}
	}
	return snapshots
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := o.Items()
	itemResponses := make([]OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = toItemResponse(item)
	}

	return &OrderResponse{
		ID:           o.ID(),
		UserID:       o.UserID(),
		Status:       string(o.Status()),
		Items:        itemResponses,
		TotalAmount:  toMoneyResponse(o.TotalAmount()),
		ContactName:  o.ContactName(),
		ContactPhone: o.ContactPhone(),
		Notes:        o.Notes(),
		PaymentType:  string(o.PaymentType()),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toItemResponse(item order.OrderItem) OrderItemResponse {
	// Overflow cannot occur here: the quantity and price were accepted by the
	// aggregate, so the derived line total is representable.
	lineTotal, err := item.LineTotal()
	if err != nil {
		lineTotal = shared.NewMoney(0, item.UnitPrice().Currency())
	}

	return OrderItemResponse{
		ID:            item.ID(),
		OrderID:       item.OrderID(),
		ProductID:     item.ProductID(),
		Name:          item.Name(),
		LocalizedName: item.LocalizedName(),
		UnitPrice:     toMoneyResponse(item.UnitPrice()),
		Quantity:      item.Quantity(),
		LineTotal:     toMoneyResponse(*lineTotal),
	}
}

func toMoneyResponse(m shared.Money) MoneyResponse {
	return MoneyResponse{
		Amount:   m.Amount(),
		Currency: m.Currency(),
	}
}

func toSearchCriteria(req SearchOrdersRequest) order.SearchCriteria {
	return order.SearchCriteria{
		UserID:      req.UserID,
		Status:      order.Status(req.Status),
		PaymentType: order.PaymentType(req.PaymentType),
		MinAmount:   req.MinAmount,
		MaxAmount:   req.MaxAmount,
		From:        req.From,
		To:          req.To,
		Text:        req.Text,
		Page:        req.Page,
		PageSize:    req.PageSize,
		SortBy:      req.SortBy,
		SortOrder:   req.SortOrder,
	}
}
