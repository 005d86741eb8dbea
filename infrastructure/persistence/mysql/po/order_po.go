package po

import (
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// OrderPO is the order row. Pure database mapping, no business logic and no
// GORM associations; items are loaded and written explicitly to keep the
// aggregate boundary out of the ORM's hands.
type OrderPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	UserID        string    `gorm:"size:64;index;not null"`
	Status        string    `gorm:"size:20;index;not null"`
	TotalAmount   int64     `gorm:"not null"`
	TotalCurrency string    `gorm:"size:3;not null"`
	ContactName   string    `gorm:"size:255"`
	ContactPhone  string    `gorm:"size:32"`
	Notes         string    `gorm:"size:1024"`
	PaymentType   string    `gorm:"size:20;index"`
	Version       int       `gorm:"default:0;not null"`
	CreatedAt     time.Time `gorm:"index;not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO is the order line row. Name and price columns are snapshots
// taken at assembly time; nothing ever writes fresher catalog data into them.
type OrderItemPO struct {
	ID                string `gorm:"primaryKey;size:64"`
	OrderID           string `gorm:"size:64;index;not null"`
	ProductID         string `gorm:"size:64;not null"`
	ProductName       string `gorm:"size:255;not null"`
	ProductNameLocale string `gorm:"size:255"`
	UnitPrice         int64  `gorm:"not null"`
	UnitCurrency      string `gorm:"size:3;not null"`
	Quantity          int    `gorm:"not null"`
}

func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts the aggregate to persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:            o.ID(),
		UserID:        o.UserID(),
		Status:        string(o.Status()),
		TotalAmount:   o.TotalAmount().Amount(),
		TotalCurrency: o.TotalAmount().Currency(),
		ContactName:   o.ContactName(),
		ContactPhone:  o.ContactPhone(),
		Notes:         o.Notes(),
		PaymentType:   string(o.PaymentType()),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:                item.ID(),
			OrderID:           o.ID(),
			ProductID:         item.ProductID(),
			ProductName:       item.Name(),
			ProductNameLocale: item.LocalizedName(),
			UnitPrice:         item.UnitPrice().Amount(),
			UnitCurrency:      item.UnitPrice().Currency(),
			Quantity:          item.Quantity(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain reconstructs the aggregate from rows.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:            itemPO.ID,
			OrderID:       itemPO.OrderID,
			ProductID:     itemPO.ProductID,
			Name:          itemPO.ProductName,
			LocalizedName: itemPO.ProductNameLocale,
			UnitPrice:     *shared.NewMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			Quantity:      itemPO.Quantity,
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:           p.ID,
		UserID:       p.UserID,
		Items:        items,
		TotalAmount:  *shared.NewMoney(p.TotalAmount, p.TotalCurrency),
		Status:       order.Status(p.Status),
		ContactName:  p.ContactName,
		ContactPhone: p.ContactPhone,
		Notes:        p.Notes,
		PaymentType:  order.PaymentType(p.PaymentType),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	})
}
