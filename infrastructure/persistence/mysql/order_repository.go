package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence"
	"github.com/vladyslavplus/KosherClouds-sub000/infrastructure/persistence/mysql/po"
)

// OrderRepository is the MySQL/GORM implementation of order.Repository.
// GORM associations are not used: items are loaded and written explicitly so
// the aggregate boundary stays in domain code.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context if present, else the base handle.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save persists the aggregate. Inside a unit of work it joins that
// transaction; standalone it opens its own so order and items stay atomic.
//
// Updates are conditional on the loaded version: "UPDATE ... WHERE id = ?
// AND version = ?". Zero affected rows means another transaction won the
// race and surfaces as ErrConcurrentModification, never a silent overwrite.
// This is what makes confirm safe under concurrent callers.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, o)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, o)
	})
}

func (r *OrderRepository) saveWithTx(tx *gorm.DB, o *order.Order) error {
	orderPO, itemPOs := po.FromOrderDomain(o)

	if o.IsNew() {
		if err := tx.Create(orderPO).Error; err != nil {
			return err
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		o.MarkPersisted()
		return nil
	}

	result := tx.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID(), o.Version()).
		Updates(map[string]any{
			"status":         orderPO.Status,
			"total_amount":   orderPO.TotalAmount,
			"total_currency": orderPO.TotalCurrency,
			"contact_name":   orderPO.ContactName,
			"contact_phone":  orderPO.ContactPhone,
			"notes":          orderPO.Notes,
			"payment_type":   orderPO.PaymentType,
			"version":        o.Version() + 1,
			"updated_at":     orderPO.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewConcurrentModificationError(o.ID())
	}

	// Item sync: delete then insert, simple and correct inside the tx
	if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	o.IncrementVersionForSave()
	return nil
}

// FindByID loads the aggregate with its items.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewOrderNotFoundError(id)
		}
		return nil, err
	}

	items, err := r.loadItems(db, id)
	if err != nil {
		return nil, err
	}
	return orderPO.ToDomain(items), nil
}

// FindByItemID resolves the owning order of a line item.
func (r *OrderRepository) FindByItemID(ctx context.Context, itemID string) (*order.Order, error) {
	db := r.getDB(ctx)

	var itemPO po.OrderItemPO
	if err := db.First(&itemPO, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NewItemNotFoundError(itemID)
		}
		return nil, err
	}

	return r.FindByID(ctx, itemPO.OrderID)
}

// FindByUserID returns a user's orders, newest first.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	db := r.getDB(ctx)

	var orderPOs []po.OrderPO
	if err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderPOs).Error; err != nil {
		return nil, err
	}

	return r.hydrate(db, orderPOs)
}

// Search applies the listing contract filters and returns one page plus the
// total match count.
func (r *OrderRepository) Search(ctx context.Context, criteria order.SearchCriteria) ([]*order.Order, int64, error) {
	db := r.getDB(ctx)

	query := db.Model(&po.OrderPO{})
	if criteria.UserID != "" {
		query = query.Where("user_id = ?", criteria.UserID)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", string(criteria.Status))
	}
	if criteria.PaymentType != "" {
		query = query.Where("payment_type = ?", string(criteria.PaymentType))
	}
	if criteria.MinAmount != nil {
		query = query.Where("total_amount >= ?", *criteria.MinAmount)
	}
	if criteria.MaxAmount != nil {
		query = query.Where("total_amount <= ?", *criteria.MaxAmount)
	}
	if criteria.From != nil {
		query = query.Where("created_at >= ?", *criteria.From)
	}
	if criteria.To != nil {
		query = query.Where("created_at <= ?", *criteria.To)
	}
	if criteria.Text != "" {
		pattern := "%" + criteria.Text + "%"
		query = query.Where("contact_name LIKE ? OR contact_phone LIKE ? OR notes LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderPOs []po.OrderPO
	if err := query.
		Order(criteria.SortBy + " " + criteria.SortOrder).
		Offset((criteria.Page - 1) * criteria.PageSize).
		Limit(criteria.PageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, err
	}

	orders, err := r.hydrate(db, orderPOs)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Delete hard-deletes the order and its items. No status guard.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)

	if err := db.Where("order_id = ?", id).Delete(&po.OrderItemPO{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&po.OrderPO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.NewOrderNotFoundError(id)
	}
	return nil
}

// loadItems reads a single order's items. Item IDs are time-ordered UUIDs,
// so sorting by ID yields creation order.
func (r *OrderRepository) loadItems(db *gorm.DB, orderID string) ([]po.OrderItemPO, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}
	return itemPOs, nil
}

func (r *OrderRepository) hydrate(db *gorm.DB, orderPOs []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		items, err := r.loadItems(db, orderPO.ID)
		if err != nil {
			return nil, err
		}
		orders[i] = orderPO.ToDomain(items)
	}
	return orders, nil
}

var _ order.Repository = (*OrderRepository)(nil)
