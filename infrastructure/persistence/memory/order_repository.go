package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/order"
)

// OrderRepository is an in-memory order.Repository. Used by tests and by the
// memory database mode for local development. It enforces the same version
// check as the MySQL implementation so concurrency behavior matches.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.ReconstructionDTO
}

// NewOrderRepository creates an empty in-memory repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]order.ReconstructionDTO),
	}
}

// snapshot detaches the aggregate state so later mutations of the live
// aggregate do not leak into the store.
func snapshot(o *order.Order) order.ReconstructionDTO {
	items := o.Items()
	itemDTOs := make([]order.OrderItem, len(items))
	copy(itemDTOs, items)

	return order.ReconstructionDTO{
		ID:           o.ID(),
		UserID:       o.UserID(),
		Items:        itemDTOs,
		TotalAmount:  o.TotalAmount(),
		Status:       o.Status(),
		ContactName:  o.ContactName(),
		ContactPhone: o.ContactPhone(),
		Notes:        o.Notes(),
		PaymentType:  o.PaymentType(),
		Version:      o.Version(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

// Save inserts or conditionally updates, mirroring the MySQL repository's
// version semantics.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.IsNew() {
		r.orders[o.ID()] = snapshot(o)
		o.MarkPersisted()
		return nil
	}

	stored, ok := r.orders[o.ID()]
	if !ok || stored.Version != o.Version() {
		return order.NewConcurrentModificationError(o.ID())
	}

	dto := snapshot(o)
	dto.Version = o.Version() + 1
	r.orders[o.ID()] = dto
	o.IncrementVersionForSave()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, ok := r.orders[id]
	if !ok {
		return nil, order.NewOrderNotFoundError(id)
	}
	return order.RebuildFromDTO(dto), nil
}

func (r *OrderRepository) FindByItemID(ctx context.Context, itemID string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, dto := range r.orders {
		for _, item := range dto.Items {
			if item.ID() == itemID {
				return order.RebuildFromDTO(dto), nil
			}
		}
	}
	return nil, order.NewItemNotFoundError(itemID)
}

func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*order.Order
	for _, dto := range r.orders {
		if dto.UserID == userID {
			result = append(result, order.RebuildFromDTO(dto))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt().After(result[j].CreatedAt())
	})
	return result, nil
}

func (r *OrderRepository) Search(ctx context.Context, criteria order.SearchCriteria) ([]*order.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []order.ReconstructionDTO
	for _, dto := range r.orders {
		if matches(dto, criteria) {
			matched = append(matched, dto)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		less := compareDTO(matched[i], matched[j], criteria.SortBy)
		if criteria.SortOrder == "ASC" {
			return less
		}
		return !less
	})

	total := int64(len(matched))
	start := (criteria.Page - 1) * criteria.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + criteria.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*order.Order, 0, end-start)
	for _, dto := range matched[start:end] {
		page = append(page, order.RebuildFromDTO(dto))
	}
	return page, total, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return order.NewOrderNotFoundError(id)
	}
	delete(r.orders, id)
	return nil
}

func matches(dto order.ReconstructionDTO, c order.SearchCriteria) bool {
	if c.UserID != "" && dto.UserID != c.UserID {
		return false
	}
	if c.Status != "" && dto.Status != c.Status {
		return false
	}
	if c.PaymentType != "" && dto.PaymentType != c.PaymentType {
		return false
	}
	if c.MinAmount != nil && dto.TotalAmount.Amount() < *c.MinAmount {
		return false
	}
	if c.MaxAmount != nil && dto.TotalAmount.Amount() > *c.MaxAmount {
		return false
	}
	if c.From != nil && dto.CreatedAt.Before(*c.From) {
		return false
	}
	if c.To != nil && dto.CreatedAt.After(*c.To) {
		return false
	}
	if c.Text != "" {
		needle := strings.ToLower(c.Text)
		haystack := strings.ToLower(dto.ContactName + " " + dto.ContactPhone + " " + dto.Notes)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func compareDTO(a, b order.ReconstructionDTO, sortBy string) bool {
	switch sortBy {
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "total_amount":
		return a.TotalAmount.Amount() < b.TotalAmount.Amount()
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

var _ order.Repository = (*OrderRepository)(nil)
