package repository

import (
	"context"
	"errors"
	"time"

	"order-backoffice/internal/model"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the order changed under us (optimistic lock miss);
	// callers must re-read authoritative state, never retry blindly.
	ErrConflict = errors.New("order version conflict")
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	// SaveSnapshot persists the recomputed payment aggregates, guarded by
	// the version the snapshot was derived from.
	SaveSnapshot(ctx context.Context, tx *gorm.DB, order *model.Order) error
	List(ctx context.Context, status *model.OrderStatus) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) SaveSnapshot(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"total_paid":     order.TotalPaid,
			"remaining":      order.Remaining,
			"payment_status": order.PaymentStatus,
			"payment_method": order.PaymentMethod,
			"version":        order.Version + 1,
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}

	order.Version++
	return nil
}

func (r *orderRepoImpl) List(ctx context.Context, status *model.OrderStatus) ([]*model.Order, error) {
	var orders []*model.Order
	q := r.db.WithContext(ctx)
	if status != nil {
		q = q.Where("order_status = ?", *status)
	}
	err := q.Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}
