package repository

import (
	"context"
	"errors"
	"time"

	"order-backoffice/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, customerID string) (*model.Customer, error)
	List(ctx context.Context, stage *model.CustomerStage) ([]*model.Customer, error)
	RecordFollowUp(ctx context.Context, customerID, note string, at time.Time) error
}

type customerRepoImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepoImpl{
		db: db,
	}
}

func (r *customerRepoImpl) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepoImpl) FindByID(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", customerID).
		First(&customer).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &customer, nil
}

func (r *customerRepoImpl) List(ctx context.Context, stage *model.CustomerStage) ([]*model.Customer, error) {
	var customers []*model.Customer
	q := r.db.WithContext(ctx)
	if stage != nil {
		q = q.Where("stage = ?", *stage)
	}
	err := q.Order("name").Find(&customers).Error
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *customerRepoImpl) RecordFollowUp(ctx context.Context, customerID, note string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"last_contacted_at": at,
			"follow_up_note":    note,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
