package repository

import (
	"context"
	"errors"

	"order-backoffice/internal/model"
	"order-backoffice/internal/payment"

	"gorm.io/gorm"
)

type PaymentRecordRepository interface {
	Append(ctx context.Context, tx *gorm.DB, record *model.PaymentRecord) error
	FindByID(ctx context.Context, recordID string) (*model.PaymentRecord, error)
	ListByOrder(ctx context.Context, orderID string) ([]*model.PaymentRecord, error)
	SetApprovalState(ctx context.Context, tx *gorm.DB, recordID string, state payment.ApprovalState) error
}

type paymentRecordRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRecordRepository(db *gorm.DB) PaymentRecordRepository {
	return &paymentRecordRepoImpl{
		db: db,
	}
}

func (r *paymentRecordRepoImpl) Append(ctx context.Context, tx *gorm.DB, record *model.PaymentRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *paymentRecordRepoImpl) FindByID(ctx context.Context, recordID string) (*model.PaymentRecord, error) {
	var record model.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", recordID).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &record, nil
}

func (r *paymentRecordRepoImpl) ListByOrder(ctx context.Context, orderID string) ([]*model.PaymentRecord, error) {
	var records []*model.PaymentRecord
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *paymentRecordRepoImpl) SetApprovalState(ctx context.Context, tx *gorm.DB, recordID string, state payment.ApprovalState) error {
	result := tx.WithContext(ctx).Model(&model.PaymentRecord{}).
		Where("id = ? AND approval_state = ?", recordID, payment.ApprovalPending).
		Update("approval_state", state)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
