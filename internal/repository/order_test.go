package repository

import (
	"context"
	"path/filepath"
	"testing"

	"order-backoffice/internal/model"
	"order-backoffice/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Order{}, &model.PaymentRecord{}))
	return db
}

func TestOrderSaveSnapshotVersionConflict(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &model.Order{
		ID:            "ord-1",
		TotalPrice:    100000,
		Remaining:     100000,
		PaymentStatus: payment.StatusUnpaid,
		OrderStatus:   model.OrderPending,
	}
	require.NoError(t, repo.Create(ctx, db, order))

	// First writer wins and bumps the version.
	first := *order
	first.TotalPaid = 40000
	first.Remaining = 60000
	first.PaymentStatus = payment.StatusPartial
	require.NoError(t, repo.SaveSnapshot(ctx, db, &first))
	assert.Equal(t, 1, first.Version)

	// Second writer derived its snapshot from the stale version.
	stale := *order
	stale.TotalPaid = 100000
	stale.Remaining = 0
	stale.PaymentStatus = payment.StatusPaid
	err := repo.SaveSnapshot(ctx, db, &stale)
	assert.ErrorIs(t, err, ErrConflict)

	// The stored row still carries the first writer's snapshot.
	stored, err := repo.FindByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, int64(40000), stored.TotalPaid)
	assert.Equal(t, payment.StatusPartial, stored.PaymentStatus)
	assert.Equal(t, 1, stored.Version)
}

func TestOrderFindByIDNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewOrderRepository(db)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentRecordPendingOnlyGuard(t *testing.T) {
	db := setupDB(t)
	repo := NewPaymentRecordRepository(db)
	ctx := context.Background()

	record := &model.PaymentRecord{
		ID:            "rec-1",
		OrderID:       "ord-1",
		Amount:        50000,
		ApprovalState: payment.ApprovalPending,
	}
	require.NoError(t, repo.Append(ctx, db, record))

	require.NoError(t, repo.SetApprovalState(ctx, db, "rec-1", payment.ApprovalApproved))

	// Once reviewed, the record is immutable.
	err := repo.SetApprovalState(ctx, db, "rec-1", payment.ApprovalRejected)
	assert.ErrorIs(t, err, ErrNotFound)

	stored, err := repo.FindByID(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, payment.ApprovalApproved, stored.ApprovalState)
}
