package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-backoffice/internal/dto"
	"order-backoffice/internal/events"
	"order-backoffice/internal/model"
	"order-backoffice/internal/payment"
	"order-backoffice/internal/repository"
	"order-backoffice/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrConfirmationFailed wraps downstream persistence failures. The caller
// gets no partial state: the record and the snapshot land together or not
// at all.
var ErrConfirmationFailed = errors.New("payment confirmation failed")

// EventPublisher is the slice of the kafka producer the flow needs.
type EventPublisher interface {
	Publish(eventType, correlationID string, payload any) error
}

type ConfirmationService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error)
	ConfirmPayment(ctx context.Context, orderID string, sub dto.PaymentSubmission) (*model.Order, error)
	ReviewPayment(ctx context.Context, recordID string, approve bool) (*model.Order, error)
	GetPaymentState(ctx context.Context, orderID string) (*dto.PaymentState, error)
}

type confirmationServiceImpl struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	recordRepo repository.PaymentRecordRepository
	uploader   storage.Uploader
	producer   EventPublisher
	logger     *zap.Logger
}

func NewConfirmationService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	recordRepo repository.PaymentRecordRepository,
	uploader storage.Uploader,
	producer EventPublisher,
	logger *zap.Logger,
) ConfirmationService {
	return &confirmationServiceImpl{
		db:         db,
		orderRepo:  orderRepo,
		recordRepo: recordRepo,
		uploader:   uploader,
		producer:   producer,
		logger:     logger,
	}
}

func (s *confirmationServiceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	order := &model.Order{
		ID:            uuid.NewString(),
		CustomerID:    req.CustomerID,
		TotalPrice:    req.TotalPrice,
		Remaining:     req.TotalPrice,
		PaymentStatus: payment.StatusFromCode(req.PaymentStatusCode),
		OrderStatus:   model.OrderPending,
		PaymentMethod: req.PaymentMethod,
	}
	if order.TotalPrice < 0 {
		return nil, payment.ErrInvalidAmount
	}

	if err := s.orderRepo.Create(ctx, s.db, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return order, nil
}

// ConfirmPayment runs one confirmation submission end to end: upload the
// proof, validate the declared amount against the derived state, then append
// a PENDING record and persist the recomputed snapshot in one transaction.
func (s *confirmationServiceImpl) ConfirmPayment(ctx context.Context, orderID string, sub dto.PaymentSubmission) (*model.Order, error) {
	// Proof is mandatory and must be stored before any validation runs.
	if sub.Proof == nil {
		return nil, fmt.Errorf("%w: missing proof of payment", storage.ErrUploadFailed)
	}
	proofRef, err := s.uploader.Save(orderID, sub.ProofFilename, sub.Proof)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: list payment records: %v", ErrConfirmationFailed, err)
	}

	// Derive the current state from the full record list instead of
	// trusting the cached columns; stale snapshots otherwise let an order
	// validate against the wrong status.
	current := payment.ComputeStatus(order.TotalPrice, model.EngineRecords(records))

	if err := payment.ValidateNewPayment(current.Status, order.TotalPrice, current.TotalPaid, sub.Amount); err != nil {
		return nil, err
	}

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	record := &model.PaymentRecord{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		Amount:         sub.Amount,
		Method:         sub.Method,
		ProofOfPayment: proofRef,
		ApprovalState:  payment.ApprovalPending,
		SubmittedAt:    submittedAt,
	}

	next := payment.ComputeStatus(order.TotalPrice, append(model.EngineRecords(records), record.EngineRecord()))
	order.TotalPaid = next.TotalPaid
	order.Remaining = next.Remaining
	order.PaymentStatus = next.Status
	if sub.Method != "" {
		order.PaymentMethod = sub.Method
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recordRepo.Append(ctx, tx, record); err != nil {
			return fmt.Errorf("append payment record: %w", err)
		}
		if err := s.orderRepo.SaveSnapshot(ctx, tx, order); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrConfirmationFailed, err)
	}

	if err := s.producer.Publish(events.EventPaymentSubmitted, order.ID, events.PaymentSubmittedPayload{
		OrderID:       order.ID,
		RecordID:      record.ID,
		Amount:        record.Amount,
		Method:        record.Method,
		PaymentStatus: order.PaymentStatus.String(),
		Remaining:     order.Remaining,
	}); err != nil {
		s.logger.Error("publish payment submitted event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}

// ReviewPayment is the administrative approve/reject on a single PENDING
// record. The order snapshot is re-derived from the full record list, so a
// rejected-then-approved sequence converges on the right status.
func (s *confirmationServiceImpl) ReviewPayment(ctx context.Context, recordID string, approve bool) (*model.Order, error) {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, record.OrderID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByOrder(ctx, record.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: list payment records: %v", ErrConfirmationFailed, err)
	}

	state := payment.ApprovalRejected
	if approve {
		state = payment.ApprovalApproved
	}
	for _, r := range records {
		if r.ID == recordID {
			r.ApprovalState = state
		}
	}

	next := payment.ComputeStatus(order.TotalPrice, model.EngineRecords(records))
	order.TotalPaid = next.TotalPaid
	order.Remaining = next.Remaining
	order.PaymentStatus = next.Status

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recordRepo.SetApprovalState(ctx, tx, recordID, state); err != nil {
			return err
		}
		if err := s.orderRepo.SaveSnapshot(ctx, tx, order); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) || errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrConfirmationFailed, err)
	}

	if err := s.producer.Publish(events.EventPaymentReviewed, order.ID, events.PaymentReviewedPayload{
		OrderID:       order.ID,
		RecordID:      recordID,
		Approved:      approve,
		PaymentStatus: order.PaymentStatus.String(),
		TotalPaid:     order.TotalPaid,
		Remaining:     order.Remaining,
	}); err != nil {
		s.logger.Error("publish payment reviewed event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}

	return order, nil
}

func (s *confirmationServiceImpl) GetPaymentState(ctx context.Context, orderID string) (*dto.PaymentState, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	totals := payment.ComputeStatus(order.TotalPrice, model.EngineRecords(records))

	views := make([]dto.PaymentRecordView, len(records))
	for i, r := range records {
		views[i] = dto.PaymentRecordView{
			ID:             r.ID,
			Amount:         r.Amount,
			Method:         r.Method,
			ProofOfPayment: r.ProofOfPayment,
			ApprovalState:  string(r.ApprovalState),
			SubmittedAt:    r.SubmittedAt,
		}
	}

	return &dto.PaymentState{
		OrderID:           order.ID,
		PaymentStatus:     int(totals.Status),
		PaymentStatusName: totals.Status.String(),
		OrderStatus:       string(order.OrderStatus),
		TotalPrice:        order.TotalPrice,
		TotalPaid:         totals.TotalPaid,
		Remaining:         totals.Remaining,
		Records:           views,
	}, nil
}
