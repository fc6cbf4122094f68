package service

import (
	"context"
	"time"

	"order-backoffice/internal/dto"
	"order-backoffice/internal/events"
	"order-backoffice/internal/model"
	"order-backoffice/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CRMService interface {
	CreateCustomer(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context, stage *model.CustomerStage) ([]*model.Customer, error)
	RecordFollowUp(ctx context.Context, customerID, note string) error
	Broadcast(ctx context.Context, req dto.BroadcastRequest) (int, error)
}

type crmServiceImpl struct {
	customerRepo repository.CustomerRepository
	producer     EventPublisher
	logger       *zap.Logger
}

func NewCRMService(customerRepo repository.CustomerRepository, producer EventPublisher, logger *zap.Logger) CRMService {
	return &crmServiceImpl{
		customerRepo: customerRepo,
		producer:     producer,
		logger:       logger,
	}
}

func (s *crmServiceImpl) CreateCustomer(ctx context.Context, req dto.CustomerRequest) (*model.Customer, error) {
	stage := model.CustomerStage(req.Stage)
	if stage != model.StageCustomer {
		stage = model.StageLead
	}
	customer := &model.Customer{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Stage: stage,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *crmServiceImpl) ListCustomers(ctx context.Context, stage *model.CustomerStage) ([]*model.Customer, error) {
	return s.customerRepo.List(ctx, stage)
}

func (s *crmServiceImpl) RecordFollowUp(ctx context.Context, customerID, note string) error {
	return s.customerRepo.RecordFollowUp(ctx, customerID, note, time.Now().UTC())
}

// Broadcast publishes one BroadcastRequested event for a downstream
// messenger to fan out. The back office owns only the publish.
func (s *crmServiceImpl) Broadcast(ctx context.Context, req dto.BroadcastRequest) (int, error) {
	var stage *model.CustomerStage
	if req.Stage != "" {
		st := model.CustomerStage(req.Stage)
		stage = &st
	}

	customers, err := s.customerRepo.List(ctx, stage)
	if err != nil {
		return 0, err
	}

	recipients := make([]string, len(customers))
	for i, c := range customers {
		recipients[i] = c.ID
	}

	err = s.producer.Publish(events.EventBroadcastRequested, uuid.NewString(), events.BroadcastRequestedPayload{
		Message:    req.Message,
		Stage:      req.Stage,
		Recipients: recipients,
	})
	if err != nil {
		s.logger.Error("publish broadcast event", zap.Error(err))
		return 0, err
	}

	return len(recipients), nil
}
