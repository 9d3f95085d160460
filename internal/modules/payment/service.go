package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/logger"
)

// Service defines the payment reconciliation business logic.
type Service interface {
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error)
	MarkPaid(ctx context.Context, id string) (*Payment, error)
	GetPayment(ctx context.Context, id string) (*Payment, error)
	PaymentsForOrder(ctx context.Context, orderID string) ([]*Payment, error)
	PaymentsForClient(ctx context.Context, clientID string) ([]*Payment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*Payment, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order_id %q: %w", req.OrderID, apperr.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("amount must be > 0: %w", apperr.ErrInvalidAmount)
	}
	method := PaymentMethod(strings.ToUpper(req.Method))
	if !ValidMethod(method) {
		return nil, fmt.Errorf("unsupported payment method %q: %w", req.Method, apperr.ErrValidation)
	}

	p := &Payment{
		ID:      uuid.New(),
		OrderID: orderID,
		Amount:  req.Amount,
		Method:  method,
		Status:  StatusPending,
	}

	if err := s.repo.Record(ctx, p); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment recorded",
		zap.String("payment_id", p.ID.String()),
		zap.String("order_id", p.OrderID.String()),
		zap.Int64("amount", p.Amount),
	)
	return s.repo.GetByID(ctx, p.ID)
}

func (s *service) MarkPaid(ctx context.Context, id string) (*Payment, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.MarkPaid(ctx, uid)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("payment marked paid",
		zap.String("payment_id", p.ID.String()),
		zap.Int64("amount", p.Amount),
	)
	return p, nil
}

func (s *service) GetPayment(ctx context.Context, id string) (*Payment, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) PaymentsForOrder(ctx context.Context, orderID string) ([]*Payment, error) {
	uid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", orderID, apperr.ErrValidation)
	}
	return s.repo.ListByOrder(ctx, uid)
}

func (s *service) PaymentsForClient(ctx context.Context, clientID string) ([]*Payment, error) {
	uid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", clientID, apperr.ErrValidation)
	}
	return s.repo.ListByClient(ctx, uid)
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid payment id %q: %w", id, apperr.ErrValidation)
	}
	return uid, nil
}
