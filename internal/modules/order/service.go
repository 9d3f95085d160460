package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/logger"
)

// Service defines the order lifecycle business logic.
type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	ListClientOrders(ctx context.Context, clientID string) ([]*Order, error)
	ConfirmOrder(ctx context.Context, id string) (*Order, error)
	CompleteOrder(ctx context.Context, id string) (*Order, error)
	CancelOrder(ctx context.Context, id string) (*Order, error)
}

type service struct {
	repo Repository

	// requireFullPayment gates completion on sum(paid) >= total.
	requireFullPayment bool
}

func NewService(repo Repository, requireFullPayment bool) Service {
	return &service{repo: repo, requireFullPayment: requireFullPayment}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return nil, fmt.Errorf("invalid offer_id %q: %w", req.OfferID, apperr.ErrValidation)
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id %q: %w", req.ClientID, apperr.ErrValidation)
	}
	if req.Discount < 0 {
		return nil, fmt.Errorf("discount must be >= 0: %w", apperr.ErrValidation)
	}
	if req.Shipping < 0 {
		return nil, fmt.Errorf("shipping must be >= 0: %w", apperr.ErrValidation)
	}

	o := &Order{
		ID:       uuid.New(),
		OfferID:  offerID,
		ClientID: clientID,
		Status:   StatusPending,
		Discount: req.Discount,
		Shipping: req.Shipping,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("offer_id", o.OfferID.String()),
		zap.String("client_id", o.ClientID.String()),
	)
	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	return s.repo.List(ctx, status)
}

func (s *service) ListClientOrders(ctx context.Context, clientID string) ([]*Order, error) {
	uid, err := uuid.Parse(clientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", clientID, apperr.ErrValidation)
	}
	return s.repo.ListByClient(ctx, uid)
}

func (s *service) ConfirmOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Confirm(ctx, uid)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order confirmed",
		zap.String("order_id", o.ID.String()),
		zap.Int64("total", o.Total),
	)
	return o, nil
}

func (s *service) CompleteOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Complete(ctx, uid, s.requireFullPayment)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order completed",
		zap.String("order_id", o.ID.String()),
		zap.Int64("total", o.Total),
	)
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, id string) (*Order, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.Cancel(ctx, uid)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order cancelled", zap.String("order_id", o.ID.String()))
	return o, nil
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid order id %q: %w", id, apperr.ErrValidation)
	}
	return uid, nil
}
