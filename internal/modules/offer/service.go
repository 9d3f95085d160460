package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/logger"
)

// Service defines the inventory business logic.
type Service interface {
	CreateOffer(ctx context.Context, req CreateOfferRequest) (*Offer, error)
	GetOffer(ctx context.Context, id string) (*Offer, error)
	ListOffers(ctx context.Context, status string) ([]*Offer, error)
	UpdateOffer(ctx context.Context, id string, req UpdateOfferRequest) (*Offer, error)
	DeleteOffer(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateOffer(ctx context.Context, req CreateOfferRequest) (*Offer, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be > 0: %w", apperr.ErrValidation)
	}
	if req.Mileage < 0 {
		return nil, fmt.Errorf("mileage must be >= 0: %w", apperr.ErrValidation)
	}

	o := &Offer{
		ID:          uuid.New(),
		Title:       req.Title,
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Mileage:     req.Mileage,
		Price:       req.Price,
		SellerName:  req.SellerName,
		SellerPhone: req.SellerPhone,
		Status:      StatusAvailable,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("offer created",
		zap.String("offer_id", o.ID.String()),
		zap.Int64("price", o.Price),
	)
	return s.repo.GetByID(ctx, o.ID)
}

func (s *service) GetOffer(ctx context.Context, id string) (*Offer, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListOffers(ctx context.Context, status string) ([]*Offer, error) {
	return s.repo.List(ctx, status)
}

func (s *service) UpdateOffer(ctx context.Context, id string, req UpdateOfferRequest) (*Offer, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	o, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		o.Title = *req.Title
	}
	if req.Brand != nil {
		o.Brand = *req.Brand
	}
	if req.Model != nil {
		o.Model = *req.Model
	}
	if req.Year != nil {
		o.Year = *req.Year
	}
	if req.Mileage != nil {
		o.Mileage = *req.Mileage
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be > 0: %w", apperr.ErrValidation)
		}
		// Price edits never touch existing orders: the total is frozen on
		// the order at confirmation.
		o.Price = *req.Price
	}
	if req.SellerName != nil {
		o.SellerName = *req.SellerName
	}
	if req.SellerPhone != nil {
		o.SellerPhone = *req.SellerPhone
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) DeleteOffer(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("offer deleted", zap.String("offer_id", id))
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid offer id %q: %w", id, apperr.ErrValidation)
	}
	return uid, nil
}
