package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/logger"
)

// Service defines the client business logic.
type Service interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperr.ErrValidation)
	}

	c := &Client{
		ID:      uuid.New(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("client created", zap.String("client_id", c.ID.String()))
	return s.repo.GetByID(ctx, c.ID)
}

func (s *service) GetClient(ctx context.Context, id string) (*Client, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) ListClients(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*Client, error) {
	uid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", apperr.ErrValidation)
		}
		c.Name = *req.Name
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}

	if err := s.repo.UpdateProfile(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, uid)
}

func (s *service) DeleteClient(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, uid)
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid client id %q: %w", id, apperr.ErrValidation)
	}
	return uid, nil
}
