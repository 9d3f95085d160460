package client

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for clients. Profile mutations only; the
// financial aggregates move through RefreshFinancials.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	UpdateProfile(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
