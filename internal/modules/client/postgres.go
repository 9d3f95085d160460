package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/store"
)

type postgresRepo struct{ db store.DBTX }

func NewPostgresRepository(db store.DBTX) Repository { return &postgresRepo{db: db} }

const clientColumns = `id, name, email, phone, address,
	total_spent, outstanding_balance, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, c *Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, email, phone, address)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.Name, c.Email, c.Phone, c.Address)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	c := &Client{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id=$1`, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.TotalSpent, &c.OutstandingBalance, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("client %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		c := &Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
			&c.TotalSpent, &c.OutstandingBalance, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, c *Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients SET name=$2, email=$3, phone=$4, address=$5, updated_at=$6
		WHERE id=$1`,
		c.ID, c.Name, c.Email, c.Phone, c.Address, time.Now())
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return checkFound(res, c.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return checkFound(res, id)
}

// RefreshFinancials recomputes the cached aggregates for one client from
// the order/payment set in a single statement. Order and payment
// transitions call it on their own transaction so the projection commits
// atomically with its trigger.
func RefreshFinancials(ctx context.Context, db store.DBTX, clientID uuid.UUID) error {
	_, err := db.ExecContext(ctx, `
		UPDATE clients SET
		  total_spent = COALESCE((
		    SELECT SUM(o.total) FROM orders o
		    WHERE o.client_id = clients.id AND o.status = 'COMPLETED'), 0),
		  outstanding_balance = COALESCE((
		    SELECT SUM(o.total) FROM orders o
		    WHERE o.client_id = clients.id AND o.status IN ('CONFIRMED','COMPLETED')), 0)
		  - COALESCE((
		    SELECT SUM(p.amount) FROM payments p
		    JOIN orders o ON o.id = p.order_id
		    WHERE o.client_id = clients.id AND p.status = 'PAID'
		      AND o.status IN ('CONFIRMED','COMPLETED')), 0),
		  updated_at = $2
		WHERE id = $1`,
		clientID, time.Now())
	if err != nil {
		return fmt.Errorf("refresh client financials: %w", err)
	}
	return nil
}

func checkFound(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("client %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
