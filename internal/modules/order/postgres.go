package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/modules/client"
	"github.com/abdelali-01/car-sales-backend/internal/modules/offer"
	"github.com/abdelali-01/car-sales-backend/internal/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, offer_id, client_id, status, discount, shipping, total,
	created_at, updated_at, confirmed_at, completed_at, cancelled_at`

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status offer.OfferStatus
	var price int64
	err = tx.QueryRowContext(ctx,
		`SELECT status, price FROM offers WHERE id=$1`, o.OfferID).
		Scan(&status, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("offer %s: %w", o.OfferID, apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if status != offer.StatusAvailable {
		return fmt.Errorf("offer %s is %s: %w",
			o.OfferID, strings.ToLower(string(status)), apperr.ErrOfferUnavailable)
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id=$1)`, o.ClientID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("client %s: %w", o.ClientID, apperr.ErrNotFound)
	}

	// Provisional total; frozen at confirmation against the price then.
	o.Total = ComputeTotal(price, o.Discount, o.Shipping)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, offer_id, client_id, status, discount, shipping, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		o.ID, o.OfferID, o.ClientID, o.Status, o.Discount, o.Shipping, o.Total)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, strings.ToUpper(status))
	}
	query += ` ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, args...)
}

func (r *postgresRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE client_id=$1 ORDER BY created_at DESC`, clientID)
}

// ── lifecycle transitions ────────────────────────────────────────────────────

func (r *postgresRepo) Confirm(ctx context.Context, id uuid.UUID) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusConfirmed) {
		return nil, fmt.Errorf("confirm order in status %s: %w", o.Status, apperr.ErrInvalidState)
	}

	if err := offer.NewPostgresRepository(tx).Reserve(ctx, o.OfferID, o.ID); err != nil {
		return nil, err
	}

	var price int64
	if err := tx.QueryRowContext(ctx,
		`SELECT price FROM offers WHERE id=$1`, o.OfferID).Scan(&price); err != nil {
		return nil, err
	}
	total := ComputeTotal(price, o.Discount, o.Shipping)

	// Deposits can be collected while PENDING and the offer price can be
	// edited before confirmation, so the frozen total must still cover
	// what has already been paid.
	var paid int64
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE order_id=$1 AND status='PAID'`, o.ID).Scan(&paid)
	if err != nil {
		return nil, err
	}
	if paid > total {
		return nil, fmt.Errorf("confirming order %s at total %d below the %d already paid: %w",
			o.ID, total, paid, apperr.ErrInvalidAmount)
	}

	now := time.Now()
	o.Status = StatusConfirmed
	o.Total = total
	o.ConfirmedAt = &now
	o.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status=$2, total=$3, confirmed_at=$4, updated_at=$4
		WHERE id=$1`,
		o.ID, o.Status, o.Total, now)
	if err != nil {
		return nil, fmt.Errorf("confirm order: %w", err)
	}

	if err := client.RefreshFinancials(ctx, tx, o.ClientID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) Complete(ctx context.Context, id uuid.UUID, requireFullPayment bool) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusCompleted) {
		return nil, fmt.Errorf("complete order in status %s: %w", o.Status, apperr.ErrInvalidState)
	}

	if requireFullPayment {
		var paid int64
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount), 0) FROM payments
			WHERE order_id=$1 AND status='PAID'`, o.ID).Scan(&paid)
		if err != nil {
			return nil, err
		}
		if paid < o.Total {
			return nil, fmt.Errorf("paid %d of %d: %w", paid, o.Total, apperr.ErrPaymentIncomplete)
		}
	}

	if err := offer.NewPostgresRepository(tx).MarkSold(ctx, o.OfferID, o.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	o.Status = StatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status=$2, completed_at=$3, updated_at=$3
		WHERE id=$1`,
		o.ID, o.Status, now)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	if err := client.RefreshFinancials(ctx, tx, o.ClientID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) Cancel(ctx context.Context, id uuid.UUID) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, fmt.Errorf("cancel order in status %s: %w", o.Status, apperr.ErrInvalidState)
	}

	if o.Status == StatusConfirmed {
		if err := offer.NewPostgresRepository(tx).Release(ctx, o.OfferID, o.ID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	o.Status = StatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		UPDATE orders SET status=$2, cancelled_at=$3, updated_at=$3
		WHERE id=$1`,
		o.ID, o.Status, now)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	if err := client.RefreshFinancials(ctx, tx, o.ClientID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

// lockOrder loads the order row FOR UPDATE, serializing transitions and
// payment mutations on the same order for the rest of the transaction.
func lockOrder(ctx context.Context, tx store.DBTX, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(tx.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	return o, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var confirmedAt, completedAt, cancelledAt sql.NullTime
	err := row.Scan(
		&o.ID, &o.OfferID, &o.ClientID, &o.Status, &o.Discount, &o.Shipping,
		&o.Total, &o.CreatedAt, &o.UpdatedAt,
		&confirmedAt, &completedAt, &cancelledAt)
	if err != nil {
		return nil, err
	}
	if confirmedAt.Valid {
		o.ConfirmedAt = &confirmedAt.Time
	}
	if completedAt.Valid {
		o.CompletedAt = &completedAt.Time
	}
	if cancelledAt.Valid {
		o.CancelledAt = &cancelledAt.Time
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
