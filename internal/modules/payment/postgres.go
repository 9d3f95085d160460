package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/modules/client"
	"github.com/abdelali-01/car-sales-backend/internal/store"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const paymentColumns = `id, order_id, amount, method, status, paid_at, created_at, updated_at`

func (r *postgresRepo) Record(ctx context.Context, p *Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ord, err := lockParentOrder(ctx, tx, p.OrderID)
	if err != nil {
		return err
	}
	if ord.status == "CANCELLED" {
		return fmt.Errorf("order %s is cancelled: %w", p.OrderID, apperr.ErrInvalidState)
	}

	paid, err := paidTotal(ctx, tx, p.OrderID)
	if err != nil {
		return err
	}
	if paid+p.Amount > ord.total {
		return fmt.Errorf("payment of %d would exceed order total %d (already paid %d): %w",
			p.Amount, ord.total, paid, apperr.ErrInvalidAmount)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (id, order_id, amount, method, status)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.OrderID, p.Amount, p.Method, p.Status)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) MarkPaid(ctx context.Context, id uuid.UUID) (*Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	ord, err := lockParentOrder(ctx, tx, p.OrderID)
	if err != nil {
		return nil, err
	}

	if p.Status == StatusPaid {
		return nil, fmt.Errorf("payment %s is already paid: %w", id, apperr.ErrInvalidState)
	}

	// Two PENDING payments can each fit individually but overflow
	// together, so the invariant is re-checked against the paid set here.
	paid, err := paidTotal(ctx, tx, p.OrderID)
	if err != nil {
		return nil, err
	}
	if paid+p.Amount > ord.total {
		return nil, fmt.Errorf("marking payment %s paid would exceed order total %d (already paid %d): %w",
			id, ord.total, paid, apperr.ErrInvalidAmount)
	}

	now := time.Now()

	// The payment row was read before the order lock, so a concurrent
	// MarkPaid may have settled it in between. The status guard makes the
	// flip single-shot; zero rows means the race was lost.
	res, err := tx.ExecContext(ctx, `
		UPDATE payments SET status=$2, paid_at=$3, updated_at=$3
		WHERE id=$1 AND status=$4`,
		p.ID, StatusPaid, now, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("mark payment paid: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("payment %s is already paid: %w", id, apperr.ErrInvalidState)
	}

	p.Status = StatusPaid
	p.PaidAt = &now
	p.UpdatedAt = now

	if err := client.RefreshFinancials(ctx, tx, ord.clientID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, apperr.ErrNotFound)
	}
	return p, err
}

func (r *postgresRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Payment, error) {
	return r.queryPayments(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
}

func (r *postgresRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Payment, error) {
	return r.queryPayments(ctx, `
		SELECT p.id, p.order_id, p.amount, p.method, p.status, p.paid_at, p.created_at, p.updated_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE o.client_id=$1 ORDER BY p.created_at ASC`, clientID)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type parentOrder struct {
	clientID uuid.UUID
	total    int64
	status   string
}

// lockParentOrder locks the order row FOR UPDATE so concurrent payment
// mutations and order transitions on the same order serialize.
func lockParentOrder(ctx context.Context, tx store.DBTX, orderID uuid.UUID) (*parentOrder, error) {
	ord := &parentOrder{}
	err := tx.QueryRowContext(ctx,
		`SELECT client_id, total, status FROM orders WHERE id=$1 FOR UPDATE`, orderID).
		Scan(&ord.clientID, &ord.total, &ord.status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return ord, nil
}

func paidTotal(ctx context.Context, tx store.DBTX, orderID uuid.UUID) (int64, error) {
	var paid int64
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE order_id=$1 AND status='PAID'`, orderID).Scan(&paid)
	return paid, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*Payment, error) {
	p := &Payment{}
	var paidAt sql.NullTime
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status,
		&paidAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	return p, nil
}

func (r *postgresRepo) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
