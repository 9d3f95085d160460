package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
	"github.com/abdelali-01/car-sales-backend/internal/store"
)

type postgresRepo struct{ db store.DBTX }

// NewPostgresRepository binds the repository to db, which may be a *sql.DB
// or an open *sql.Tx.
func NewPostgresRepository(db store.DBTX) Repository { return &postgresRepo{db: db} }

const offerColumns = `id, title, brand, model, year, mileage, price,
	seller_name, seller_phone, status, order_id, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o *Offer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offers
		  (id, title, brand, model, year, mileage, price, seller_name, seller_phone, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.Title, o.Brand, o.Model, o.Year, o.Mileage, o.Price,
		o.SellerName, o.SellerPhone, o.Status)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Offer, error) {
	o, err := scanOffer(r.db.QueryRowContext(ctx,
		`SELECT `+offerColumns+` FROM offers WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("offer %s: %w", id, apperr.ErrNotFound)
	}
	return o, err
}

func (r *postgresRepo) List(ctx context.Context, status string) ([]*Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status=$1`
		args = append(args, strings.ToUpper(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, o *Offer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers
		SET title=$2, brand=$3, model=$4, year=$5, mileage=$6, price=$7,
		    seller_name=$8, seller_phone=$9, updated_at=$10
		WHERE id=$1`,
		o.ID, o.Title, o.Brand, o.Model, o.Year, o.Mileage, o.Price,
		o.SellerName, o.SellerPhone, time.Now())
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return checkFound(res, o.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM offers WHERE id=$1 AND status=$2`, id, StatusAvailable)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Nothing deleted: either the offer is gone or it is held by an order.
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("offer %s is referenced by an active order: %w", id, apperr.ErrInvalidState)
}

// ── reservation protocol ──────────────────────────────────────────────────────

func (r *postgresRepo) Reserve(ctx context.Context, offerID, orderID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status=$3, order_id=$2, updated_at=$4
		WHERE id=$1 AND status=$5`,
		offerID, orderID, StatusReserved, time.Now(), StatusAvailable)
	if err != nil {
		return fmt.Errorf("reserve offer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	cur, err := r.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if cur.OrderID != nil && *cur.OrderID == orderID {
		// Duplicate confirm from the same order; the hold already exists.
		return nil
	}
	return fmt.Errorf("offer %s already %s: %w",
		offerID, strings.ToLower(string(cur.Status)), apperr.ErrConflict)
}

func (r *postgresRepo) MarkSold(ctx context.Context, offerID, orderID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status=$3, updated_at=$4
		WHERE id=$1 AND order_id=$2 AND status=$5`,
		offerID, orderID, StatusSold, time.Now(), StatusReserved)
	if err != nil {
		return fmt.Errorf("mark offer sold: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	cur, err := r.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if cur.OrderID == nil || *cur.OrderID != orderID {
		return fmt.Errorf("offer %s: %w", offerID, apperr.ErrNotOwner)
	}
	return fmt.Errorf("offer %s is %s, not reserved: %w",
		offerID, strings.ToLower(string(cur.Status)), apperr.ErrInvalidState)
}

func (r *postgresRepo) Release(ctx context.Context, offerID, orderID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offers SET status=$3, order_id=NULL, updated_at=$4
		WHERE id=$1 AND order_id=$2`,
		offerID, orderID, StatusAvailable, time.Now())
	if err != nil {
		return fmt.Errorf("release offer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, offerID); err != nil {
		return err
	}
	// Row exists but the owner does not match: stale or duplicate release.
	return fmt.Errorf("offer %s: %w", offerID, apperr.ErrNotOwner)
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOffer(row rowScanner) (*Offer, error) {
	o := &Offer{}
	var orderID sql.NullString
	err := row.Scan(
		&o.ID, &o.Title, &o.Brand, &o.Model, &o.Year, &o.Mileage, &o.Price,
		&o.SellerName, &o.SellerPhone, &o.Status, &orderID,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if orderID.Valid {
		uid, err := uuid.Parse(orderID.String)
		if err != nil {
			return nil, fmt.Errorf("parse order_id: %w", err)
		}
		o.OrderID = &uid
	}
	return o, nil
}

func checkFound(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("offer %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
