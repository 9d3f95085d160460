package payment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdelali-01/car-sales-backend/internal/apperr"
)

func paymentRows(p *Payment) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_id", "amount", "method", "status", "paid_at", "created_at", "updated_at",
	}).AddRow(p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.PaidAt, time.Now(), time.Now())
}

func expectOrderLock(mock sqlmock.Sqlmock, orderID, clientID uuid.UUID, total int64, status string) {
	mock.ExpectQuery(`SELECT client_id, total, status FROM orders WHERE id=\$1 FOR UPDATE`).
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "total", "status"}).
			AddRow(clientID, total, status))
}

func TestRepository_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()
	orderID := uuid.New()
	clientID := uuid.New()

	newPayment := func(amount int64) *Payment {
		return &Payment{
			ID:      uuid.New(),
			OrderID: orderID,
			Amount:  amount,
			Method:  MethodCash,
			Status:  StatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		p := newPayment(100000)

		mock.ExpectBegin()
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO payments`).
			WithArgs(p.ID, p.OrderID, p.Amount, p.Method, p.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Record(ctx, p))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Overpayment", func(t *testing.T) {
		// 100000 already paid against a 185000 total; 90000 more would
		// overshoot, and nothing is inserted.
		p := newPayment(90000)

		mock.ExpectBegin()
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100000))
		mock.ExpectRollback()

		err := repo.Record(ctx, p)
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExactRemainder", func(t *testing.T) {
		p := newPayment(85000)

		mock.ExpectBegin()
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100000))
		mock.ExpectExec(`INSERT INTO payments`).
			WithArgs(p.ID, p.OrderID, p.Amount, p.Method, p.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Record(ctx, p))
	})

	t.Run("CancelledOrder", func(t *testing.T) {
		p := newPayment(1000)

		mock.ExpectBegin()
		expectOrderLock(mock, orderID, clientID, 185000, "CANCELLED")
		mock.ExpectRollback()

		err := repo.Record(ctx, p)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("OrderMissing", func(t *testing.T) {
		p := newPayment(1000)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT client_id, total, status FROM orders WHERE id=\$1 FOR UPDATE`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"client_id", "total", "status"}))
		mock.ExpectRollback()

		err := repo.Record(ctx, p)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_MarkPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()
	orderID := uuid.New()
	clientID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		p := &Payment{
			ID: uuid.New(), OrderID: orderID, Amount: 85000,
			Method: MethodBankTransfer, Status: StatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM payments WHERE id=\$1`).
			WithArgs(p.ID).
			WillReturnRows(paymentRows(p))
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100000))
		mock.ExpectExec(`UPDATE payments SET status=\$2, paid_at=\$3, updated_at=\$3`).
			WithArgs(p.ID, StatusPaid, sqlmock.AnyArg(), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE clients SET`).
			WithArgs(clientID, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := repo.MarkPaid(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, got.Status)
		assert.NotNil(t, got.PaidAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyPaid", func(t *testing.T) {
		now := time.Now()
		p := &Payment{
			ID: uuid.New(), OrderID: orderID, Amount: 85000,
			Method: MethodCash, Status: StatusPaid, PaidAt: &now,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM payments WHERE id=\$1`).
			WithArgs(p.ID).
			WillReturnRows(paymentRows(p))
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectRollback()

		_, err := repo.MarkPaid(ctx, p.ID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("SettledConcurrently", func(t *testing.T) {
		// The payment still reads PENDING before the order lock, but a
		// concurrent MarkPaid committed in between; the guarded update
		// affects no rows and the duplicate is rejected, not replayed.
		p := &Payment{
			ID: uuid.New(), OrderID: orderID, Amount: 85000,
			Method: MethodCash, Status: StatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM payments WHERE id=\$1`).
			WithArgs(p.ID).
			WillReturnRows(paymentRows(p))
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100000))
		mock.ExpectExec(`UPDATE payments SET status=\$2, paid_at=\$3, updated_at=\$3`).
			WithArgs(p.ID, StatusPaid, sqlmock.AnyArg(), StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.MarkPaid(ctx, p.ID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PendingSetWouldOverflow", func(t *testing.T) {
		// Both pending payments fit individually; only the first can be
		// marked paid.
		p := &Payment{
			ID: uuid.New(), OrderID: orderID, Amount: 100000,
			Method: MethodCash, Status: StatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM payments WHERE id=\$1`).
			WithArgs(p.ID).
			WillReturnRows(paymentRows(p))
		expectOrderLock(mock, orderID, clientID, 185000, "CONFIRMED")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(100000))
		mock.ExpectRollback()

		_, err := repo.MarkPaid(ctx, p.ID)
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM payments WHERE id=\$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.MarkPaid(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_ListByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	orderID := uuid.New()

	p := &Payment{
		ID: uuid.New(), OrderID: orderID, Amount: 50000,
		Method: MethodCash, Status: StatusPending,
	}
	mock.ExpectQuery(`FROM payments`).
		WithArgs(orderID).
		WillReturnRows(paymentRows(p))

	payments, err := repo.ListByOrder(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, p.ID, payments[0].ID)
}
