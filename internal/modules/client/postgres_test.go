package client

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

func clientRows(c *Client) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "address",
		"total_spent", "outstanding_balance", "created_at", "updated_at",
	}).AddRow(c.ID, c.Name, c.Email, c.Phone, c.Address,
		c.TotalSpent, c.OutstandingBalance, time.Now(), time.Now())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		c := &Client{
			ID: uuid.New(), Name: "Karim B",
			TotalSpent: 185000, OutstandingBalance: 0,
		}
		mock.ExpectQuery(`FROM clients WHERE id=`).
			WithArgs(c.ID).
			WillReturnRows(clientRows(c))

		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.Name, got.Name)
		assert.Equal(t, int64(185000), got.TotalSpent)
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery(`FROM clients WHERE id=`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()
	c := &Client{ID: uuid.New(), Name: "Karim B", Email: "karim@example.com"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE clients SET name=`).
			WithArgs(c.ID, c.Name, c.Email, c.Phone, c.Address, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateProfile(ctx, c))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE clients SET name=`).
			WithArgs(c.ID, c.Name, c.Email, c.Phone, c.Address, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateProfile(ctx, c), apperr.ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM clients WHERE id=`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), apperr.ErrNotFound)
}

func TestRefreshFinancials(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	clientID := uuid.New()

	mock.ExpectExec(`UPDATE clients SET`).
		WithArgs(clientID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, RefreshFinancials(context.Background(), db, clientID))
	assert.NoError(t, mock.ExpectationsWereMet())
}
