package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"prs-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func DbMock(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	gormdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqldb,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	return sqldb, gormdb, mock
}

func TestMaxRequestNumber(t *testing.T) {
	ctx := context.Background()

	t.Run("takes the advisory lock and returns the max", func(t *testing.T) {
		sqlDB, db, mock := DbMock(t)
		defer sqlDB.Close()
		repo := NewRequestRepository(db)

		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs("R260829").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT MAX\(request_number\) FROM "requests"`).
			WithArgs("R260829%").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("R2608290007"))

		max, err := repo.MaxRequestNumber(ctx, "R260829")
		require.NoError(t, err)
		assert.Equal(t, "R2608290007", max)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows for the prefix yields empty string", func(t *testing.T) {
		sqlDB, db, mock := DbMock(t)
		defer sqlDB.Close()
		repo := NewRequestRepository(db)

		mock.ExpectExec("SELECT pg_advisory_xact_lock").
			WithArgs("R260829").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT MAX\(request_number\) FROM "requests"`).
			WithArgs("R260829%").
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		max, err := repo.MaxRequestNumber(ctx, "R260829")
		require.NoError(t, err)
		assert.Equal(t, "", max)
	})
}

func TestRequestUpdateReportsMissingRow(t *testing.T) {
	sqlDB, db, mock := DbMock(t)
	defer sqlDB.Close()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "requests"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &model.Request{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Description:   "x",
		Justification: "x",
		DateNeeded:    time.Now(),
		DeliveryMode:  "Pickup",
		Status:        model.RequestStatusNew,
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListReviewExcluding(t *testing.T) {
	sqlDB, db, mock := DbMock(t)
	defer sqlDB.Close()
	repo := NewRequestRepository(db)

	visible := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE status = \$1 AND user_id <> \$2`).
		WithArgs(model.RequestStatusReview, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_number", "status"}).
			AddRow(visible.String(), "R2608290001", model.RequestStatusReview))

	requests, err := repo.ListReviewExcluding(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, visible, requests[0].ID)
}

func TestTotalForRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("sums quantity times price over the join", func(t *testing.T) {
		sqlDB, db, mock := DbMock(t)
		defer sqlDB.Close()
		repo := NewLineItemRepository(db)

		requestID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(line_items\.quantity \* products\.price\), 0\) FROM "line_items" JOIN products`).
			WithArgs(requestID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("59.94"))

		total, err := repo.TotalForRequest(ctx, requestID)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("59.94")))
	})

	t.Run("request with no items totals zero", func(t *testing.T) {
		sqlDB, db, mock := DbMock(t)
		defer sqlDB.Close()
		repo := NewLineItemRepository(db)

		requestID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE`).
			WithArgs(requestID).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		total, err := repo.TotalForRequest(ctx, requestID)
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}
