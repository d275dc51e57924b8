package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fleet/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPeriodRepository creates a GormPeriodRepository with a mocked SQL connection
func newMockPeriodRepository(t *testing.T) (*GormPeriodRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPeriodRepository(gormDB), mock, mockDB
}

func periodRows(id uuid.UUID, year, month int) *sqlmock.Rows {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "year", "month",
		"start_date", "end_date", "has_trips_in_progress", "notified_at",
	}).AddRow(id, time.Now(), time.Now(), year, month, start, end, false, nil)
}

func TestGormPeriodRepository_FindByID(t *testing.T) {
	t.Run("finds existing period", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		periodID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payroll_periods" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(periodID, 1).
			WillReturnRows(periodRows(periodID, 2026, 3))

		period, err := repo.FindByID(context.Background(), periodID)

		require.NoError(t, err)
		assert.Equal(t, periodID, period.ID)
		assert.Equal(t, 2026, period.Year)
		assert.Equal(t, 3, period.Month)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		periodID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payroll_periods"`).
			WithArgs(periodID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), periodID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPeriodRepository_FindByYearMonth(t *testing.T) {
	t.Run("finds period for calendar month", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		periodID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "payroll_periods" WHERE year = \$1 AND month = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(2026, 2, 1).
			WillReturnRows(periodRows(periodID, 2026, 2))

		period, err := repo.FindByYearMonth(context.Background(), 2026, 2)

		require.NoError(t, err)
		assert.Equal(t, periodID, period.ID)
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), period.EndDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing month to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "payroll_periods"`).
			WithArgs(2026, 7, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByYearMonth(context.Background(), 2026, 7)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPeriodRepository_FindAll(t *testing.T) {
	t.Run("returns paginated periods newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "payroll_periods"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

		mock.ExpectQuery(`SELECT \* FROM "payroll_periods" ORDER BY year DESC, month DESC LIMIT .* OFFSET .*`).
			WillReturnRows(periodRows(uuid.New(), 2026, 4))

		periods, total, err := repo.FindAll(context.Background(), 2, 2)

		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, periods, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock, mockDB := newMockPeriodRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "payroll_periods"`).
			WillReturnError(sql.ErrConnDone)

		_, _, err := repo.FindAll(context.Background(), 1, 10)

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
