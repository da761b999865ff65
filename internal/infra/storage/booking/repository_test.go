package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
	"github.com/m04kA/SMC-ShopBooking/pkg/txmanager"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func bookingRow(b *domain.Booking) *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns).AddRow(
		b.ID.String(),
		b.UserID.String(),
		b.ShopID.String(),
		b.ServiceID.String(),
		b.BookingDate,
		string(b.StartTime)+":00",
		string(b.EndTime)+":00",
		string(b.Status),
		nil,
		nil,
		nil,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func sampleBooking() *domain.Booking {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ShopID:      uuid.New(),
		ServiceID:   uuid.New(),
		BookingDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      domain.StatusConfirmed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	b := sampleBooking()
	b.ID = uuid.Nil
	b.Notes = ptr.Ptr("first visit")
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(sqlmock.AnyArg(), b.UserID, b.ShopID, b.ServiceID, "2025-03-10",
			types.TimeString("10:00"), types.TimeString("11:00"), domain.StatusConfirmed, "first visit").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), b)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Conflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_Create_SerializationFailureIsRetryable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.Create(context.Background(), sampleBooking())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestRepository_GetBusyStarts_SerializationFailureIsRetryable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time FROM bookings")).
		WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetBusyStarts(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	want := sampleBooking()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, customer_id, shop_id")).
		WithArgs(want.ID).
		WillReturnRows(bookingRow(want))

	got, err := repo.GetByID(context.Background(), want.ID)
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, types.TimeString("11:00"), got.EndTime)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Nil(t, got.Notes)
	assert.Nil(t, got.CancelledAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	b := sampleBooking()
	status := domain.StatusConfirmed

	mock.ExpectQuery(regexp.QuoteMeta("WHERE customer_id = $1 AND status = $2 ORDER BY booking_date DESC, start_time DESC")).
		WithArgs(b.UserID, status).
		WillReturnRows(bookingRow(b))

	got, err := repo.GetByUserID(context.Background(), b.UserID, &status)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByShopWithFilter(t *testing.T) {
	shopID := uuid.New()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	status := domain.StatusCompleted

	tests := []struct {
		name   string
		filter domain.ShopBookingsFilter
		query  string
	}{
		{
			name:   "single day excludes inactive",
			filter: domain.ShopBookingsFilter{ShopID: shopID, Date: &day},
			query:  "WHERE shop_id = $1 AND booking_date = $2 AND status NOT IN ($3,$4) ORDER BY start_time ASC",
		},
		{
			name:   "upcoming",
			filter: domain.ShopBookingsFilter{ShopID: shopID, FromDate: &day},
			query:  "WHERE shop_id = $1 AND booking_date >= $2 AND status NOT IN ($3,$4) ORDER BY booking_date ASC, start_time ASC",
		},
		{
			name:   "history with inactive",
			filter: domain.ShopBookingsFilter{ShopID: shopID, IncludeInactive: true},
			query:  "WHERE shop_id = $1 ORDER BY booking_date DESC, start_time DESC",
		},
		{
			name:   "explicit status",
			filter: domain.ShopBookingsFilter{ShopID: shopID, Date: &day, Status: &status},
			query:  "WHERE shop_id = $1 AND booking_date = $2 AND status = $3 ORDER BY start_time ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(tt.query)).WillReturnRows(sqlmock.NewRows(bookingColumns))

			got, err := repo.GetByShopWithFilter(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_GetBusyStarts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	shopID := uuid.New()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT start_time FROM bookings WHERE booking_date = $1 AND shop_id = $2 AND status = $3 ORDER BY start_time ASC")).
		WithArgs("2025-03-10", shopID, domain.StatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}).
			AddRow("10:00:00").
			AddRow(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))

	got, err := repo.GetBusyStarts(context.Background(), shopID, day)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "14:30"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetBusyStarts_LocksInTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_time ASC FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows([]string{"start_time"}))
	mock.ExpectCommit()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		// Репозиторий создан поверх db, но внутри транзакции должен брать executor из контекста
		_, err := repo.GetBusyStarts(ctx, uuid.New(), time.Now())
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, cancellation_reason = $2, cancelled_at = NOW(), updated_at = NOW() WHERE id = $3 AND status = $4")).
		WithArgs(domain.StatusCancelled, "Cancelled by customer", id, domain.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), id, domain.CancelReasonByCustomer)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Cancel_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(sqlmock.NewRows(bookingColumns))

	err := repo.Cancel(context.Background(), uuid.New(), "reason")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdateStatus_Conflict(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	b := sampleBooking()
	b.Status = domain.StatusCancelled

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(bookingRow(b))

	err := repo.UpdateStatus(context.Background(), b.ID, domain.StatusConfirmed, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
