package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ShopBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

func doRequest(h *Handler, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	userID, shopID, serviceID := uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.UserID == userID &&
			req.ShopID == shopID &&
			req.ServiceID == serviceID &&
			req.Date.Equal(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)) &&
			req.StartTime == "10:00" &&
			req.Notes == nil
	})).Return(&createBooking.Response{
		ID:              uuid.New(),
		UserID:          userID,
		ShopID:          shopID,
		ServiceID:       serviceID,
		BookingDate:     time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("10:45"),
		DurationMinutes: 45,
		Status:          "confirmed",
		ServiceName:     "Haircut",
		ServicePrice:    30,
		CreatedAt:       created,
		UpdatedAt:       created,
	}, nil)

	body := fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00"}`, shopID, serviceID)
	rec := doRequest(NewHandler(uc, logger.NewNop()), userID, body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, "2025-03-12", resp.BookingDate)
	assert.Equal(t, "10:45", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.CreatedAt)
}

func TestHandler_Unauthenticated(t *testing.T) {
	uc := new(mockUseCase)

	rec := doRequest(NewHandler(uc, logger.NewNop()), uuid.Nil, `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandler_InvalidBody(t *testing.T) {
	shopID, serviceID := uuid.New(), uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ``},
		{name: "not json", body: `booking`},
		{name: "missing shop", body: fmt.Sprintf(`{"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00"}`, serviceID)},
		{name: "shop not uuid", body: fmt.Sprintf(`{"shopId":"7","serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00"}`, serviceID)},
		{name: "date format", body: fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"12.03.2025","startTime":"10:00"}`, shopID, serviceID)},
		{name: "time format", body: fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10h"}`, shopID, serviceID)},
		{name: "time with seconds", body: fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00:45"}`, shopID, serviceID)},
		{name: "time without leading zero", body: fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"9:00"}`, shopID, serviceID)},
		{name: "legacy user id field", body: fmt.Sprintf(`{"userId":1,"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00"}`, shopID, serviceID)},
		{name: "notes too long", body: fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00","notes":%q}`, shopID, serviceID, strings.Repeat("x", 501))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)

			rec := doRequest(NewHandler(uc, logger.NewNop()), uuid.New(), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrShopNotFound, http.StatusNotFound},
		{createBooking.ErrServiceNotFound, http.StatusNotFound},
		{createBooking.ErrShopNotBookable, http.StatusBadRequest},
		{createBooking.ErrServiceInactive, http.StatusBadRequest},
		{createBooking.ErrInvalidDuration, http.StatusBadRequest},
		{createBooking.ErrInvalidDate, http.StatusBadRequest},
		{createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{fmt.Errorf("%w: shop id is required", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError},
	}

	body := fmt.Sprintf(`{"shopId":%q,"serviceId":%q,"bookingDate":"2025-03-12","startTime":"10:00"}`, uuid.New(), uuid.New())

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := doRequest(NewHandler(uc, logger.NewNop()), uuid.New(), body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
