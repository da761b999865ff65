package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ShopBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings"
	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc BookingService, bookingID string, userID uuid.UUID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	bookingID, userID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		bookingID  string
		userID     uuid.UUID
		svcResp    *models.BookingResponse
		svcErr     error
		wantStatus int
	}{
		{
			name:       "ok",
			bookingID:  bookingID.String(),
			userID:     userID,
			svcResp:    &models.BookingResponse{ID: bookingID.String(), Status: "confirmed"},
			wantStatus: http.StatusOK,
		},
		{name: "bad id", bookingID: "15", userID: userID, wantStatus: http.StatusBadRequest},
		{name: "anonymous", bookingID: bookingID.String(), wantStatus: http.StatusUnauthorized},
		{name: "not found", bookingID: bookingID.String(), userID: userID, svcErr: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", bookingID: bookingID.String(), userID: userID, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", bookingID: bookingID.String(), userID: userID, svcErr: fmt.Errorf("%w: db", bookings.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.svcResp != nil || tt.svcErr != nil {
				svc.On("GetByID", mock.Anything, bookingID, userID).Return(tt.svcResp, tt.svcErr)
			}

			rec := serve(svc, tt.bookingID, tt.userID)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
