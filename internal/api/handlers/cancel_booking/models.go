package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

// CancelBookingRequest HTTP request model. Тело необязательно.
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID uuid.UUID) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: ptr.Value(r.CancellationReason),
	}
}
