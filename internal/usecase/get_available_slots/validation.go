package get_available_slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID == uuid.Nil {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateShopService проверяет, что магазин принимает записи, а услуга доступна в нём
func validateShopService(shop *domain.Shop, service *domain.Service) error {
	if !shop.IsBookable() {
		return fmt.Errorf("%w: status=%s", ErrShopNotBookable, shop.Status)
	}

	if !service.BelongsTo(shop.ID) {
		return ErrServiceNotFound
	}

	if !service.IsActive {
		return ErrServiceInactive
	}

	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: %d minutes", ErrInvalidDuration, service.DurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(rules domain.BookingRules, date, now time.Time) error {
	err := rules.ValidateDate(date, now)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDateInPast):
		return ErrInvalidDate
	case errors.Is(err, domain.ErrDateTooFar):
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, rules.AdvanceBookingDays)
	default:
		return err
	}
}
