package create_booking

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/slotgen"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	if req.ShopID == uuid.Nil {
		return fmt.Errorf("%w: shopId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
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

// validateOnGrid проверяет, что время начала - один из слотов рабочего дня без учета занятости
func validateOnGrid(hours domain.ShopHours, duration int, start types.TimeString) error {
	grid := slotgen.Generate(hours.Opening, hours.Closing, duration, nil)
	if !slotgen.Contains(grid, start) {
		return fmt.Errorf("%w: %s is not a %d-minute slot within %s-%s",
			ErrInvalidTimeSlot, start, duration, hours.Opening, hours.Closing)
	}
	return nil
}

// validateNotice проверяет, что до начала слота осталось не меньше minNoticeMinutes
func validateNotice(rules domain.BookingRules, date, now time.Time, start types.TimeString) error {
	if len(rules.FilterByNotice(date, now, []types.TimeString{start})) == 0 {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, rules.MinNoticeMinutes)
	}
	return nil
}
