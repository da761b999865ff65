package get_available_slots

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrShopNotBookable возвращается, когда магазин не одобрен для записи
	ErrShopNotBookable = errors.New("shop is not accepting bookings")

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другому магазину
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("service is not active")

	// ErrInvalidDuration возвращается, когда у услуги неположительная длительность
	ErrInvalidDuration = errors.New("service has invalid duration")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
