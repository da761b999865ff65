package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    uuid.UUID        // ID покупателя
	ShopID    uuid.UUID        // ID магазина
	ServiceID uuid.UUID        // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ShopID          uuid.UUID
	ServiceID       uuid.UUID
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string

	// Данные услуги на момент записи
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
