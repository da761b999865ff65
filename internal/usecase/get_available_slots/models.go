package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time // Дата для получения слотов (время игнорируется)
}

// Response модель ответа со списком свободных времен начала
type Response struct {
	Date            time.Time
	ShopID          uuid.UUID
	ServiceID       uuid.UUID
	DurationMinutes int
	Hours           domain.ShopHours
	Slots           []types.TimeString // по возрастанию, без повторов
}
