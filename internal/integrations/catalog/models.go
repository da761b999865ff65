package catalog

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Shop строка таблицы shops каталога
type Shop struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Address     string     `json:"address"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	OpeningTime *string    `json:"opening_time"` // HH:MM:SS
	ClosingTime *string    `json:"closing_time"`
	Status      string     `json:"status"`
}

// Service строка таблицы services каталога
type Service struct {
	ID              uuid.UUID `json:"id"`
	ShopID          uuid.UUID `json:"shop_id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"is_active"`
}

// ErrorResponse модель ошибки PostgREST
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// ToDomain конвертирует магазин каталога в доменную модель.
// Некорректное время работы не считается ошибкой: магазин работает по часам по умолчанию.
func (s *Shop) ToDomain() *domain.Shop {
	return &domain.Shop{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		OpeningTime: parseClock(s.OpeningTime),
		ClosingTime: parseClock(s.ClosingTime),
		Status:      domain.ShopStatus(s.Status),
	}
}

// ToDomain конвертирует услугу каталога в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		ShopID:          s.ShopID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
	}
}

func parseClock(value *string) types.TimeString {
	if value == nil {
		return ""
	}
	ts, err := types.NewTimeStringFromString(*value)
	if err != nil {
		return ""
	}
	return ts
}
