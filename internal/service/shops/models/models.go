package models

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
)

// ShopHoursResponse действующие часы работы магазина
type ShopHoursResponse struct {
	ShopID      string `json:"shopId"`
	OpeningTime string `json:"openingTime"` // "09:00"
	ClosingTime string `json:"closingTime"`
	IsDefault   bool   `json:"isDefault"` // хотя бы одно значение взято из настроек по умолчанию
}

// FromDomainHours собирает ответ по магазину и подставленным часам
func FromDomainHours(shopID uuid.UUID, hours domain.ShopHours, isDefault bool) *ShopHoursResponse {
	return &ShopHoursResponse{
		ShopID:      shopID.String(),
		OpeningTime: hours.Opening.String(),
		ClosingTime: hours.Closing.String(),
		IsDefault:   isDefault,
	}
}
