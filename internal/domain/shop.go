package domain

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// ShopStatus статус модерации магазина
type ShopStatus string

const (
	ShopStatusPending  ShopStatus = "pending"
	ShopStatusApproved ShopStatus = "approved"
	ShopStatusRejected ShopStatus = "rejected"
	ShopStatusInactive ShopStatus = "inactive"
)

// Shop магазин из каталога
type Shop struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	CategoryID  *uuid.UUID
	Name        string
	Description *string
	Address     string
	Phone       *string
	Email       *string
	OpeningTime types.TimeString // пустая строка, если не задано
	ClosingTime types.TimeString
	Status      ShopStatus
}

// IsBookable returns true if customers can book at this shop
func (s *Shop) IsBookable() bool {
	return s.Status == ShopStatusApproved
}

// IsOwnedBy returns true if userID owns the shop
func (s *Shop) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

// Hours возвращает часы работы, подставляя значения по умолчанию для незаданных
func (s *Shop) Hours(defaults ShopHours) ShopHours {
	hours := defaults
	if s.OpeningTime.Validate() == nil {
		hours.Opening = s.OpeningTime
	}
	if s.ClosingTime.Validate() == nil {
		hours.Closing = s.ClosingTime
	}
	return hours
}

// Service услуга магазина
type Service struct {
	ID              uuid.UUID
	ShopID          uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// BelongsTo returns true if the service is offered by shopID
func (s *Service) BelongsTo(shopID uuid.UUID) bool {
	return s.ShopID == shopID
}

// ShopHours часы работы магазина
type ShopHours struct {
	Opening types.TimeString
	Closing types.TimeString
}
