package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Booking represents a customer's booking of a shop service
type Booking struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ShopID      uuid.UUID
	ServiceID   uuid.UUID
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its start time
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// CanTransitionTo returns true if the owner may move the booking to status
func (b *Booking) CanTransitionTo(status BookingStatus) bool {
	if !b.IsActive() {
		return false
	}
	return status == StatusCompleted || status == StatusNoShow
}

// ShopBookingsFilter фильтр для получения бронирований магазина
type ShopBookingsFilter struct {
	ShopID          uuid.UUID      // Обязательный параметр
	Date            *time.Time     // Конкретный день (опционально)
	FromDate        *time.Time     // Начало периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show
}
