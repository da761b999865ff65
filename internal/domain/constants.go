package domain

import "github.com/m04kA/SMC-ShopBooking/pkg/types"

// Default configuration values
const (
	DefaultOpeningTime types.TimeString = "09:00"
	DefaultClosingTime types.TimeString = "18:00"
)

const (
	DefaultAdvanceBookingDays = 30
	DefaultMinNoticeMinutes   = 0
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Причины отмены по умолчанию
const (
	CancelReasonByCustomer = "Cancelled by customer"
	CancelReasonByShop     = "Cancelled by shop"
)

// DateFormat формат даты в API и запросах к БД
const DateFormat = "2006-01-02" // YYYY-MM-DD

// InactiveStatuses статусы, не занимающие время в расписании
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// DefaultShopHours часы работы для магазинов без заданного расписания
func DefaultShopHours() ShopHours {
	return ShopHours{Opening: DefaultOpeningTime, Closing: DefaultClosingTime}
}
