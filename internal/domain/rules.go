package domain

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

var (
	// ErrDateInPast дата бронирования раньше сегодняшнего дня
	ErrDateInPast = errors.New("booking date is in the past")

	// ErrDateTooFar дата бронирования дальше горизонта записи
	ErrDateTooFar = errors.New("booking date is too far in the future")
)

// BookingRules правила записи, общие для всех магазинов
type BookingRules struct {
	AdvanceBookingDays int // 0 = без ограничения
	MinNoticeMinutes   int
	DefaultHours       ShopHours
	Location           *time.Location
}

func (r BookingRules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// DateOnly переводит дату в полночь часового пояса правил, сохраняя год, месяц и день
func (r BookingRules) DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.location())
}

// Today текущая дата в часовом поясе правил
func (r BookingRules) Today(now time.Time) time.Time {
	return r.DateOnly(now.In(r.location()))
}

// ValidateDate проверяет, что дата в окне [сегодня, сегодня + AdvanceBookingDays]
func (r BookingRules) ValidateDate(date, now time.Time) error {
	day := r.DateOnly(date)
	today := r.Today(now)

	if day.Before(today) {
		return ErrDateInPast
	}
	if r.AdvanceBookingDays > 0 && day.After(today.AddDate(0, 0, r.AdvanceBookingDays)) {
		return ErrDateTooFar
	}
	return nil
}

// FilterByNotice убирает слоты, начинающиеся раньше now + MinNoticeMinutes, если date - сегодня.
// Для других дат возвращает слоты без изменений.
func (r BookingRules) FilterByNotice(date, now time.Time, slots []types.TimeString) []types.TimeString {
	if !r.DateOnly(date).Equal(r.Today(now)) {
		return slots
	}

	local := now.In(r.location())
	earliest := local.Hour()*60 + local.Minute() + r.MinNoticeMinutes
	if local.Second() > 0 || local.Nanosecond() > 0 {
		// Слот в текущую минуту уже начался
		earliest++
	}

	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		minutes, err := slot.Minutes()
		if err != nil || minutes < earliest {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}
