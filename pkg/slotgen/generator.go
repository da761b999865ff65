// Package slotgen вычисляет свободные времена начала записи на услугу.
//
// Генерация идет по часам рабочего дня: внешний цикл по часам от часа открытия
// (включительно) до часа закрытия (не включительно), внутренний по минутам
// 0..59 с шагом длительности услуги. Минуты времени открытия и закрытия в
// границах цикла не участвуют. Слот принимается, если заканчивается не позже
// часа закрытия (окончание ровно в час закрытия допустимо), и отбрасывается,
// если его время начала совпадает с началом уже подтвержденной записи.
package slotgen

import (
	"github.com/m04kA/SMC-ShopBooking/pkg/types"
)

// Generate возвращает упорядоченный по возрастанию список свободных времен начала.
// Результат всегда не nil. При durationMinutes <= 0 или некорректных границах
// возвращается пустой список.
func Generate(
	openingTime types.TimeString,
	closingTime types.TimeString,
	durationMinutes int,
	busyStarts []types.TimeString,
) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if durationMinutes <= 0 {
		return slots
	}

	openHour, _, err := openingTime.Clock()
	if err != nil {
		return slots
	}
	closeHour, _, err := closingTime.Clock()
	if err != nil {
		return slots
	}

	busy := make(map[types.TimeString]struct{}, len(busyStarts))
	for _, start := range busyStarts {
		busy[start] = struct{}{}
	}

	for hour := openHour; hour < closeHour; hour++ {
		for minute := 0; minute < 60; minute += durationMinutes {
			endMinute := minute + durationMinutes
			endHour := hour + endMinute/60
			endMinute %= 60

			if endHour > closeHour || (endHour == closeHour && endMinute != 0) {
				continue
			}

			start := types.NewTimeStringFromClock(hour, minute)
			if _, taken := busy[start]; taken {
				continue
			}

			slots = append(slots, start)
		}
	}

	return slots
}

// Contains сообщает, есть ли start среди слотов
func Contains(slots []types.TimeString, start types.TimeString) bool {
	for _, slot := range slots {
		if slot == start {
			return true
		}
	}
	return false
}
