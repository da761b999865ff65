package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrOutOfDay возвращается, когда результат арифметики выходит за пределы суток
	ErrOutOfDay = errors.New("time string out of day bounds")
)

const (
	layoutShort = "15:04"
	layoutLong  = "15:04:05"

	minutesPerDay = 24 * 60
)

// EndOfDay конец суток. Допустим только как граница (время закрытия, окончание записи).
const EndOfDay TimeString = "24:00"

// TimeString время суток в формате HH:MM (без даты и часового пояса)
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layoutShort))
}

// NewTimeStringFromClock создает TimeString из часов и минут
func NewTimeStringFromClock(hour, minute int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute))
}

// NewTimeStringFromString парсит строку вида "HH:MM" или "HH:MM:SS".
// Секунды отбрасываются. "24:00" и "24:00:00" дают EndOfDay.
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == string(EndOfDay) || s == string(EndOfDay)+":00" {
		return EndOfDay, nil
	}

	var (
		t   time.Time
		err error
	)

	switch len(s) {
	case len(layoutShort):
		t, err = time.Parse(layoutShort, s)
	case len(layoutLong):
		t, err = time.Parse(layoutLong, s)
	default:
		return "", ErrInvalidTimeString
	}
	if err != nil {
		return "", ErrInvalidTimeString
	}

	return NewTimeString(t), nil
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, _, err := t.Clock()
	return err
}

// Clock возвращает часы и минуты. Для EndOfDay это 24:00.
func (t TimeString) Clock() (hour, minute int, err error) {
	if t == EndOfDay {
		return 24, 0, nil
	}
	if len(t) != len(layoutShort) {
		return 0, 0, ErrInvalidTimeString
	}

	parsed, err := time.Parse(layoutShort, string(t))
	if err != nil {
		return 0, 0, ErrInvalidTimeString
	}

	return parsed.Hour(), parsed.Minute(), nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	hour, minute, err := t.Clock()
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}

// AddMinutes прибавляет минуты. Ровно полночь дает EndOfDay, переход через нее считается ошибкой.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s %+d min", ErrOutOfDay, t, minutes)
	}
	if total == minutesPerDay {
		return EndOfDay, nil
	}

	return NewTimeStringFromClock(total/60, total%60), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Value реализует driver.Valuer для записи в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения колонки TIME.
// lib/pq отдает TIME как time.Time (24:00:00 приходит как 0000-01-02 00:00), некоторые драйверы как строку.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		if v.Year() == 0 && v.YearDay() == 2 && v.Hour() == 0 && v.Minute() == 0 {
			*t = EndOfDay
			return nil
		}
		*t = NewTimeString(v)
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}
