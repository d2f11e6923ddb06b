package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// EndOfDay конец суток, допустим только как граница интервала
const EndOfDay TimeString = "24:00"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате "HH:MM" (локальное время бизнеса, без часового пояса)
type TimeString string

// NewTimeString создает TimeString из часов и минут time.Time
func NewTimeString(t time.Time) TimeString {
	return MinutesToTime(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// ParseMinutes разбирает "HH:MM" и возвращает количество минут с полуночи
func ParseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	// "24:00" допустимо только как конец рабочего окна
	if hours == 24 && minutes != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return hours*60 + minutes, nil
}

// TimeToMinutes переводит "HH:MM" в минуты с полуночи.
// Некорректная строка - нарушение контракта вызывающей стороны, поэтому panic.
func TimeToMinutes(s string) int {
	m, err := ParseMinutes(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MinutesToTime переводит минуты с полуночи в "HH:MM".
// Значения вне суток заворачиваются по модулю 24 часов.
func MinutesToTime(minutes int) TimeString {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() int {
	return TimeToMinutes(string(t))
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	_, err := ParseMinutes(string(t))
	return err
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Ошибка возвращается, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	start, err := ParseMinutes(string(t))
	if err != nil {
		return "", err
	}
	total := start + n
	if total < 0 || total > MinutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min is outside of the day", ErrInvalidTimeString, t, n)
	}
	if total == MinutesPerDay {
		return EndOfDay, nil
	}
	return MinutesToTime(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		// lib/pq отдает TIME '24:00:00' как полночь следующего дня после нулевой даты
		if v.Year() == 0 && v.Month() == time.January && v.Day() == 2 &&
			v.Hour() == 0 && v.Minute() == 0 {
			*t = EndOfDay
			return nil
		}
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// postgres отдает TIME как "HH:MM:SS"
func (t *TimeString) scanString(s string) error {
	if len(s) >= 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
