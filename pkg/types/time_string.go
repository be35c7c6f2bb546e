package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

// TimeString время в формате "HH:MM" (без даты и секунд)
// Используется для времени начала/конца бронирований и рабочих часов локаций.
// Хранится в БД в колонке типа TIME.
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString создает TimeString из строки "HH:MM" с валидацией
// Значение нормализуется до двузначных часов и минут ("9:00" -> "09:00"),
// иначе лексикографическое сравнение в IsBefore/IsAfter дает неверный порядок
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time string format: %v", err)
	}
	return NewTimeString(parsed), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) TimeString {
	if minutes < 0 {
		minutes = 0
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Validate проверяет, что строка имеет канонический формат "HH:MM"
// time.Parse принимает однозначные часы ("9:00"), но такие значения
// ломают строковое сравнение, поэтому требуется ровно 5 символов
func (t TimeString) Validate() error {
	if len(t) != len(timeStringLayout) {
		return fmt.Errorf("invalid time string format: expected HH:MM, got %q", string(t))
	}
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут от полуночи
// Для некорректного значения возвращает ошибку
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на указанное количество минут
// Результат не переходит через полночь: максимум "23:59"
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total := current + minutes
	if total > 23*60+59 {
		total = 23*60 + 59
	}
	if total < 0 {
		total = 0
	}

	return NewTimeStringFromMinutes(total), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
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

// Scan реализует sql.Scanner для чтения из колонки TIME
// lib/pq возвращает TIME как строку "HH:MM:SS", иногда как time.Time
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types.TimeString: cannot scan %T", src)
	}
}

func (t *TimeString) scanString(s string) error {
	// Отбрасываем секунды, если они есть ("10:30:00" -> "10:30")
	if len(s) > 5 {
		s = s[:5]
	}
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return fmt.Errorf("types.TimeString: %v", err)
	}
	*t = ts
	return nil
}
