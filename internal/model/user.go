package model

import "time"

// User — накопленный результат пользователя. Одна запись на Telegram ID.
// Currency и Rate заполняются при регистрации и переживают сброс статистики.
type User struct {
	UserID       int64      `json:"user_id"`
	Currency     string     `json:"currency,omitempty"`
	Rate         *float64   `json:"rate,omitempty"`
	TotalHours   float64    `json:"total_hours"`
	TotalEarned  float64    `json:"total_earned"`
	Skips        int64      `json:"skips"`
	DaysOff      int64      `json:"days_off"`
	AdvanceTotal float64    `json:"advance_total"`
	ShiftStart   *time.Time `json:"start_time,omitempty"`
}

// ShiftOpen сообщает, запущена ли сейчас смена.
func (u *User) ShiftOpen() bool {
	return u.ShiftStart != nil
}

// RateValue возвращает ставку или 0, если она ещё не введена.
func (u *User) RateValue() float64 {
	if u.Rate == nil {
		return 0
	}
	return *u.Rate
}

// Валюты, доступные при регистрации.
var SupportedCurrencies = []string{"USD", "EUR", "KZT", "UAH", "CZK", "PLN"}

// IsSupportedCurrency проверяет код по закрытому списку валют.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
