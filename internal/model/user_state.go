package model

// State — текущее состояние диалога: какой ввод бот ждёт от пользователя.
type State string

const (
	StateIdle             State = "idle"
	StateAwaitingCurrency State = "awaiting_currency"
	StateAwaitingRate     State = "awaiting_rate"
	StateAwaitingAdvance  State = "awaiting_advance"
)
