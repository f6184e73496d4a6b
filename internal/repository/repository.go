package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ivanoskov/timework_bot/internal/model"
)

var (
	// ErrNotFound — запись пользователя отсутствует.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidField — попытка инкремента неизвестного счётчика.
	ErrInvalidField = errors.New("invalid counter field")
)

// Counter — закрытый набор инкрементируемых счётчиков.
type Counter string

const (
	CounterSkips   Counter = "skips"
	CounterDaysOff Counter = "days_off"
)

// UserUpdate — частичное обновление записи: пишутся только ненулевые поля.
// ClearShiftStart сбрасывает отметку начала смены (nil в ShiftStart значит
// «не трогать», поэтому очистка выражена отдельным флагом).
type UserUpdate struct {
	Currency        *string
	Rate            *float64
	ShiftStart      *time.Time
	ClearShiftStart bool
}

type Repository interface {
	// Пользователи
	EnsureUser(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	UpdateUser(ctx context.Context, userID int64, upd UserUpdate) error
	IncrementCounter(ctx context.Context, userID int64, counter Counter) error
	ApplyShift(ctx context.Context, userID int64, hours, earned float64) error
	AddAdvance(ctx context.Context, userID int64, amount float64) error
	ResetUser(ctx context.Context, userID int64) error

	// История смен
	CreateShift(ctx context.Context, shift *model.Shift) error
	ListShifts(ctx context.Context, userID int64, since time.Time) ([]model.Shift, error)

	Close() error
}
