package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ivanoskov/timework_bot/internal/model"
	"github.com/ivanoskov/timework_bot/internal/repository"
)

var (
	// ErrShiftAlreadyOpen — попытка начать смену при уже запущенной.
	ErrShiftAlreadyOpen = errors.New("shift already open")
	// ErrNoOpenShift — попытка завершить смену, которая не начата.
	ErrNoOpenShift = errors.New("no open shift")
	// ErrUnknownCurrency — код валюты вне поддерживаемого списка.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Repository определяет интерфейс для работы с хранилищем данных
type Repository interface {
	EnsureUser(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	UpdateUser(ctx context.Context, userID int64, upd repository.UserUpdate) error
	IncrementCounter(ctx context.Context, userID int64, counter repository.Counter) error
	ApplyShift(ctx context.Context, userID int64, hours, earned float64) error
	AddAdvance(ctx context.Context, userID int64, amount float64) error
	ResetUser(ctx context.Context, userID int64) error
	CreateShift(ctx context.Context, shift *model.Shift) error
	ListShifts(ctx context.Context, userID int64, since time.Time) ([]model.Shift, error)
}

// TimeTracker реализует учёт рабочего времени поверх хранилища:
// регистрация, смены, пропуски, выходные, авансы и сброс.
type TimeTracker struct {
	repo Repository
}

func NewTimeTracker(repo Repository) *TimeTracker {
	return &TimeTracker{
		repo: repo,
	}
}

// Register создаёт пустую запись пользователя, если её ещё нет.
func (s *TimeTracker) Register(ctx context.Context, userID int64) error {
	return s.repo.EnsureUser(ctx, userID)
}

// Profile возвращает запись пользователя, создавая её при необходимости.
func (s *TimeTracker) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}

func (s *TimeTracker) SetCurrency(ctx context.Context, userID int64, code string) error {
	if !model.IsSupportedCurrency(code) {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, userID, repository.UserUpdate{Currency: &code})
}

func (s *TimeTracker) SetRate(ctx context.Context, userID int64, rate float64) error {
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.UpdateUser(ctx, userID, repository.UserUpdate{Rate: &rate})
}

// StartShift открывает смену. Отметка времени — UTC с точностью до секунды.
func (s *TimeTracker) StartShift(ctx context.Context, userID int64, now time.Time) (*model.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ShiftOpen() {
		return nil, ErrShiftAlreadyOpen
	}

	start := now.UTC().Truncate(time.Second)
	if err := s.repo.UpdateUser(ctx, userID, repository.UserUpdate{ShiftStart: &start}); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}

// EndShift закрывает смену: считает часы и заработок, накапливает итоги
// и пишет смену в историю. Округление до 2 знаков происходит здесь,
// повторный показ сохранённого значения его не меняет.
func (s *TimeTracker) EndShift(ctx context.Context, userID int64, now time.Time) (hours, earned float64, user *model.User, err error) {
	user, err = s.Profile(ctx, userID)
	if err != nil {
		return 0, 0, nil, err
	}
	if !user.ShiftOpen() {
		return 0, 0, nil, ErrNoOpenShift
	}

	start := *user.ShiftStart
	end := now.UTC()
	hours = round2(end.Sub(start).Hours())
	earned = round2(hours * user.RateValue())

	if err = s.repo.ApplyShift(ctx, userID, hours, earned); err != nil {
		return 0, 0, nil, err
	}

	shift := &model.Shift{
		UserID:    userID,
		StartedAt: start,
		EndedAt:   end.Truncate(time.Second),
		Hours:     hours,
		Earned:    earned,
	}
	if err = s.repo.CreateShift(ctx, shift); err != nil {
		return 0, 0, nil, err
	}

	user, err = s.repo.GetUser(ctx, userID)
	if err != nil {
		return 0, 0, nil, err
	}
	return hours, earned, user, nil
}

func (s *TimeTracker) AddSkip(ctx context.Context, userID int64) (*model.User, error) {
	return s.increment(ctx, userID, repository.CounterSkips)
}

func (s *TimeTracker) AddDayOff(ctx context.Context, userID int64) (*model.User, error) {
	return s.increment(ctx, userID, repository.CounterDaysOff)
}

func (s *TimeTracker) increment(ctx context.Context, userID int64, counter repository.Counter) (*model.User, error) {
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.IncrementCounter(ctx, userID, counter); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}

// AddAdvance накапливает аванс. Знак суммы не ограничен: отрицательная
// запись работает как возврат аванса.
func (s *TimeTracker) AddAdvance(ctx context.Context, userID int64, amount float64) (*model.User, error) {
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.AddAdvance(ctx, userID, amount); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}

// Reset обнуляет накопленные итоги, валюта и ставка сохраняются.
func (s *TimeTracker) Reset(ctx context.Context, userID int64) (*model.User, error) {
	if err := s.repo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.ResetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, userID)
}

// DayTotal — часы и заработок за один календарный день (UTC).
type DayTotal struct {
	Date   time.Time
	Hours  float64
	Earned float64
}

// WeeklyReport — итоги завершённых смен за последние 7 дней.
type WeeklyReport struct {
	Days        []DayTotal
	TotalHours  float64
	TotalEarned float64
	Shifts      int
}

// GetWeeklyReport собирает историю смен за 7 дней в дневные корзины.
// Смена попадает в день своего завершения.
func (s *TimeTracker) GetWeeklyReport(ctx context.Context, userID int64, now time.Time) (*WeeklyReport, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	since := today.AddDate(0, 0, -6)

	shifts, err := s.repo.ListShifts(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}

	report := &WeeklyReport{
		Days: make([]DayTotal, 7),
	}
	for i := range report.Days {
		report.Days[i].Date = since.AddDate(0, 0, i)
	}

	for _, shift := range shifts {
		day := int(shift.EndedAt.UTC().Truncate(24 * time.Hour).Sub(since).Hours() / 24)
		if day < 0 || day > 6 {
			continue
		}
		report.Days[day].Hours += shift.Hours
		report.Days[day].Earned += shift.Earned
		report.TotalHours += shift.Hours
		report.TotalEarned += shift.Earned
		report.Shifts++
	}
	return report, nil
}

// ParseAmount разбирает число из пользовательского ввода. Запятая
// принимается как десятичный разделитель наравне с точкой.
func ParseAmount(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", text, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid number %q", text)
	}
	return value, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
