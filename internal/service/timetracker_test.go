package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/timework_bot/internal/repository"
	"github.com/ivanoskov/timework_bot/internal/service"
)

func newTracker(t *testing.T) *service.TimeTracker {
	t.Helper()

	repo, err := repository.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return service.NewTimeTracker(repo)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "10.5", want: 10.5},
		{input: "10,5", want: 10.5},
		{input: "1500", want: 1500},
		{input: "-200", want: -200},
		{input: " 7 ", want: 7},
		{input: "0", want: 0},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "10..5", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := service.ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistrationFlow(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 42))
	require.NoError(t, tracker.SetCurrency(ctx, 42, "EUR"))
	require.NoError(t, tracker.SetRate(ctx, 42, 12.5))

	user, err := tracker.Profile(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "EUR", user.Currency)
	require.NotNil(t, user.Rate)
	assert.Equal(t, 12.5, *user.Rate)
	assert.Equal(t, 0.0, user.TotalHours)
	assert.False(t, user.ShiftOpen())
}

func TestSetCurrencyUnknown(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.Register(ctx, 42))
	err := tracker.SetCurrency(ctx, 42, "XXX")
	assert.ErrorIs(t, err, service.ErrUnknownCurrency)

	user, err := tracker.Profile(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, user.Currency)
}

func TestStartEndShift(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.SetCurrency(ctx, 1, "USD"))
	require.NoError(t, tracker.SetRate(ctx, 1, 10))

	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	user, err := tracker.StartShift(ctx, 1, t0)
	require.NoError(t, err)
	require.NotNil(t, user.ShiftStart)
	assert.True(t, t0.Equal(*user.ShiftStart))

	// Повторный старт при открытой смене отклоняется без изменений.
	_, err = tracker.StartShift(ctx, 1, t0.Add(time.Minute))
	assert.ErrorIs(t, err, service.ErrShiftAlreadyOpen)

	hours, earned, user, err := tracker.EndShift(ctx, 1, t0.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1.5, hours)
	assert.Equal(t, 15.0, earned)
	assert.Equal(t, 1.5, user.TotalHours)
	assert.Equal(t, 15.0, user.TotalEarned)
	assert.False(t, user.ShiftOpen())

	_, _, _, err = tracker.EndShift(ctx, 1, t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, service.ErrNoOpenShift)
}

func TestEndShiftWithoutRate(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := tracker.StartShift(ctx, 7, t0)
	require.NoError(t, err)

	hours, earned, _, err := tracker.EndShift(ctx, 7, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1.0, hours)
	assert.Equal(t, 0.0, earned)
}

func TestAdvanceSignUnrestricted(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	_, err := tracker.AddAdvance(ctx, 5, 1500)
	require.NoError(t, err)

	// Отрицательная запись — возврат аванса.
	user, err := tracker.AddAdvance(ctx, 5, -200)
	require.NoError(t, err)
	assert.Equal(t, 1300.0, user.AdvanceTotal)
}

func TestResetPreservesRegistration(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.SetCurrency(ctx, 9, "PLN"))
	require.NoError(t, tracker.SetRate(ctx, 9, 20))

	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err := tracker.StartShift(ctx, 9, t0)
	require.NoError(t, err)
	_, _, _, err = tracker.EndShift(ctx, 9, t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = tracker.AddSkip(ctx, 9)
	require.NoError(t, err)
	_, err = tracker.AddDayOff(ctx, 9)
	require.NoError(t, err)
	_, err = tracker.AddAdvance(ctx, 9, 100)
	require.NoError(t, err)

	user, err := tracker.Reset(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "PLN", user.Currency)
	require.NotNil(t, user.Rate)
	assert.Equal(t, 20.0, *user.Rate)
	assert.Equal(t, 0.0, user.TotalHours)
	assert.Equal(t, 0.0, user.TotalEarned)
	assert.Equal(t, int64(0), user.Skips)
	assert.Equal(t, int64(0), user.DaysOff)
	assert.Equal(t, 0.0, user.AdvanceTotal)
	assert.False(t, user.ShiftOpen())
}

func TestCounters(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := tracker.AddSkip(ctx, 11)
		require.NoError(t, err)
	}
	user, err := tracker.AddDayOff(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.Skips)
	assert.Equal(t, int64(1), user.DaysOff)
}

func TestWeeklyReport(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.SetCurrency(ctx, 3, "CZK"))
	require.NoError(t, tracker.SetRate(ctx, 3, 100))

	now := time.Date(2025, 3, 16, 20, 0, 0, 0, time.UTC)

	// Смена позавчера на час, смена сегодня на два часа.
	dayBefore := now.AddDate(0, 0, -2).Add(-10 * time.Hour)
	_, err := tracker.StartShift(ctx, 3, dayBefore)
	require.NoError(t, err)
	_, _, _, err = tracker.EndShift(ctx, 3, dayBefore.Add(time.Hour))
	require.NoError(t, err)

	today := now.Add(-5 * time.Hour)
	_, err = tracker.StartShift(ctx, 3, today)
	require.NoError(t, err)
	_, _, _, err = tracker.EndShift(ctx, 3, today.Add(2*time.Hour))
	require.NoError(t, err)

	report, err := tracker.GetWeeklyReport(ctx, 3, now)
	require.NoError(t, err)
	require.Len(t, report.Days, 7)

	assert.Equal(t, 2, report.Shifts)
	assert.Equal(t, 3.0, report.TotalHours)
	assert.Equal(t, 300.0, report.TotalEarned)
	assert.Equal(t, 1.0, report.Days[4].Hours)
	assert.Equal(t, 2.0, report.Days[6].Hours)
	assert.Equal(t, 0.0, report.Days[0].Hours)
}
