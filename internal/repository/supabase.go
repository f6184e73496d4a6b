package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/timework_bot/internal/model"
)

// SupabaseRepository хранит данные в Supabase (PostgREST).
//
// PostgREST не умеет атомарный инкремент без хранимой процедуры, поэтому
// накопительные операции здесь read-modify-write. Это безопасно: бот
// обрабатывает события одного пользователя строго последовательно.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseRepository{
		client: client,
	}, nil
}

func (r *SupabaseRepository) EnsureUser(ctx context.Context, userID int64) error {
	_, err := r.GetUser(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	row := map[string]any{"user_id": userID}
	if _, _, err := r.client.From("users").Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	data, _, err := r.client.From("users").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (r *SupabaseRepository) UpdateUser(ctx context.Context, userID int64, upd UserUpdate) error {
	fields := make(map[string]any)
	if upd.Currency != nil {
		fields["currency"] = *upd.Currency
	}
	if upd.Rate != nil {
		fields["rate"] = *upd.Rate
	}
	if upd.ShiftStart != nil {
		fields["start_time"] = upd.ShiftStart.UTC().Format(time.RFC3339)
	} else if upd.ClearShiftStart {
		fields["start_time"] = nil
	}
	if len(fields) == 0 {
		return nil
	}

	return r.updateFields(ctx, userID, fields)
}

func (r *SupabaseRepository) IncrementCounter(ctx context.Context, userID int64, counter Counter) error {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	switch counter {
	case CounterSkips:
		return r.updateFields(ctx, userID, map[string]any{"skips": user.Skips + 1})
	case CounterDaysOff:
		return r.updateFields(ctx, userID, map[string]any{"days_off": user.DaysOff + 1})
	default:
		return ErrInvalidField
	}
}

func (r *SupabaseRepository) ApplyShift(ctx context.Context, userID int64, hours, earned float64) error {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	return r.updateFields(ctx, userID, map[string]any{
		"total_hours":  user.TotalHours + hours,
		"total_earned": user.TotalEarned + earned,
		"start_time":   nil,
	})
}

func (r *SupabaseRepository) AddAdvance(ctx context.Context, userID int64, amount float64) error {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	return r.updateFields(ctx, userID, map[string]any{
		"advance_total": user.AdvanceTotal + amount,
	})
}

func (r *SupabaseRepository) ResetUser(ctx context.Context, userID int64) error {
	return r.updateFields(ctx, userID, map[string]any{
		"total_hours":   0,
		"total_earned":  0,
		"skips":         0,
		"days_off":      0,
		"advance_total": 0,
		"start_time":    nil,
	})
}

func (r *SupabaseRepository) CreateShift(ctx context.Context, shift *model.Shift) error {
	shift.GenerateID()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now().UTC()
	}

	data, _, err := r.client.From("shifts").Insert(shift, false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}

	if len(data) > 0 {
		var created []model.Shift
		if err := json.Unmarshal(data, &created); err != nil {
			return fmt.Errorf("failed to parse created shift: %w", err)
		}
		if len(created) > 0 {
			shift.CreatedAt = created[0].CreatedAt
		}
	}
	return nil
}

func (r *SupabaseRepository) ListShifts(ctx context.Context, userID int64, since time.Time) ([]model.Shift, error) {
	data, _, err := r.client.From("shifts").
		Select("*", "", false).
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Gte("ended_at", since.UTC().Format(time.RFC3339)).
		Order("ended_at.asc", nil).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get shifts: %w", err)
	}

	var shifts []model.Shift
	if err := json.Unmarshal(data, &shifts); err != nil {
		return nil, fmt.Errorf("failed to parse shifts: %w", err)
	}
	return shifts, nil
}

func (r *SupabaseRepository) Close() error {
	return nil
}

func (r *SupabaseRepository) updateFields(ctx context.Context, userID int64, fields map[string]any) error {
	_, _, err := r.client.From("users").
		Update(fields, "", "").
		Eq("user_id", strconv.FormatInt(userID, 10)).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
