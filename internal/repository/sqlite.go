package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ivanoskov/timework_bot/internal/model"
)

// SQLiteRepository хранит данные в локальном файле SQLite.
// Одно соединение на процесс: запись сериализуется на уровне пула.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{db: db}
	if err := r.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// migrate создаёт схему и добавляет недостающие колонки. Миграции только
// аддитивные: существующие строки получают нулевые значения новых полей.
func (r *SQLiteRepository) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY,
			currency TEXT,
			rate REAL,
			total_hours REAL NOT NULL DEFAULT 0,
			total_earned REAL NOT NULL DEFAULT 0,
			skips INTEGER NOT NULL DEFAULT 0,
			days_off INTEGER NOT NULL DEFAULT 0,
			start_time TEXT
		)`)
	if err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	// Колонка advance_total появилась позже первой версии схемы.
	hasAdvance, err := r.hasColumn(ctx, "users", "advance_total")
	if err != nil {
		return err
	}
	if !hasAdvance {
		if _, err := r.db.ExecContext(ctx,
			"ALTER TABLE users ADD COLUMN advance_total REAL NOT NULL DEFAULT 0"); err != nil {
			return fmt.Errorf("add advance_total column: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS shifts (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(user_id),
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			hours REAL NOT NULL,
			earned REAL NOT NULL,
			created_at TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create shifts table: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) hasColumn(ctx context.Context, table, column string) (bool, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			dfltValue  sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &primaryKey); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (r *SQLiteRepository) EnsureUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (user_id) VALUES (?)", userID)
	if err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var (
		user      model.User
		currency  sql.NullString
		rate      sql.NullFloat64
		startTime sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, currency, rate, total_hours, total_earned,
		       skips, days_off, advance_total, start_time
		FROM users WHERE user_id = ?`, userID).
		Scan(&user.UserID, &currency, &rate, &user.TotalHours, &user.TotalEarned,
			&user.Skips, &user.DaysOff, &user.AdvanceTotal, &startTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	user.Currency = currency.String
	if rate.Valid {
		v := rate.Float64
		user.Rate = &v
	}
	if startTime.Valid && startTime.String != "" {
		t, err := time.Parse(time.RFC3339, startTime.String)
		if err != nil {
			return nil, fmt.Errorf("parse start_time: %w", err)
		}
		user.ShiftStart = &t
	}
	return &user, nil
}

func (r *SQLiteRepository) UpdateUser(ctx context.Context, userID int64, upd UserUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Currency != nil {
		sets = append(sets, "currency = ?")
		args = append(args, *upd.Currency)
	}
	if upd.Rate != nil {
		sets = append(sets, "rate = ?")
		args = append(args, *upd.Rate)
	}
	if upd.ShiftStart != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, upd.ShiftStart.UTC().Format(time.RFC3339))
	} else if upd.ClearShiftStart {
		sets = append(sets, "start_time = NULL")
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, userID)
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) IncrementCounter(ctx context.Context, userID int64, counter Counter) error {
	var column string
	switch counter {
	case CounterSkips:
		column = "skips"
	case CounterDaysOff:
		column = "days_off"
	default:
		return ErrInvalidField
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s = %s + 1 WHERE user_id = ?", column, column), userID)
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) ApplyShift(ctx context.Context, userID int64, hours, earned float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET total_hours = total_hours + ?,
		    total_earned = total_earned + ?,
		    start_time = NULL
		WHERE user_id = ?`, hours, earned, userID)
	if err != nil {
		return fmt.Errorf("apply shift: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) AddAdvance(ctx context.Context, userID int64, amount float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET advance_total = advance_total + ? WHERE user_id = ?", amount, userID)
	if err != nil {
		return fmt.Errorf("add advance: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) ResetUser(ctx context.Context, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET total_hours = 0,
		    total_earned = 0,
		    skips = 0,
		    days_off = 0,
		    advance_total = 0,
		    start_time = NULL
		WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("reset user: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) CreateShift(ctx context.Context, shift *model.Shift) error {
	shift.GenerateID()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shifts (id, user_id, started_at, ended_at, hours, earned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		shift.ID, shift.UserID,
		shift.StartedAt.UTC().Format(time.RFC3339),
		shift.EndedAt.UTC().Format(time.RFC3339),
		shift.Hours, shift.Earned,
		shift.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListShifts(ctx context.Context, userID int64, since time.Time) ([]model.Shift, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, started_at, ended_at, hours, earned, created_at
		FROM shifts
		WHERE user_id = ? AND ended_at >= ?
		ORDER BY ended_at`,
		userID, since.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []model.Shift
	for rows.Next() {
		var (
			s                             model.Shift
			startedAt, endedAt, createdAt string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &startedAt, &endedAt, &s.Hours, &s.Earned, &createdAt); err != nil {
			return nil, err
		}
		if s.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if s.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
			return nil, fmt.Errorf("parse ended_at: %w", err)
		}
		if s.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
