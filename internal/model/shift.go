package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift — завершённая смена. Пишется один раз при закрытии смены,
// агрегаты в User остаются первичным источником итогов.
type Shift struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Hours     float64   `json:"hours"`
	Earned    float64   `json:"earned"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerateID генерирует новый UUID для смены, если он еще не установлен
func (s *Shift) GenerateID() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
}
