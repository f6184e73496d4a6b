package session

import (
	"sync"

	"github.com/ivanoskov/timework_bot/internal/model"
)

// Store хранит состояния диалогов в памяти процесса. Состояния не
// переживают рестарт: после перезапуска все пользователи в StateIdle,
// незавершённый ввод просто забывается.
type Store struct {
	mu     sync.RWMutex
	states map[int64]model.State
}

func NewStore() *Store {
	return &Store{
		states: make(map[int64]model.State),
	}
}

// Get возвращает состояние пользователя; по умолчанию StateIdle.
func (s *Store) Get(userID int64) model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[userID]
	if !ok {
		return model.StateIdle
	}
	return state
}

func (s *Store) Set(userID int64, state model.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

// Clear возвращает пользователя в StateIdle.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
