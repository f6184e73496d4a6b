package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivanoskov/timework_bot/internal/model"
	"github.com/ivanoskov/timework_bot/internal/session"
)

func TestDefaultStateIsIdle(t *testing.T) {
	store := session.NewStore()
	assert.Equal(t, model.StateIdle, store.Get(1))
}

func TestSetAndClear(t *testing.T) {
	store := session.NewStore()

	store.Set(1, model.StateAwaitingCurrency)
	assert.Equal(t, model.StateAwaitingCurrency, store.Get(1))

	// Состояния пользователей независимы.
	assert.Equal(t, model.StateIdle, store.Get(2))

	store.Set(1, model.StateAwaitingRate)
	assert.Equal(t, model.StateAwaitingRate, store.Get(1))

	store.Clear(1)
	assert.Equal(t, model.StateIdle, store.Get(1))
}

func TestConcurrentAccess(t *testing.T) {
	store := session.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Set(id, model.StateAwaitingAdvance)
			_ = store.Get(id)
			store.Clear(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 100; i++ {
		assert.Equal(t, model.StateIdle, store.Get(i))
	}
}
