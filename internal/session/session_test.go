package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGetClear(t *testing.T) {
	s := NewStore(time.Minute)

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Set(1, State{Kind: WaitingProductName, ProductName: "Netflix"})
	st, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, WaitingProductName, st.Kind)
	assert.Equal(t, "Netflix", st.ProductName)

	s.Clear(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestSetReplacesState(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set(1, State{Kind: WaitingUserID, Purpose: PurposeBan})
	s.Set(1, State{Kind: WaitingBroadcast})

	st, ok := s.Get(1)
	assert.True(t, ok)
	assert.Equal(t, WaitingBroadcast, st.Kind)
	assert.Equal(t, PurposeNone, st.Purpose)
}

func TestGetExpiresStaleState(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	s.Set(1, State{Kind: WaitingAccounts})

	time.Sleep(20 * time.Millisecond)
	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestSweepRemovesExpiredOnly(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set(1, State{Kind: WaitingAccounts})
	s.Set(2, State{Kind: WaitingBroadcast})

	// состояние пользователя 1 устарело на два TTL
	s.mu.Lock()
	st := s.states[1]
	st.touched = time.Now().Add(-2 * time.Minute)
	s.states[1] = st
	s.mu.Unlock()

	s.sweep(time.Now())

	_, ok := s.Get(1)
	assert.False(t, ok)
	_, ok = s.Get(2)
	assert.True(t, ok)
}
