package session

import (
	"sync"
	"time"
)

// Kind — какой ввод бот ждёт от пользователя следующим сообщением
type Kind int

const (
	None Kind = iota
	WaitingAccounts
	WaitingProductName
	WaitingProductPrice
	WaitingUserID
	WaitingAmount
	WaitingBroadcast
	WaitingAdminID
)

// Purpose уточняет, зачем запрошен ID пользователя
type Purpose int

const (
	PurposeNone Purpose = iota
	PurposeAddMoney
	PurposeBan
	PurposeUnban
)

type State struct {
	Kind          Kind
	Purpose       Purpose
	ProductID     int
	EditProductID int
	ProductName   string
	TargetUserID  int64
	touched       time.Time
}

// Store — состояния незавершённых диалогов по пользователям.
// Новая команда заменяет ожидающее состояние, просроченное — молча удаляется.
type Store struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[int64]State
}

func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, states: make(map[int64]State)}
}

func (s *Store) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.touched = time.Now()
	s.states[userID] = st
}

func (s *Store) Get(userID int64) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		return State{}, false
	}
	if s.ttl > 0 && time.Since(st.touched) > s.ttl {
		delete(s.states, userID)
		return State{}, false
	}
	return st, true
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// StartJanitor запускает фоновую очистку просроченных состояний
func (s *Store) StartJanitor(interval time.Duration) {
	go func() {
		for {
			time.Sleep(interval)
			s.sweep(time.Now())
		}
	}()
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl <= 0 {
		return
	}
	for id, st := range s.states {
		if now.Sub(st.touched) > s.ttl {
			delete(s.states, id)
		}
	}
}
