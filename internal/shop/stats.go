package shop

import (
	"strings"
	"time"
)

type Stats struct {
	TotalUsers    int
	NewUsersToday int
	TotalOrders   int
	Revenue       float64
}

// Statistics собирает сводку по пользователям, заказам и выручке
func (s *Service) Statistics() (Stats, error) {
	users, err := s.store.AllUsers()
	if err != nil {
		return Stats{}, err
	}
	today := time.Now().Format("2006-01-02")
	st := Stats{TotalUsers: len(users)}
	for _, u := range users {
		if strings.HasPrefix(u.CreatedAt, today) {
			st.NewUsersToday++
		}
		st.TotalOrders += len(u.Purchases)
		for _, p := range u.Purchases {
			st.Revenue += p.Price
		}
	}
	return st, nil
}
