package store

func (s *Store) loadUsers() ([]User, error) {
	var users []User
	if err := readJSON(s, usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) GetUser(id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users, err := s.loadUsers()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) AllUsers() ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadUsers()
}

// AddUser вставляет пользователя или целиком заменяет существующего с тем же ID
func (s *Store) AddUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return writeJSON(s, usersFile, users)
		}
	}
	users = append(users, u)
	return writeJSON(s, usersFile, users)
}

// UpdateUser применяет mutate к записи под блокировкой записи:
// чтение-изменение-запись не может потерять параллельное обновление
func (s *Store) UpdateUser(id int64, mutate func(*User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			mutate(&users[i])
			return writeJSON(s, usersFile, users)
		}
	}
	return ErrNotFound
}

func (s *Store) BanUser(id int64) error {
	return s.UpdateUser(id, func(u *User) { u.Banned = true })
}

func (s *Store) UnbanUser(id int64) error {
	return s.UpdateUser(id, func(u *User) { u.Banned = false })
}

// AddMoney атомарно пополняет баланс и возвращает новое значение
func (s *Store) AddMoney(id int64, amount float64) (float64, error) {
	var balance float64
	err := s.UpdateUser(id, func(u *User) {
		u.Balance += amount
		balance = u.Balance
	})
	return balance, err
}
