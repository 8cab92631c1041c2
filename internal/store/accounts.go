package store

func (s *Store) loadAccounts() ([]Account, error) {
	var accounts []Account
	if err := readJSON(s, accountsFile, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AddAccounts добавляет по одной строке склада на каждую учётную запись.
// Дубликаты не отсеиваются: одинаковая строка, загруженная дважды, продаётся дважды.
func (s *Store) AddAccounts(productID int, lines []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.loadAccounts()
	if err != nil {
		return 0, err
	}
	added := 0
	for _, line := range lines {
		if line == "" {
			continue
		}
		accounts = append(accounts, Account{ProductID: productID, Data: line})
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := writeJSON(s, accountsFile, accounts); err != nil {
		return 0, err
	}
	return added, nil
}

func (s *Store) CountAvailable(productID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts, err := s.loadAccounts()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, a := range accounts {
		if a.ProductID == productID && !a.Sold {
			count++
		}
	}
	return count, nil
}

// DrawAccount помечает первую непроданную запись продукта как проданную и возвращает её.
// Под блокировкой записи: две параллельные выдачи не могут вернуть одну и ту же строку.
func (s *Store) DrawAccount(productID int) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.loadAccounts()
	if err != nil {
		return Account{}, err
	}
	for i := range accounts {
		if accounts[i].ProductID == productID && !accounts[i].Sold {
			accounts[i].Sold = true
			if err := writeJSON(s, accountsFile, accounts); err != nil {
				return Account{}, err
			}
			return accounts[i], nil
		}
	}
	return Account{}, ErrNotFound
}

// ReleaseAccount возвращает выданную запись обратно на склад.
// Компенсация для случая, когда покупка сорвалась после выдачи.
func (s *Store) ReleaseAccount(productID int, data string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.loadAccounts()
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ProductID == productID && accounts[i].Data == data && accounts[i].Sold {
			accounts[i].Sold = false
			return writeJSON(s, accountsFile, accounts)
		}
	}
	return ErrNotFound
}
