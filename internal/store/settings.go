package store

func (s *Store) Settings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := defaultSettings()
	if err := readJSON(s, settingsFile, &st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

func (s *Store) SaveSettings(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s, settingsFile, st)
}

// ToggleShowPremium переключает показ платного каталога и возвращает новое состояние
func (s *Store) ToggleShowPremium() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := defaultSettings()
	if err := readJSON(s, settingsFile, &st); err != nil {
		return false, err
	}
	st.ShowPremium = !st.ShowPremium
	if err := writeJSON(s, settingsFile, st); err != nil {
		return false, err
	}
	return st.ShowPremium, nil
}
