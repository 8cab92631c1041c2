package store

func (s *Store) loadProducts() ([]Product, error) {
	var products []Product
	if err := readJSON(s, productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) GetProduct(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products, err := s.loadProducts()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (s *Store) AllProducts() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadProducts()
}

// SaveProduct — upsert по ID. Нулевой ID означает новый продукт: ему назначается
// max(существующих)+1. При обновлении пустые name/description наследуются от старой
// записи, is_free всегда пересчитывается из цены.
func (s *Store) SaveProduct(p Product) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.loadProducts()
	if err != nil {
		return 0, err
	}

	if p.ID != 0 {
		for i := range products {
			if products[i].ID == p.ID {
				if p.Name == "" {
					p.Name = products[i].Name
				}
				if p.Description == "" {
					p.Description = products[i].Description
				}
				products[i] = normalizeProduct(p)
				if err := writeJSON(s, productsFile, products); err != nil {
					return 0, err
				}
				return p.ID, nil
			}
		}
	} else {
		maxID := 0
		for _, existing := range products {
			if existing.ID > maxID {
				maxID = existing.ID
			}
		}
		p.ID = maxID + 1
	}

	products = append(products, normalizeProduct(p))
	if err := writeJSON(s, productsFile, products); err != nil {
		return 0, err
	}
	return p.ID, nil
}

func normalizeProduct(p Product) Product {
	p.IsFree = p.Price <= 0
	if p.Description == "" {
		p.Description = "Sản phẩm: " + p.Name
	}
	return p
}

// DeleteProduct удаляет продукт и каскадно все его учётные записи на складе,
// чтобы не оставалось осиротевших строк с несуществующим product_id
func (s *Store) DeleteProduct(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.loadProducts()
	if err != nil {
		return err
	}
	idx := -1
	for i := range products {
		if products[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := writeJSON(s, productsFile, products); err != nil {
		return err
	}

	accounts, err := s.loadAccounts()
	if err != nil {
		return err
	}
	kept := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ProductID != id {
			kept = append(kept, a)
		}
	}
	return writeJSON(s, accountsFile, kept)
}
