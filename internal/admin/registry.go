package admin

import "sync"

// Registry — список администраторов: стартовый allow-list из конфигурации
// плюс добавленные на лету через панель
type Registry struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func NewRegistry(ids []int64) *Registry {
	r := &Registry{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		r.ids[id] = struct{}{}
	}
	return r
}

func (r *Registry) IsAdmin(id int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ids[id]
	return ok
}

// Add возвращает false, если пользователь уже админ
func (r *Registry) Add(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[id]; ok {
		return false
	}
	r.ids[id] = struct{}{}
	return true
}

func (r *Registry) IDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	return out
}
