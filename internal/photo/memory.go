package photo

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Photo
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*Photo),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, p *Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	clone := *p
	r.items[p.ID] = &clone
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemoryRepository) ListByProperty(ctx context.Context, propertyID string) ([]*Photo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Photo
	for _, id := range r.order {
		if p := r.items[id]; p != nil && p.PropertyID == propertyID {
			clone := *p
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
