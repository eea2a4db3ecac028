package customer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Customer
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*Customer),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Email == c.Email || existing.CPF == c.CPF {
			return ErrAlreadyExists
		}
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryRepository) GetByLogin(ctx context.Context, login string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Email == login || c.CPF == login {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Email == email || c.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Update(ctx context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; !ok {
		return ErrNotFound
	}
	clone := *c
	r.items[c.ID] = &clone
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}
