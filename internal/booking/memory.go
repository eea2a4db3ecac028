package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Booking
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*Booking),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	clone := *b
	r.items[b.ID] = &clone
	r.order = append(r.order, b.ID)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *MemoryRepository) ListByProperty(ctx context.Context, propertyID string) ([]*Booking, error) {
	return r.listWhere(func(b *Booking) bool { return b.PropertyID == propertyID }), nil
}

func (r *MemoryRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	return r.listWhere(func(b *Booking) bool { return b.CustomerID == customerID }), nil
}

func (r *MemoryRepository) listWhere(keep func(*Booking) bool) []*Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Booking
	for _, id := range r.order {
		if b := r.items[id]; b != nil && keep(b) {
			clone := *b
			result = append(result, &clone)
		}
	}
	return result
}

func (r *MemoryRepository) Update(ctx context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[b.ID]; !ok {
		return ErrNotFound
	}
	clone := *b
	r.items[b.ID] = &clone
	return nil
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

func (r *MemoryRepository) HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if b.PropertyID != propertyID || b.Status != StatusConfirmed {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		if b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if b.PropertyID == propertyID && b.ActiveAt(at) {
			return true, nil
		}
	}
	return false, nil
}
