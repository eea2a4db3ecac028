package property

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository used by tests.
// It preserves insertion order for unsorted results.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Property
	order []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*Property),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, p *Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	clone := *p
	r.items[p.ID] = &clone
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *MemoryRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Property
	for _, id := range r.order {
		if p := r.items[id]; p != nil && p.CustomerID == customerID {
			clone := *p
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Search(ctx context.Context, filter SearchFilter) ([]*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Property
	for _, id := range r.order {
		p := r.items[id]
		if p == nil || !matches(p, filter) {
			continue
		}
		clone := *p
		result = append(result, &clone)
	}

	sortProperties(result, filter.OrderBy, filter.OrderDir)
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, p *Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[p.ID]; !ok {
		return ErrNotFound
	}
	clone := *p
	r.items[p.ID] = &clone
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

func matches(p *Property, filter SearchFilter) bool {
	contains := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	return contains(p.Name, filter.Name) &&
		contains(p.Description, filter.Description) &&
		contains(p.Type, filter.Type)
}

func sortProperties(items []*Property, orderBy, orderDir string) {
	var less func(a, b *Property) bool
	switch orderBy {
	case "pricePerHour":
		less = func(a, b *Property) bool { return a.PricePerHour < b.PricePerHour }
	case "name":
		less = func(a, b *Property) bool { return a.Name < b.Name }
	case "description":
		less = func(a, b *Property) bool { return a.Description < b.Description }
	case "type":
		less = func(a, b *Property) bool { return a.Type < b.Type }
	default:
		return
	}

	if orderDir == "desc" {
		inner := less
		less = func(a, b *Property) bool { return inner(b, a) }
	}

	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
