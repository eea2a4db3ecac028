package property

import (
	"context"
	"strings"
	"time"
)

// BookingProbe is the view of the booking store this package needs.
// The booking repository satisfies it; defining the interface here keeps
// the dependency edge booking -> property one-directional.
type BookingProbe interface {
	// HasOverlap reports whether a confirmed booking on the property
	// overlaps [start, end], boundaries included.
	HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error)

	// HasActiveAt reports whether a confirmed booking on the property
	// is in progress at the given instant.
	HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error)
}

type CreateRequest struct {
	CustomerID   string
	Name         string
	Type         string
	Description  string
	MinTime      int
	MaxTime      int
	PricePerHour float64
}

// UpdateRequest carries a partial update. Nil means "leave unchanged";
// it is never conflated with the zero value.
type UpdateRequest struct {
	Name         *string
	Type         *string
	Description  *string
	MinTime      *int
	MaxTime      *int
	PricePerHour *float64
}

// AvailabilityQuery asks for properties free of confirmed bookings
// anywhere in [StartDate, EndDate].
type AvailabilityQuery struct {
	StartDate      time.Time
	EndDate        time.Time
	Name           string
	Description    string
	Type           string
	OrderBy        string
	OrderDirection string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Property, error)
	FindAvailable(ctx context.Context, q AvailabilityQuery) ([]*Property, error)
	Update(ctx context.Context, id, customerID string, req UpdateRequest) (*Property, error)
	Delete(ctx context.Context, id, customerID string) error
}

type service struct {
	repo     Repository
	bookings BookingProbe
	now      func() time.Time
}

func NewService(repo Repository, bookings BookingProbe) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Property, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if err := validateTimes(req.MinTime, req.MaxTime, req.PricePerHour); err != nil {
		return nil, err
	}

	p := &Property{
		CustomerID:   req.CustomerID,
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		MinTime:      req.MinTime,
		MaxTime:      req.MaxTime,
		PricePerHour: req.PricePerHour,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCustomer(ctx context.Context, customerID string) ([]*Property, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) FindAvailable(ctx context.Context, q AvailabilityQuery) ([]*Property, error) {
	if !q.StartDate.Before(q.EndDate) {
		return nil, ErrInvalidDateRange
	}

	candidates, err := s.repo.Search(ctx, SearchFilter{
		Name:        q.Name,
		Description: q.Description,
		Type:        q.Type,
		OrderBy:     q.OrderBy,
		OrderDir:    q.OrderDirection,
	})
	if err != nil {
		return nil, err
	}

	available := make([]*Property, 0, len(candidates))
	for _, p := range candidates {
		conflict, err := s.bookings.HasOverlap(ctx, p.ID, q.StartDate, q.EndDate, "")
		if err != nil {
			return nil, err
		}
		if !conflict {
			available = append(available, p)
		}
	}
	return available, nil
}

func (s *service) Update(ctx context.Context, id, customerID string, req UpdateRequest) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CustomerID != customerID {
		return nil, ErrNotOwnedByCustomer
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		p.Name = *req.Name
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.MinTime != nil {
		p.MinTime = *req.MinTime
	}
	if req.MaxTime != nil {
		p.MaxTime = *req.MaxTime
	}
	if req.PricePerHour != nil {
		p.PricePerHour = *req.PricePerHour
	}

	// The invariant must hold on the resulting pair, whichever bound changed.
	if err := validateTimes(p.MinTime, p.MaxTime, p.PricePerHour); err != nil {
		return nil, err
	}

	now := s.now()
	p.UpdatedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id, customerID string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.CustomerID != customerID {
		return ErrNotOwnedByCustomer
	}

	// Only a booking in progress right now blocks deletion. A confirmed
	// booking entirely in the future does not.
	active, err := s.bookings.HasActiveAt(ctx, id, s.now())
	if err != nil {
		return err
	}
	if active {
		return ErrHasActiveBookings
	}

	return s.repo.Delete(ctx, id)
}

func validateTimes(minTime, maxTime int, pricePerHour float64) error {
	if minTime < 1 {
		return ErrInvalidMinTime
	}
	if minTime >= maxTime {
		return ErrInvalidTime
	}
	if pricePerHour <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
