package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/pkg/lock"
	"github.com/rentspot/rental-booking-backend/internal/property"
)

type CreateRequest struct {
	CustomerID string
	PropertyID string
	StartDate  time.Time
	EndDate    time.Time
}

// EditRequest carries the new interval. Nil means "keep the current value".
type EditRequest struct {
	StartDate *time.Time
	EndDate   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*Booking, error)
	Edit(ctx context.Context, id, customerID string, req EditRequest) (*Booking, error)
	Cancel(ctx context.Context, id, customerID string) error
	Delete(ctx context.Context, id, customerID string) error
}

type service struct {
	repo        Repository
	propService property.Service

	// locks serializes the conflict-check-then-write sequence per property
	// so two concurrent admissions cannot both pass against a stale read.
	locks *lock.Keyed
	now   func() time.Time
}

func NewService(repo Repository, propService property.Service) Service {
	return &service{
		repo:        repo,
		propService: propService,
		locks:       lock.NewKeyed(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	prop, err := s.propService.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	s.locks.Lock(prop.ID)
	defer s.locks.Unlock(prop.ID)

	adm, err := Admit(ctx, prop, req.StartDate, req.EndDate, s.now(), "", s.repo.HasOverlap)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		CustomerID: req.CustomerID,
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		FinalPrice: adm.FinalPrice,
		Status:     StatusConfirmed,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListByProperty(ctx context.Context, propertyID string) ([]*Booking, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *service) Edit(ctx context.Context, id, customerID string, req EditRequest) (*Booking, error) {
	// The first read only locates the property; every gate is evaluated
	// again on a fresh read under the property lock.
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrNotOwnedByCustomer
	}

	prop, err := s.propService.GetByID(ctx, b.PropertyID)
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	s.locks.Lock(prop.ID)
	defer s.locks.Unlock(prop.ID)

	b, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Canceled is terminal; a concurrent cancel that landed before the
	// lock was taken must not be overwritten here.
	if b.Status == StatusCanceled {
		return nil, ErrEditCanceled
	}

	newStart := b.StartDate
	newEnd := b.EndDate
	if req.StartDate != nil {
		newStart = *req.StartDate
	}
	if req.EndDate != nil {
		newEnd = *req.EndDate
	}

	// Re-admit the whole interval, excluding this booking from the
	// conflict check so it cannot collide with itself.
	adm, err := Admit(ctx, prop, newStart, newEnd, s.now(), b.ID, s.repo.HasOverlap)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b.StartDate = newStart
	b.EndDate = newEnd
	b.FinalPrice = adm.FinalPrice
	b.UpdatedAt = &now

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, customerID string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.CustomerID != customerID {
		return ErrNotOwnedByCustomer
	}

	// Status changes go through the property lock so they interleave
	// cleanly with concurrent admissions on the same property.
	s.locks.Lock(b.PropertyID)
	defer s.locks.Unlock(b.PropertyID)

	b, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCanceled {
		return ErrAlreadyCanceled
	}

	now := s.now()
	b.Status = StatusCanceled
	b.UpdatedAt = &now

	return s.repo.Update(ctx, b)
}

func (s *service) Delete(ctx context.Context, id, customerID string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.CustomerID != customerID {
		return ErrNotOwnedByCustomer
	}

	s.locks.Lock(b.PropertyID)
	defer s.locks.Unlock(b.PropertyID)

	// Hard delete; no status gating, a confirmed booking may be removed.
	return s.repo.Delete(ctx, id)
}
