package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/auth"
)

type RegisterRequest struct {
	Name     string
	Email    string
	CPF      string
	Phone    string
	Password string
}

// UpdateRequest carries a partial update. Nil means "leave unchanged".
type UpdateRequest struct {
	Name     *string
	Phone    *string
	Password *string
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Customer, error)

	// Login authenticates by email or cpf.
	Login(ctx context.Context, login, password string) (*Customer, error)

	GetByID(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Customer, error) {
	email := normalizeEmail(req.Email)
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	exists, err := s.repo.ExistsByEmailOrCPF(ctx, email, req.CPF)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing customer: %w", err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	c := &Customer{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		CPF:          req.CPF,
		Phone:        req.Phone,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Login(ctx context.Context, login, password string) (*Customer, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	c, err := s.repo.GetByLogin(ctx, strings.ToLower(login))
	if err != nil {
		// Not-found maps to invalid credentials so login probing
		// cannot tell accounts apart.
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(c.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Password != nil {
		if len(*req.Password) < s.minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		c.PasswordHash = hash
	}

	now := time.Now().UTC()
	c.UpdatedAt = &now

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
