package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentspot/rental-booking-backend/internal/auth"
)

func newTestService() (Service, *MemoryRepository) {
	repo := NewMemoryRepository()
	// MinCost keeps the hashing fast in tests.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)), repo
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Name:     "Ana Souza",
		Email:    "Ana.Souza@Example.com",
		CPF:      "52998224725",
		Phone:    "+55 11 91234-5678",
		Password: "correct-horse",
	}
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "ana.souza@example.com", c.Email)
	assert.NotEqual(t, "correct-horse", c.PasswordHash)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	req := validRegister()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	t.Run("same email", func(t *testing.T) {
		req := validRegister()
		req.CPF = "15350946056"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("same cpf", func(t *testing.T) {
		req := validRegister()
		req.Email = "other@example.com"
		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		c, err := svc.Login(context.Background(), "ana.souza@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, c.ID)
	})

	t.Run("by cpf", func(t *testing.T) {
		c, err := svc.Login(context.Background(), "52998224725", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, c.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ana.souza@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown login", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@example.com", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateCustomer(t *testing.T) {
	svc, _ := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	t.Run("absent fields stay untouched", func(t *testing.T) {
		phone := "+55 11 98888-0000"
		updated, err := svc.Update(context.Background(), registered.ID, UpdateRequest{Phone: &phone})
		require.NoError(t, err)

		assert.Equal(t, phone, updated.Phone)
		assert.Equal(t, registered.Name, updated.Name)
		assert.Equal(t, registered.Email, updated.Email)
		assert.NotNil(t, updated.UpdatedAt)
	})

	t.Run("password change is re-validated and re-hashed", func(t *testing.T) {
		short := "short"
		_, err := svc.Update(context.Background(), registered.ID, UpdateRequest{Password: &short})
		assert.ErrorIs(t, err, ErrPasswordTooShort)

		fresh := "a-new-password"
		_, err = svc.Update(context.Background(), registered.ID, UpdateRequest{Password: &fresh})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), "ana.souza@example.com", "a-new-password")
		assert.NoError(t, err)
	})
}

func TestDeleteCustomer(t *testing.T) {
	svc, repo := newTestService()

	registered, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), registered.ID))

	_, err = repo.GetByID(context.Background(), registered.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), registered.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
