package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)

	// GetByLogin looks a customer up by email or cpf, whichever matches.
	GetByLogin(ctx context.Context, login string) (*Customer, error)

	ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Customer) error {
	const query = `
		INSERT INTO public.customers (name, email, cpf, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, c.Name, c.Email, c.CPF, c.Phone, c.PasswordHash).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create customer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Customer, error) {
	const query = `
		SELECT id, name, email, cpf, phone, password_hash, created_at, updated_at
		FROM public.customers
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByLogin(ctx context.Context, login string) (*Customer, error) {
	const query = `
		SELECT id, name, email, cpf, phone, password_hash, created_at, updated_at
		FROM public.customers
		WHERE email = $1 OR cpf = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, login))
}

func (r *pgxRepository) ExistsByEmailOrCPF(ctx context.Context, email, cpf string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.customers WHERE email = $1 OR cpf = $2
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, cpf).Scan(&exists); err != nil {
		return false, fmt.Errorf("check customer exists failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Customer) error {
	const query = `
		UPDATE public.customers
		SET name = $1, phone = $2, password_hash = $3, updated_at = $4
		WHERE id = $5
	`
	ct, err := r.pool.Exec(ctx, query, c.Name, c.Phone, c.PasswordHash, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) scanOne(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.CPF, &c.Phone,
		&c.PasswordHash, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer failed: %w", err)
	}
	return &c, nil
}
