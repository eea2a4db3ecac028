package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Property, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
}

// orderColumns maps API sort fields to table columns. Anything not in
// this map is ignored rather than interpolated into SQL.
var orderColumns = map[string]string{
	"pricePerHour": "price_per_hour",
	"name":         "name",
	"description":  "description",
	"type":         "type",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Property) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.properties").
		Columns("customer_id", "name", "type", "description", "min_time", "max_time", "price_per_hour").
		Values(p.CustomerID, p.Name, p.Type, p.Description, p.MinTime, p.MaxTime, p.PricePerHour).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create property query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	const query = `
		SELECT id, customer_id, name, type, description, min_time, max_time, price_per_hour, created_at, updated_at
		FROM public.properties
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var p Property
	if err := row.Scan(
		&p.ID, &p.CustomerID, &p.Name, &p.Type, &p.Description,
		&p.MinTime, &p.MaxTime, &p.PricePerHour, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get property failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Property, error) {
	const query = `
		SELECT id, customer_id, name, type, description, min_time, max_time, price_per_hour, created_at, updated_at
		FROM public.properties
		WHERE customer_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list properties failed: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *pgxRepository) Search(ctx context.Context, filter SearchFilter) ([]*Property, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "customer_id", "name", "type", "description",
		"min_time", "max_time", "price_per_hour", "created_at", "updated_at",
	).From("public.properties")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Description != "" {
		query = query.Where(squirrel.ILike{"description": "%" + filter.Description + "%"})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.ILike{"type": "%" + filter.Type + "%"})
	}

	if col, ok := orderColumns[filter.OrderBy]; ok {
		dir := "ASC"
		if filter.OrderDir == "desc" {
			dir = "DESC"
		}
		query = query.OrderBy(col + " " + dir)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search properties query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search properties failed: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

func (r *pgxRepository) Update(ctx context.Context, p *Property) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.properties").
		Set("name", p.Name).
		Set("type", p.Type).
		Set("description", p.Description).
		Set("min_time", p.MinTime).
		Set("max_time", p.MaxTime).
		Set("price_per_hour", p.PricePerHour).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update property query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update property failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete property query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete property failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProperties(rows pgx.Rows) ([]*Property, error) {
	var properties []*Property
	for rows.Next() {
		var p Property
		if err := rows.Scan(
			&p.ID, &p.CustomerID, &p.Name, &p.Type, &p.Description,
			&p.MinTime, &p.MaxTime, &p.PricePerHour, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan property failed: %w", err)
		}
		properties = append(properties, &p)
	}
	return properties, rows.Err()
}
