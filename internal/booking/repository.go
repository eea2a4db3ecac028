package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id string) error

	// HasOverlap checks if any confirmed booking on the property overlaps
	// [start, end], boundaries included. excludeBookingID is used during
	// edits to ignore the booking itself.
	HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error)

	// HasActiveAt checks if any confirmed booking on the property is in
	// progress at the given instant.
	HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("customer_id", "property_id", "start_date", "end_date", "final_price", "status").
		Values(b.CustomerID, b.PropertyID, b.StartDate, b.EndDate, b.FinalPrice, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const query = `
		SELECT id, customer_id, property_id, start_date, end_date, final_price, status, created_at, updated_at
		FROM public.bookings
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.CustomerID, &b.PropertyID, &b.StartDate, &b.EndDate,
		&b.FinalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) ListByProperty(ctx context.Context, propertyID string) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"property_id": propertyID})
}

func (r *pgxRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	return r.list(ctx, squirrel.Eq{"customer_id": customerID})
}

func (r *pgxRepository) list(ctx context.Context, where squirrel.Eq) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "customer_id", "property_id", "start_date", "end_date",
		"final_price", "status", "created_at", "updated_at",
	).
		From("public.bookings").
		Where(where).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.CustomerID, &b.PropertyID, &b.StartDate, &b.EndDate,
			&b.FinalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("start_date", b.StartDate).
		Set("end_date", b.EndDate).
		Set("final_price", b.FinalPrice).
		Set("status", b.Status).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error) {
	// Inclusive on both boundaries: start_date <= end AND end_date >= start.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.GtOrEq{"end_date": start})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	return r.exists(ctx, subQuery)
}

func (r *pgxRepository) HasActiveAt(ctx context.Context, propertyID string, at time.Time) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Where(squirrel.LtOrEq{"start_date": at}).
		Where(squirrel.GtOrEq{"end_date": at})

	return r.exists(ctx, subQuery)
}

func (r *pgxRepository) exists(ctx context.Context, subQuery squirrel.SelectBuilder) (bool, error) {
	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build booking exists query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("booking exists query failed: %w", err)
	}
	return exists, nil
}
