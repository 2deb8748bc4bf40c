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

	// UpdateStatus flips the stored status in a single conditional update.
	// A booking already holding the requested status changes zero rows and
	// yields ErrSameStatus, so two racing writers cannot both win with the
	// same outcome.
	UpdateStatus(ctx context.Context, id string, to Status) error

	ListByBooker(ctx context.Context, bookerID string, q Query) ([]*Booking, error)
	ListByItems(ctx context.Context, itemIDs []string, q Query) ([]*Booking, error)
	ListByItemAndBooker(ctx context.Context, itemID, bookerID string) ([]*Booking, error)

	// LastForItem returns the most recently ended booking of the item, or
	// nil when it has never been rented out.
	LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
	// NextForItem returns the soonest upcoming booking of the item, or nil.
	NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("bookings").
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, to Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("bookings").
		Set("status", to).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": to}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSameStatus
	}
	return nil
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, q Query) ([]*Booking, error) {
	return r.list(ctx, buildListQuery(squirrel.Eq{"b.booker_id": bookerID}, q))
}

func (r *pgxRepository) ListByItems(ctx context.Context, itemIDs []string, q Query) ([]*Booking, error) {
	return r.list(ctx, buildListQuery(squirrel.Eq{"b.item_id": itemIDs}, q))
}

func (r *pgxRepository) ListByItemAndBooker(ctx context.Context, itemID, bookerID string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sb := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID, "b.booker_id": bookerID})
	return r.list(ctx, sb)
}

func (r *pgxRepository) LastForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.edgeForItem(ctx, squirrel.Lt{"b.end_date": now}, "b.end_date DESC", itemID)
}

func (r *pgxRepository) NextForItem(ctx context.Context, itemID string, now time.Time) (*Booking, error) {
	return r.edgeForItem(ctx, squirrel.Gt{"b.start_date": now}, "b.end_date ASC", itemID)
}

func (r *pgxRepository) edgeForItem(ctx context.Context, cond squirrel.Sqlizer, order, itemID string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(cond).
		OrderBy(order).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) list(ctx context.Context, sb squirrel.SelectBuilder) ([]*Booking, error) {
	query, args, err := sb.ToSql()
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
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.ItemID, &b.ItemName,
		&b.BookerID, &b.BookerName, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
