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

	// UpdateStatus changes the booking status only if it still equals from.
	// A lost race surfaces as ErrRepeatedStatus.
	UpdateStatus(ctx context.Context, id string, from, to Status) (*Booking, error)

	// ListByBooker and ListByOwner return bookings ordered by start time
	// descending. For CURRENT/PAST/FUTURE filters the temporal comparison
	// uses the supplied now.
	ListByBooker(ctx context.Context, bookerID string, filter StateFilter, now time.Time) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID string, filter StateFilter, now time.Time) ([]*Booking, error)
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
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := bookingSelect(psql).
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errBookingNotFound(id)
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// The row was read moments ago, so a zero-row update means the
		// status changed underneath us.
		return nil, ErrRepeatedStatus
	}

	return r.GetByID(ctx, id)
}

func (r *pgxRepository) ListByBooker(ctx context.Context, bookerID string, filter StateFilter, now time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingSelect(psql).
		Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.list(ctx, applyStateFilter(query, filter, now))
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, filter StateFilter, now time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := bookingSelect(psql).
		Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.list(ctx, applyStateFilter(query, filter, now))
}

func bookingSelect(psql squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return psql.Select(
		"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id")
}

// applyStateFilter translates a state filter into SQL conditions. Temporal
// buckets: CURRENT start<=now<=end, PAST end<now, FUTURE start>now.
func applyStateFilter(query squirrel.SelectBuilder, filter StateFilter, now time.Time) squirrel.SelectBuilder {
	switch filter {
	case FilterCurrent:
		query = query.
			Where(squirrel.LtOrEq{"b.start_time": now}).
			Where(squirrel.GtOrEq{"b.end_time": now})
	case FilterPast:
		query = query.Where(squirrel.Lt{"b.end_time": now})
	case FilterFuture:
		query = query.Where(squirrel.Gt{"b.start_time": now})
	case FilterWaiting:
		query = query.Where(squirrel.Eq{"b.status": StatusWaiting})
	case FilterRejected:
		query = query.Where(squirrel.Eq{"b.status": StatusRejected})
	}
	return query.OrderBy("b.start_time DESC")
}

func (r *pgxRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*Booking, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID,
			&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
