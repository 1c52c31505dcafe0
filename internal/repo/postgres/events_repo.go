package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexgenbattles/tournament-api/internal/domain"
)

type EventsRepo interface {
	Create(ctx context.Context, hostID int64, in *domain.EventCreateReq) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListAll(ctx context.Context) ([]domain.Event, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error)
	Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error)
}

type EventsRepoImpl struct{ pool *pgxpool.Pool }

func NewEventsRepo(pool *pgxpool.Pool) *EventsRepoImpl { return &EventsRepoImpl{pool: pool} }

const eventCols = `id, name, date, entry_fees, prize, seats_left,
game_name, is_open, expired, image, event_type, host_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID, &e.Name, &e.Date, &e.EntryFees, &e.Prize, &e.SeatsLeft,
		&e.GameName, &e.IsOpen, &e.Expired, &e.Image, &e.EventType, &e.HostID,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventsRepoImpl) Create(ctx context.Context, hostID int64, in *domain.EventCreateReq) (*domain.Event, error) {
	const q = `INSERT INTO events (
    name, date, entry_fees, prize, seats_left,
    game_name, is_open, expired, image, event_type, host_id
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  RETURNING ` + eventCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q,
		in.Name, in.Date, in.EntryFees, in.Prize, in.SeatsLeft,
		in.GameName, in.IsOpen, in.Expired, in.Image, in.EventType, hostID,
	))
}

func (r *EventsRepoImpl) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q, id))
}

func (r *EventsRepoImpl) ListAll(ctx context.Context) ([]domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events ORDER BY date`
	return r.list(ctx, q)
}

func (r *EventsRepoImpl) ListByHost(ctx context.Context, hostID int64) ([]domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE host_id=$1 ORDER BY date`
	return r.list(ctx, q, hostID)
}

func (r *EventsRepoImpl) list(ctx context.Context, q string, args ...any) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Date, &e.EntryFees, &e.Prize, &e.SeatsLeft,
			&e.GameName, &e.IsOpen, &e.Expired, &e.Image, &e.EventType, &e.HostID,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepoImpl) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	const q = `
UPDATE events SET
  name=COALESCE($2, name),
  date=COALESCE($3, date),
  entry_fees=COALESCE($4, entry_fees),
  prize=COALESCE($5, prize),
  seats_left=COALESCE($6, seats_left),
  game_name=COALESCE($7, game_name),
  is_open=COALESCE($8, is_open),
  expired=COALESCE($9, expired),
  image=COALESCE($10, image),
  event_type=COALESCE($11, event_type),
  updated_at=now()
WHERE id=$1
RETURNING ` + eventCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanEvent(r.pool.QueryRow(ctx, q, id,
		patch.Name, patch.Date, patch.EntryFees, patch.Prize, patch.SeatsLeft,
		patch.GameName, patch.IsOpen, patch.Expired, patch.Image, patch.EventType,
	))
}
