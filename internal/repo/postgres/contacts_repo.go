package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexgenbattles/tournament-api/internal/domain"
)

type ContactsRepo interface {
	Create(ctx context.Context, in *domain.ContactReq) (*domain.ContactMessage, error)
}

type ContactsRepoImpl struct{ pool *pgxpool.Pool }

func NewContactsRepo(pool *pgxpool.Pool) *ContactsRepoImpl { return &ContactsRepoImpl{pool: pool} }

func (r *ContactsRepoImpl) Create(ctx context.Context, in *domain.ContactReq) (*domain.ContactMessage, error) {
	const q = `INSERT INTO contact_messages (name, email, message)
  VALUES ($1,$2,$3)
  RETURNING id, name, email, message, created_at`

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.ContactMessage
	err := r.pool.QueryRow(ctx, q, in.Name, in.Email, in.Message).Scan(
		&m.ID, &m.Name, &m.Email, &m.Message, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
