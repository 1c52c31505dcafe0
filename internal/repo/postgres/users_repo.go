package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexgenbattles/tournament-api/internal/domain"
)

type UsersRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Onboard(ctx context.Context, email string, in *domain.OnboardRequest) (*domain.User, error)
	SetSubscribed(ctx context.Context, email string, at time.Time) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error)
}

type UsersRepoImpl struct{ pool *pgxpool.Pool }

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepoImpl { return &UsersRepoImpl{pool: pool} }

const userCols = `id, email, name, role, is_onboarded,
age, instagram_id, bgmi_id, gender, interested_game, phone_number, image,
is_subscribed, subscribed_at, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.IsOnboarded,
		&u.Age, &u.InstagramID, &u.BgmiID, &u.Gender, &u.InterestedGame, &u.PhoneNumber, &u.Image,
		&u.IsSubscribed, &u.SubscribedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsersRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *UsersRepoImpl) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *UsersRepoImpl) Onboard(ctx context.Context, email string, in *domain.OnboardRequest) (*domain.User, error) {
	const q = `
UPDATE users SET
  name=$2, age=$3, instagram_id=$4, bgmi_id=$5, gender=$6,
  interested_game=$7, phone_number=$8, image=$9,
  is_onboarded=TRUE, updated_at=now()
WHERE email=$1
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, q, email,
		in.Name, in.Age, in.InstagramID, in.BgmiID, in.Gender,
		in.InterestedGame, in.PhoneNumber, in.Image,
	))
}

func (r *UsersRepoImpl) SetSubscribed(ctx context.Context, email string, at time.Time) (*domain.User, error) {
	const q = `
UPDATE users SET is_subscribed=TRUE, subscribed_at=$2, updated_at=now()
WHERE email=$1
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, q, email, at))
}

func (r *UsersRepoImpl) UpdateProfile(ctx context.Context, email string, patch domain.UserPatch) (*domain.User, error) {
	const q = `
UPDATE users SET
  name=COALESCE($2, name),
  age=COALESCE($3, age),
  instagram_id=COALESCE($4, instagram_id),
  bgmi_id=COALESCE($5, bgmi_id),
  gender=COALESCE($6, gender),
  interested_game=COALESCE($7, interested_game),
  phone_number=COALESCE($8, phone_number),
  image=COALESCE($9, image),
  updated_at=now()
WHERE email=$1
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, q, email,
		patch.Name, patch.Age, patch.InstagramID, patch.BgmiID, patch.Gender,
		patch.InterestedGame, patch.PhoneNumber, patch.Image,
	))
}
