package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexgenbattles/tournament-api/internal/domain"
)

type ParticipantsRepo interface {
	Create(ctx context.Context, eventID, userID int64, in *domain.ParticipantCreateReq) (*domain.Participant, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Participant, error)
}

type ParticipantsRepoImpl struct{ pool *pgxpool.Pool }

func NewParticipantsRepo(pool *pgxpool.Pool) *ParticipantsRepoImpl {
	return &ParticipantsRepoImpl{pool: pool}
}

const participantCols = `id, captain_name, team_name,
player1_name, player2_name, player3_name, player4_name, player5_name,
email, phone_number, event_id, user_id, created_at`

func (r *ParticipantsRepoImpl) Create(ctx context.Context, eventID, userID int64, in *domain.ParticipantCreateReq) (*domain.Participant, error) {
	const q = `INSERT INTO participants (
    captain_name, team_name,
    player1_name, player2_name, player3_name, player4_name, player5_name,
    email, phone_number, event_id, user_id
  ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
  RETURNING ` + participantCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p domain.Participant
	err := r.pool.QueryRow(ctx, q,
		in.CaptainName, in.TeamName,
		in.Player1Name, in.Player2Name, in.Player3Name, in.Player4Name, in.Player5Name,
		in.Email, in.PhoneNumber, eventID, userID,
	).Scan(
		&p.ID, &p.CaptainName, &p.TeamName,
		&p.Player1Name, &p.Player2Name, &p.Player3Name, &p.Player4Name, &p.Player5Name,
		&p.Email, &p.PhoneNumber, &p.EventID, &p.UserID, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ParticipantsRepoImpl) ListByEvent(ctx context.Context, eventID int64) ([]domain.Participant, error) {
	const q = `SELECT ` + participantCols + ` FROM participants WHERE event_id=$1 ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(
			&p.ID, &p.CaptainName, &p.TeamName,
			&p.Player1Name, &p.Player2Name, &p.Player3Name, &p.Player4Name, &p.Player5Name,
			&p.Email, &p.PhoneNumber, &p.EventID, &p.UserID, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
