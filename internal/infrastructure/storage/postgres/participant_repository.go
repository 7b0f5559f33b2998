package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/event"
)

type ParticipantRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewParticipantRepository(db *Storage, log *slog.Logger) *ParticipantRepository {
	return &ParticipantRepository{
		db:  db,
		log: log,
	}
}

// Join inserts a registration inside one transaction. The event row is locked
// so the capacity check and the insert cannot race with a concurrent join.
func (r *ParticipantRepository) Join(ctx context.Context, eventID int64, req event.JoinRequest) (event.Participant, error) {
	var p event.Participant

	tx, err := r.db.Pool().Begin(ctx)
	if err != nil {
		return p, err
	}
	defer tx.Rollback(ctx)

	var maxParticipants, count int
	err = tx.QueryRow(ctx,
		`SELECT max_participants,
                (SELECT COUNT(*) FROM participants WHERE event_id = $1)
         FROM events WHERE id = $1 FOR UPDATE`, eventID).
		Scan(&maxParticipants, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, event.ErrNotFound
		}
		return p, err
	}

	if count >= maxParticipants {
		return p, event.ErrEventFull
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM participants WHERE event_id = $1 AND user_id = $2)`,
		eventID, req.UserID).Scan(&exists)
	if err != nil {
		return p, err
	}
	if exists {
		return p, event.ErrAlreadyRegistered
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO participants (event_id, user_id, nick, role, confirmed)
         VALUES ($1, $2, $3, $4, TRUE)
         RETURNING id, registered_at`,
		eventID, req.UserID, req.Nick, req.Role).
		Scan(&p.ID, &p.RegisteredAt)
	if err != nil {
		return p, err
	}

	if err := tx.Commit(ctx); err != nil {
		return p, err
	}

	p.EventID = eventID
	p.UserID = req.UserID
	p.Nick = req.Nick
	p.Role = req.Role
	p.Confirmed = true
	return p, nil
}

func (r *ParticipantRepository) Leave(ctx context.Context, eventID, userID int64) error {
	tag, err := r.db.Pool().Exec(ctx,
		`DELETE FROM participants WHERE event_id = $1 AND user_id = $2`,
		eventID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return event.ErrNotRegistered
	}
	return nil
}

func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID int64) ([]event.Participant, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, event_id, user_id, nick, role, registered_at, confirmed
         FROM participants WHERE event_id = $1
         ORDER BY registered_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []event.Participant
	for rows.Next() {
		var p event.Participant
		if err := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Nick, &p.Role, &p.RegisteredAt, &p.Confirmed); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
