package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"teamfinder/internal/domain/event"
)

type EventRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewEventRepository(db *Storage, log *slog.Logger) *EventRepository {
	return &EventRepository{
		db:  db,
		log: log,
	}
}

const eventColumns = `e.id, e.title, e.description, e.game_id, e.organizer_id,
       e.starts_at, e.ends_at, e.max_participants, e.public, e.created_at,
       (SELECT COUNT(*) FROM participants p WHERE p.event_id = e.id) AS participant_count`

func (r *EventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO events (title, description, game_id, organizer_id, starts_at, ends_at, max_participants, public)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at`,
		e.Title, e.Description, e.GameID, e.OrganizerID, e.StartsAt, e.EndsAt, e.MaxParticipants, e.Public).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return event.Event{}, err
	}
	return e, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (event.Event, error) {
	var e event.Event
	err := r.db.Pool().QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events e WHERE e.id = $1`, id).
		Scan(&e.ID, &e.Title, &e.Description, &e.GameID, &e.OrganizerID,
			&e.StartsAt, &e.EndsAt, &e.MaxParticipants, &e.Public, &e.CreatedAt,
			&e.ParticipantCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, event.ErrNotFound
		}
		return e, err
	}
	return e, nil
}

func (r *EventRepository) List(ctx context.Context) ([]event.Event, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT `+eventColumns+` FROM events e ORDER BY e.starts_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.GameID, &e.OrganizerID,
			&e.StartsAt, &e.EndsAt, &e.MaxParticipants, &e.Public, &e.CreatedAt,
			&e.ParticipantCount); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
