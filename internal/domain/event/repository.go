package event

import "context"

type Repository interface {
	Create(ctx context.Context, e Event) (Event, error)
	GetByID(ctx context.Context, id int64) (Event, error)
	List(ctx context.Context) ([]Event, error)
}

// ParticipantRepository owns registrations. Join and Leave are expected to be
// concurrency-safe: capacity and duplicate checks happen inside one transaction.
type ParticipantRepository interface {
	Join(ctx context.Context, eventID int64, req JoinRequest) (Participant, error)
	Leave(ctx context.Context, eventID, userID int64) error
	ListByEvent(ctx context.Context, eventID int64) ([]Participant, error)
}
