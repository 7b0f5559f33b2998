package event

import "time"

// Event represents a gaming event a user can register for.
type Event struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	GameID           int64     `json:"game_id"`
	OrganizerID      int64     `json:"organizer_id"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	MaxParticipants  int       `json:"max_participants"`
	ParticipantCount int       `json:"participant_count"`
	Public           bool      `json:"public"`
	CreatedAt        time.Time `json:"created_at"`
}

// Remaining returns the number of open slots.
func (e *Event) Remaining() int {
	return e.MaxParticipants - e.ParticipantCount
}

// IsFull returns true when no slots remain.
func (e *Event) IsFull() bool {
	return e.ParticipantCount >= e.MaxParticipants
}

// Participant is a confirmed registration for an event.
type Participant struct {
	ID           int64     `json:"id"`
	EventID      int64     `json:"event_id"`
	UserID       int64     `json:"user_id"`
	Nick         string    `json:"nick"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
	Confirmed    bool      `json:"confirmed"`
}

// CreateRequest is the payload for creating a new event.
type CreateRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	GameID          int64     `json:"game_id"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	MaxParticipants int       `json:"max_participants"`
	Public          bool      `json:"public"`
}

// JoinRequest is the payload for registering for an event.
type JoinRequest struct {
	UserID int64  `json:"user_id"`
	Nick   string `json:"nick"`
	Role   string `json:"role"`
}
