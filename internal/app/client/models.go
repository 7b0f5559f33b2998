package client

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"teamfinder/internal/domain/event"
)

// ParticipantID различает подтвержденные сервером записи и оптимистичные
// локальные. Ровно одно из полей заполнено.
type ParticipantID struct {
	Server int64
	Local  string
}

func ConfirmedID(id int64) ParticipantID {
	return ParticipantID{Server: id}
}

// OptimisticID генерирует локальный идентификатор для записи, еще не
// подтвержденной сервером.
func OptimisticID() ParticipantID {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return ParticipantID{Local: "local-" + strconv.FormatInt(time.Now().UnixNano(), 36)}
	}
	return ParticipantID{Local: "local-" + hex.EncodeToString(buf)}
}

func (id ParticipantID) IsOptimistic() bool {
	return id.Local != ""
}

func (id ParticipantID) String() string {
	if id.IsOptimistic() {
		return id.Local
	}
	return strconv.FormatInt(id.Server, 10)
}

// MarshalJSON сериализует серверный id числом, локальный — строкой с
// префиксом "local-".
func (id ParticipantID) MarshalJSON() ([]byte, error) {
	if id.IsOptimistic() {
		return json.Marshal(id.Local)
	}
	return json.Marshal(id.Server)
}

func (id *ParticipantID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ParticipantID{Server: n}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("неверный формат идентификатора участника: %s", data)
	}
	if !strings.HasPrefix(s, "local-") {
		return fmt.Errorf("неверный локальный идентификатор: %q", s)
	}
	*id = ParticipantID{Local: s}
	return nil
}

// Participant — клиентское представление записи участника. В отличие от
// серверной модели допускает оптимистичные записи без серверного id.
type Participant struct {
	ID           ParticipantID `json:"id"`
	EventID      int64         `json:"event_id"`
	UserID       int64         `json:"user_id"`
	Nick         string        `json:"nick"`
	Role         string        `json:"role"`
	RegisteredAt time.Time     `json:"registered_at"`
	Confirmed    bool          `json:"confirmed"`
}

func confirmedParticipant(p event.Participant) Participant {
	return Participant{
		ID:           ConfirmedID(p.ID),
		EventID:      p.EventID,
		UserID:       p.UserID,
		Nick:         p.Nick,
		Role:         p.Role,
		RegisteredAt: p.RegisteredAt,
		Confirmed:    true,
	}
}

func confirmedParticipants(list []event.Participant) []Participant {
	out := make([]Participant, 0, len(list))
	for _, p := range list {
		out = append(out, confirmedParticipant(p))
	}
	return out
}

type ActionKind string

const (
	ActionJoin  ActionKind = "join"
	ActionLeave ActionKind = "leave"
)

// PendingAction — отложенная мутация, ожидающая подтверждения сервером.
// Nick и Role заполнены только для join.
type PendingAction struct {
	Kind    ActionKind `json:"kind"`
	EventID int64      `json:"eventId"`
	UserID  int64      `json:"userId"`
	Nick    string     `json:"nick,omitempty"`
	Role    string     `json:"role,omitempty"`
}

// CacheEntry — снимок события с участниками, сохраняемый целиком.
type CacheEntry struct {
	Event        event.Event   `json:"event"`
	Participants []Participant `json:"participants"`
}
