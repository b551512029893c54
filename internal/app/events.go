package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sboyar/huddle/internal/core"
	"github.com/sboyar/huddle/internal/domain"
)

// Outbound event kinds of the signaling protocol.
const (
	kindUsersInRoom  = "users-in-room"
	kindUserJoined   = "user-joined"
	kindUserLeft     = "user-left"
	kindOffer        = "offer"
	kindAnswer       = "answer"
	kindICECandidate = "ice-candidate"
	kindMessage      = "message"
)

// roomUser is the per-member view sent to clients: id plus label, no
// transport fields.
type roomUser struct {
	ID       domain.ConnID `json:"id"`
	Username string        `json:"username"`
}

// usersInRoomEvent goes to a joiner: every other current member of the room.
type usersInRoomEvent struct {
	Type  string     `json:"type"`
	Users []roomUser `json:"users"`
}

type userJoinedEvent struct {
	Type     string        `json:"type"`
	ID       domain.ConnID `json:"id"`
	Username string        `json:"username"`
}

type userLeftEvent struct {
	Type     string        `json:"type"`
	ID       domain.ConnID `json:"id"`
	Username string        `json:"username"`
}

type offerEvent struct {
	Type         string          `json:"type"`
	FromID       domain.ConnID   `json:"fromId"`
	FromUsername string          `json:"fromUsername,omitempty"`
	Offer        json.RawMessage `json:"offer"`
}

type answerEvent struct {
	Type         string          `json:"type"`
	FromID       domain.ConnID   `json:"fromId"`
	FromUsername string          `json:"fromUsername,omitempty"`
	Answer       json.RawMessage `json:"answer"`
}

type candidateEvent struct {
	Type      string          `json:"type"`
	FromID    domain.ConnID   `json:"fromId"`
	Candidate json.RawMessage `json:"candidate"`
}

type messageEvent struct {
	Type      string        `json:"type"`
	FromID    domain.ConnID `json:"fromId"`
	Username  string        `json:"username"`
	Message   string        `json:"message"`
	Timestamp int64         `json:"timestamp"`
}

func encode(v any) (core.Frame, bool) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("encode event")
		return nil, false
	}
	return b, true
}
