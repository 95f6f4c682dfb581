// internal/session/session.go
package session

import (
	"errors"

	"github.com/google/uuid"
)

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

var (
	// ErrNoPlayers is returned by turn operations against an empty roster.
	ErrNoPlayers = errors.New("session has no players")
	// ErrUnknownPlayer is returned when a roster mutation references a
	// player that is not present in the session.
	ErrUnknownPlayer = errors.New("player not in session")
)

// Player is one participant in a session. The first joiner is the host.
type Player struct {
	ID     uuid.UUID `json:"playerId"`
	Name   string    `json:"playerName"`
	Ready  bool      `json:"ready"`
	IsHost bool      `json:"isHost"`
}

// Session is the persisted record for one live game, addressed by a
// short shareable code. Players are kept in join order; rotation and
// host selection both depend on that order.
type Session struct {
	Code           string    `json:"code"`
	Players        []Player  `json:"players"`
	ActivePlayerID uuid.UUID `json:"activePlayerId"`
	Status         Status    `json:"status"`
}

// New creates a waiting session hosted by a player with the given name.
// The host starts as the active player, matching the record written on
// create; the game itself begins only once Start is called.
func New(code, hostName string) *Session {
	host := Player{
		ID:     uuid.New(),
		Name:   hostName,
		Ready:  false,
		IsHost: true,
	}
	return &Session{
		Code:           code,
		Players:        []Player{host},
		ActivePlayerID: host.ID,
		Status:         StatusWaiting,
	}
}

// Clone returns a deep copy. Stores hand out clones so callers can
// never mutate shared state outside an Update.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Players = make([]Player, len(s.Players))
	copy(cp.Players, s.Players)
	return &cp
}

// PlayerByID returns the player with the given id, if present.
func (s *Session) PlayerByID(id uuid.UUID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// PlayerByName returns the first player with the given display name, if
// present. Ready toggles arrive keyed by name on the wire.
func (s *Session) PlayerByName(name string) (Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}
