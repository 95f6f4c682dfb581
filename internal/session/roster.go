// internal/session/roster.go
package session

import "github.com/google/uuid"

// AddPlayer appends a new player to the roster and returns it. The
// caller is responsible for running this inside an atomic store update;
// two concurrent joins must each see the other's append.
func (s *Session) AddPlayer(name string) Player {
	p := Player{
		ID:     uuid.New(),
		Name:   name,
		Ready:  false,
		IsHost: len(s.Players) == 0,
	}
	s.Players = append(s.Players, p)
	return p
}

// SetReady sets the ready flag of the identified player. It reports
// whether the player was found; callers treat a miss as a no-op.
func (s *Session) SetReady(id uuid.UUID, ready bool) bool {
	for i := range s.Players {
		if s.Players[i].ID == id {
			s.Players[i].Ready = ready
			return true
		}
	}
	return false
}

// AllReady reports whether every player in a non-empty roster has
// flagged ready. An empty roster is never "all ready".
func (s *Session) AllReady() bool {
	if len(s.Players) == 0 {
		return false
	}
	for _, p := range s.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}
