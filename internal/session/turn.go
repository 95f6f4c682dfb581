// internal/session/turn.go
package session

// Start seats the first player in join order as the active player and
// marks the session active, regardless of prior state. Returns the
// seated player, or ErrNoPlayers on an empty roster.
func (s *Session) Start() (Player, error) {
	if len(s.Players) == 0 {
		return Player{}, ErrNoPlayers
	}
	first := s.Players[0]
	s.ActivePlayerID = first.ID
	s.Status = StatusActive
	return first, nil
}

// AdvanceTurn rotates the active player to the next roster entry in
// join order, wrapping from the last player back to the first. If the
// current active id is stale (not in the roster) the rotation restarts
// from the first player. Returns the new active player.
func (s *Session) AdvanceTurn() (Player, error) {
	if len(s.Players) == 0 {
		return Player{}, ErrNoPlayers
	}
	current := -1
	for i, p := range s.Players {
		if p.ID == s.ActivePlayerID {
			current = i
			break
		}
	}
	next := s.Players[(current+1)%len(s.Players)]
	s.ActivePlayerID = next.ID
	return next, nil
}
