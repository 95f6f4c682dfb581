// internal/session/turn_test.go
package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestStartSeatsFirstPlayer(t *testing.T) {
	s := New("ABC123", "alice")
	s.AddPlayer("bob")

	first, err := s.Start()
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if first.Name != "alice" {
		t.Fatalf("expected alice to go first, got %s", first.Name)
	}
	if s.Status != StatusActive {
		t.Fatalf("expected active status, got %s", s.Status)
	}
	if s.ActivePlayerID != first.ID {
		t.Fatal("active id not set to first player")
	}
}

func TestStartEmptyRoster(t *testing.T) {
	s := &Session{Code: "ABC123"}
	if _, err := s.Start(); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
	if _, err := s.AdvanceTurn(); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("expected ErrNoPlayers, got %v", err)
	}
}

// Repeated advances must visit every player exactly once per full cycle,
// in join order, then wrap back to the first.
func TestAdvanceTurnRoundRobin(t *testing.T) {
	s := New("ABC123", "p0")
	for i := 1; i < 5; i++ {
		s.AddPlayer("p" + string(rune('0'+i)))
	}
	if _, err := s.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	for cycle := 0; cycle < 3; cycle++ {
		for i := 1; i <= len(s.Players); i++ {
			next, err := s.AdvanceTurn()
			if err != nil {
				t.Fatalf("advance failed: %v", err)
			}
			want := s.Players[i%len(s.Players)].Name
			if next.Name != want {
				t.Fatalf("cycle %d step %d: got %s, want %s", cycle, i, next.Name, want)
			}
		}
	}
}

func TestAdvanceTurnStaleActiveID(t *testing.T) {
	s := New("ABC123", "alice")
	s.AddPlayer("bob")
	s.ActivePlayerID = uuid.New() // not in roster

	next, err := s.AdvanceTurn()
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if next.Name != "alice" {
		t.Fatalf("stale active id should restart rotation at the first player, got %s", next.Name)
	}
}
