// internal/store/store.go

// Package store persists session records keyed by their shareable code.
// Every read-modify-write against a session must go through Update so
// concurrent mutations of the same record cannot lose each other's
// writes.
package store

import (
	"context"
	"errors"

	"github.com/quizroom/quizroom/internal/session"
)

var (
	// ErrSessionNotFound indicates the code maps to no live session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExists indicates a create raced with another session
	// already holding the code.
	ErrSessionExists = errors.New("session code already in use")
)

// Store is the durable mapping from session code to session record.
// Implementations must make Create atomic (never check-then-set) and
// must apply Update as an atomic whole-record replace, since roster and
// active-player fields are read together and must never be torn.
type Store interface {
	// Create persists a new session under its code. Fails with
	// ErrSessionExists if the code is already taken.
	Create(ctx context.Context, sess *session.Session) error

	// Get returns a copy of the session, or ErrSessionNotFound.
	Get(ctx context.Context, code string) (*session.Session, error)

	// Exists reports whether a session currently holds the code. The
	// answer is advisory; Create remains the authority under races.
	Exists(ctx context.Context, code string) (bool, error)

	// Update re-reads the session, applies mutate to a private copy,
	// and writes the result back atomically, retrying if a concurrent
	// writer got there first. An error from mutate aborts the update
	// without writing and is returned unchanged.
	Update(ctx context.Context, code string, mutate func(*session.Session) error) (*session.Session, error)

	// Delete removes the session. Deleting an unknown code is a no-op;
	// disposal is driven by an external reclamation policy.
	Delete(ctx context.Context, code string) error
}
