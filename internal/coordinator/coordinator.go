// internal/coordinator/coordinator.go

// Package coordinator owns session lifecycle: create, join, ready
// aggregation, turn rotation, and the event fanout that follows every
// persisted state change. All roster and turn mutations run through the
// store's atomic update, so concurrent clients racing on one session
// code cannot lose each other's writes.
package coordinator

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quizroom/quizroom/internal/session"
	"github.com/quizroom/quizroom/internal/store"
)

// Broadcaster is the fanout capability the coordinator depends on. It
// must deliver without blocking; the coordinator never awaits delivery.
type Broadcaster interface {
	Publish(code string, msg map[string]interface{})
}

// Coordinator composes the session store and broadcaster into the
// request and event handlers. It holds no session state of its own;
// every operation re-reads through the store.
type Coordinator struct {
	store store.Store
	bc    Broadcaster
	log   *logrus.Logger
}

// New builds a coordinator around explicit dependencies.
func New(s store.Store, bc Broadcaster, log *logrus.Logger) *Coordinator {
	return &Coordinator{store: s, bc: bc, log: log}
}

// CreateSession generates a fresh session code, persists a waiting
// session hosted by playerName, and returns the code and host player
// id. The exists check is only an early out; the atomic create decides
// collisions, and a lost race simply regenerates.
func (c *Coordinator) CreateSession(ctx context.Context, playerName string) (string, uuid.UUID, error) {
	for {
		code := session.NewCode()
		taken, err := c.store.Exists(ctx, code)
		if err != nil {
			return "", uuid.Nil, err
		}
		if taken {
			continue
		}

		sess := session.New(code, playerName)
		err = c.store.Create(ctx, sess)
		if errors.Is(err, store.ErrSessionExists) {
			continue // concurrent create won the code, try another
		}
		if err != nil {
			return "", uuid.Nil, err
		}

		c.log.WithFields(logrus.Fields{
			"code":   code,
			"player": playerName,
		}).Info("session created")
		return code, sess.Players[0].ID, nil
	}
}

// JoinSession appends a new player to the session roster and announces
// the updated roster to the room. Returns store.ErrSessionNotFound for
// unknown codes, with no mutation performed.
func (c *Coordinator) JoinSession(ctx context.Context, code, playerName string) (uuid.UUID, error) {
	var joined session.Player
	updated, err := c.store.Update(ctx, code, func(s *session.Session) error {
		joined = s.AddPlayer(playerName)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	c.log.WithFields(logrus.Fields{
		"code":   code,
		"player": playerName,
	}).Info("player joined session")

	c.bc.Publish(code, map[string]interface{}{
		"type":    "currentPlayers",
		"players": updated.Players,
	})
	return joined.ID, nil
}

// AnnounceRoster publishes the current roster to the room. Backs the
// joinRoom event, so a fresh subscriber sees who is already in.
func (c *Coordinator) AnnounceRoster(ctx context.Context, code string) error {
	sess, err := c.store.Get(ctx, code)
	if err != nil {
		return err
	}
	c.bc.Publish(code, map[string]interface{}{
		"type":    "currentPlayers",
		"players": sess.Players,
	})
	return nil
}

// SetReady toggles the ready flag of the named player and broadcasts
// the change. A name that matches no roster entry is a logged no-op:
// nothing is written and no event goes out. When the toggle completes
// the all-ready conjunction, the room is told once and a waiting
// session is promoted to active with the first player seated.
func (c *Coordinator) SetReady(ctx context.Context, code, playerName string, ready bool) error {
	allReady := false
	_, err := c.store.Update(ctx, code, func(s *session.Session) error {
		p, ok := s.PlayerByName(playerName)
		if !ok {
			return session.ErrUnknownPlayer
		}
		s.SetReady(p.ID, ready)
		allReady = s.AllReady()
		if allReady && s.Status == session.StatusWaiting {
			if _, err := s.Start(); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, session.ErrUnknownPlayer) {
		c.log.WithFields(logrus.Fields{
			"code":   code,
			"player": playerName,
		}).Warn("ready toggle for unknown player, ignoring")
		return nil
	}
	if err != nil {
		return err
	}

	c.bc.Publish(code, map[string]interface{}{
		"type":       "readyStatusUpdate",
		"playerName": playerName,
		"ready":      ready,
	})
	if allReady {
		c.log.WithField("code", code).Info("all players ready")
		c.bc.Publish(code, map[string]interface{}{
			"type": "allPlayersReady",
		})
	}
	return nil
}

// StartGame unconditionally seats the first player in join order as
// active, then announces the start and the new active player, in that
// order.
func (c *Coordinator) StartGame(ctx context.Context, code string) error {
	var first session.Player
	_, err := c.store.Update(ctx, code, func(s *session.Session) error {
		var err error
		first, err = s.Start()
		return err
	})
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"code":   code,
		"player": first.Name,
	}).Info("game started")

	c.bc.Publish(code, map[string]interface{}{
		"type":             "startGame",
		"activePlayerName": first.Name,
	})
	c.publishActivePlayer(code, first)
	return nil
}

// EndTurn rotates the active player to the next roster entry and
// announces the change.
func (c *Coordinator) EndTurn(ctx context.Context, code string) error {
	var next session.Player
	_, err := c.store.Update(ctx, code, func(s *session.Session) error {
		var err error
		next, err = s.AdvanceTurn()
		return err
	})
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"code":   code,
		"player": next.Name,
	}).Info("turn advanced")

	c.publishActivePlayer(code, next)
	return nil
}

// ActivePlayer returns the player whose turn it currently is. The
// second return is false when the recorded active id no longer matches
// any roster entry.
func (c *Coordinator) ActivePlayer(ctx context.Context, code string) (session.Player, bool, error) {
	sess, err := c.store.Get(ctx, code)
	if err != nil {
		return session.Player{}, false, err
	}
	p, ok := sess.PlayerByID(sess.ActivePlayerID)
	return p, ok, nil
}

func (c *Coordinator) publishActivePlayer(code string, p session.Player) {
	c.bc.Publish(code, map[string]interface{}{
		"type":             "activePlayerChanged",
		"activePlayerId":   p.ID.String(),
		"activePlayerName": p.Name,
	})
}
