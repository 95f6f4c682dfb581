// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizroom/quizroom/internal/session"
)

// DefaultSessionTTL bounds how long an untouched session record lives.
// Every write refreshes it, so the TTL only reclaims abandoned games.
const DefaultSessionTTL = 24 * time.Hour

// casAttempts caps optimistic-lock retries in Update before giving up.
const casAttempts = 16

// RedisStore keeps each session as a single JSON value under
// "session:{CODE}", so the roster and active-player fields are always
// replaced together in one atomic SET.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an already-connected client. A zero ttl falls
// back to DefaultSessionTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// ConnectRedis dials Redis and verifies the connection with a ping.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

func sessionKey(code string) string {
	return "session:" + code
}

// Create persists a new session with SETNX so a concurrent create of
// the same code loses cleanly with ErrSessionExists.
func (s *RedisStore) Create(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.Code, err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(sess.Code), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session %s: %w", sess.Code, err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Get fetches and decodes the session record.
func (s *RedisStore) Get(ctx context.Context, code string) (*session.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", code, err)
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", code, err)
	}
	return &sess, nil
}

// Exists reports whether the code is currently taken.
func (s *RedisStore) Exists(ctx context.Context, code string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(code)).Result()
	if err != nil {
		return false, fmt.Errorf("check session %s: %w", code, err)
	}
	return n > 0, nil
}

// Update runs mutate inside a WATCH/MULTI transaction: the read and the
// whole-record write-back only commit if no other writer touched the
// key in between. On conflict the transaction is retried with a fresh
// read, so concurrent joins or turn advances never lose updates.
func (s *RedisStore) Update(ctx context.Context, code string, mutate func(*session.Session) error) (*session.Session, error) {
	key := sessionKey(code)
	var updated *session.Session

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return fmt.Errorf("decode session %s: %w", code, err)
		}
		if err := mutate(&sess); err != nil {
			return err
		}
		out, err := json.Marshal(&sess)
		if err != nil {
			return fmt.Errorf("marshal session %s: %w", code, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err == nil {
			updated = &sess
		}
		return err
	}

	for i := 0; i < casAttempts; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // lost the race, re-read and retry
		}
		return nil, err
	}
	return nil, fmt.Errorf("update session %s: too much contention", code)
}

// Delete removes the session record. Unknown codes are a no-op.
func (s *RedisStore) Delete(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, sessionKey(code)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", code, err)
	}
	return nil
}
