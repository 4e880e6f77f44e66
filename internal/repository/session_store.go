package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Quagsire/internal/model"
	goredis "github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when no session record exists for the key.
var ErrSessionNotFound = errors.New("session not found")

// sessionTTL bounds how long an abandoned session document lingers in redis.
// Inactivity expiry (15 minutes) is enforced by the engine; this is only
// storage hygiene.
const sessionTTL = 24 * time.Hour

// SessionStore persists quiz sessions as JSON documents keyed by
// (user, session_id), with a per-user pointer to the active session.
type SessionStore interface {
	Create(ctx context.Context, session *model.QuizSession) error
	Get(ctx context.Context, userID, sessionID string) (*model.QuizSession, error)
	GetActive(ctx context.Context, userID string) (*model.QuizSession, error)
	Update(ctx context.Context, session *model.QuizSession) error
}

type sessionStore struct {
	rdb *goredis.Client
}

func NewSessionStore(rdb *goredis.Client) SessionStore {
	return &sessionStore{rdb: rdb}
}

func sessionKey(userID, sessionID string) string {
	return fmt.Sprintf("quiz:session:%s:%s", userID, sessionID)
}

func activeKey(userID string) string {
	return fmt.Sprintf("quiz:active:%s", userID)
}

func (s *sessionStore) Create(ctx context.Context, session *model.QuizSession) error {
	return s.write(ctx, session)
}

func (s *sessionStore) Get(ctx context.Context, userID, sessionID string) (*model.QuizSession, error) {
	raw, err := s.rdb.Get(ctx, sessionKey(userID, sessionID)).Result()
	if err == goredis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session read: %w", err)
	}
	var session model.QuizSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &session, nil
}

// GetActive follows the per-user active pointer. The pointer is rewritten on
// every update of an active session, so it always names the most recently
// active one.
func (s *sessionStore) GetActive(ctx context.Context, userID string) (*model.QuizSession, error) {
	sessionID, err := s.rdb.Get(ctx, activeKey(userID)).Result()
	if err == goredis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("active pointer read: %w", err)
	}
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusActive {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionStore) Update(ctx context.Context, session *model.QuizSession) error {
	return s.write(ctx, session)
}

func (s *sessionStore) write(ctx context.Context, session *model.QuizSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(session.UserID, session.SessionID), raw, sessionTTL)
	if session.Status == model.SessionStatusActive {
		pipe.Set(ctx, activeKey(session.UserID), session.SessionID, sessionTTL)
	} else {
		// A completed or expired session must stop resolving as active.
		pipe.Del(ctx, activeKey(session.UserID))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	return nil
}
