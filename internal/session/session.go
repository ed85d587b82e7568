// Package session owns the auth token and user profile. It is the single
// source of truth for identity: the API gateway reads the current token
// from here at call time, and the navigation guard reads the role.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/barberpro/barberpro-client/internal/model"
	"github.com/barberpro/barberpro-client/internal/statestore"
	"github.com/barberpro/barberpro-client/pkg/logging"
)

var (
	// ErrEmptyToken rejects a login with a blank or whitespace token.
	ErrEmptyToken = errors.New("session: empty token")
	// ErrNilUser rejects a login without a user profile.
	ErrNilUser = errors.New("session: nil user")
)

// Session is an immutable snapshot of the identity state.
// IsAuthenticated is true iff Token is non-empty after trimming and User
// is non-nil.
type Session struct {
	Token           string      `json:"token"`
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// Role returns the session role, RoleUnknown when anonymous.
func (s Session) Role() model.RoleName {
	if !s.IsAuthenticated {
		return model.RoleUnknown
	}
	return s.User.RoleName()
}

// Store holds the session and persists it under a fixed key so identity
// survives a process restart.
type Store struct {
	mu      sync.RWMutex
	current Session

	persist statestore.Store
	logger  *logging.Logger
}

// Open creates a store and rehydrates any persisted session. A missing or
// corrupt blob fails open to anonymous, never to a stale session.
func Open(ctx context.Context, persist statestore.Store, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Store{persist: persist, logger: logger}

	data, err := persist.Get(ctx, statestore.KeySession)
	if errors.Is(err, statestore.ErrNotFound) {
		return s
	}
	if err != nil {
		logger.Warn("session rehydrate failed, starting anonymous", "error", err)
		return s
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		logger.Warn("session blob is not valid JSON, starting anonymous", "error", err)
		return s
	}
	// The invariant is recomputed, not trusted from disk.
	restored.Token = strings.TrimSpace(restored.Token)
	restored.IsAuthenticated = restored.Token != "" && restored.User != nil
	if !restored.IsAuthenticated {
		return s
	}
	s.current = restored
	logger.Debug("session rehydrated", "user_id", restored.User.ID, "role", restored.User.RoleName())
	return s
}

// Login sets the session and persists it. An empty token or nil user is
// an explicit error and leaves the state unchanged.
func (s *Store) Login(ctx context.Context, token string, user *model.User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if user == nil {
		return ErrNilUser
	}

	s.mu.Lock()
	s.current = Session{Token: token, User: user, IsAuthenticated: true}
	snapshot := s.current
	s.mu.Unlock()

	if err := s.save(ctx, snapshot); err != nil {
		return fmt.Errorf("session: persist login: %w", err)
	}
	return nil
}

// Logout clears the session and its durable copy.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	if err := s.persist.Delete(ctx, statestore.KeySession); err != nil {
		return fmt.Errorf("session: clear persisted session: %w", err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, snapshot Session) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.persist.Set(ctx, statestore.KeySession, data)
}

// Session returns the current snapshot.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the current bearer token, empty when anonymous. The API
// gateway calls this on every request so a login mid-session takes
// effect immediately.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// IsAuthenticated reports whether a user is logged in.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsAuthenticated
}

// Role returns the current user's role, RoleUnknown when anonymous.
func (s *Store) Role() model.RoleName {
	return s.Session().Role()
}

// User returns the current user profile, nil when anonymous.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User
}

// TokenExpiry inspects the bearer token's exp claim without verifying the
// signature; the token stays opaque for every other purpose. Opaque or
// claim-less tokens yield the zero time.
func (s *Store) TokenExpiry() time.Time {
	token := s.Token()
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
