// Package resources provides typed accessors over the REST backend, one
// per resource, with response caching keyed by resource plus params and
// cache invalidation on every successful mutation.
package resources

import (
	"context"
	"errors"
	"sync"

	"github.com/barberpro/barberpro-client/internal/api"
	"github.com/barberpro/barberpro-client/internal/cache"
	"github.com/barberpro/barberpro-client/pkg/logging"
)

var (
	// ErrMissingParam means a required list parameter is absent; the
	// accessor makes no network call.
	ErrMissingParam = errors.New("resources: required parameter missing")
	// ErrUnauthenticated means an auth-gated accessor was called without
	// a session; no network call is made.
	ErrUnauthenticated = errors.New("resources: not authenticated")
)

// AuthState is the slice of the session store the accessors need.
type AuthState interface {
	IsAuthenticated() bool
}

// Resources bundles every accessor over one shared cache.
type Resources struct {
	Servicios *Servicios
	Barberos  *Barberos
	Barberias *Barberias
	Citas     *Citas
	Dashboard *Dashboard
}

// New wires the accessors to the gateway client and session state.
func New(client *api.Client, auth AuthState, logger *logging.Logger) *Resources {
	if logger == nil {
		logger = logging.Default()
	}
	d := &deps{
		api:    client,
		auth:   auth,
		cache:  cache.New(),
		logger: logger,
	}
	return &Resources{
		Servicios: &Servicios{d: d},
		Barberos:  &Barberos{d: d},
		Barberias: &Barberias{d: d},
		Citas:     &Citas{d: d},
		Dashboard: &Dashboard{d: d},
	}
}

type deps struct {
	api    *api.Client
	auth   AuthState
	cache  *cache.Store
	logger *logging.Logger
}

func (d *deps) requireAuth() error {
	if d.auth == nil || !d.auth.IsAuthenticated() {
		return ErrUnauthenticated
	}
	return nil
}

// fetchCached serves key from cache or fetches and installs the result.
// The generation token from Begin makes a completion after invalidation
// a no-op; the caller still gets the fresh data it fetched.
func fetchCached[T any](ctx context.Context, d *deps, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := d.cache.Get(key); ok {
		return v.(T), nil
	}
	gen := d.cache.Begin(key)
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if !d.cache.Complete(key, gen, v) {
		d.logger.Debug("stale fetch discarded", "key", key)
	}
	return v, nil
}

// MutationState tracks one mutation's in-flight flag and last error so a
// front end can disable exactly the control tied to that action.
// Mutations are not coalesced here; preventing a duplicate submission is
// the caller's job, using Pending.
type MutationState struct {
	mu      sync.Mutex
	pending bool
	lastErr error
}

func (m *MutationState) run(fn func() error) error {
	m.mu.Lock()
	m.pending = true
	m.mu.Unlock()

	err := fn()

	m.mu.Lock()
	m.pending = false
	m.lastErr = err
	m.mu.Unlock()
	return err
}

// Pending reports whether the mutation is in flight.
func (m *MutationState) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Err returns the error of the last completed run, nil after a success.
func (m *MutationState) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}
