package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/omeeai/appshell/pkg/catalog"
	"github.com/omeeai/appshell/pkg/logger"
)

// Client fetches and terminates the backend session.
type Client interface {
	// CurrentUser returns the user attached to the current backend session,
	// or ErrUnauthenticated when there is none.
	CurrentUser(ctx context.Context) (*User, error)

	// Logout terminates the backend session.
	Logout(ctx context.Context) error
}

// CatalogSource loads the price catalog.
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.PriceCatalog, error)
}

// Snapshot is an immutable view of the store's state at one point in time.
// The catalog pointer is shared; consumers must not mutate it.
type Snapshot struct {
	User    *User
	Loading bool
	Catalog *catalog.PriceCatalog
}

// Authenticated reports whether a user is present in the snapshot.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Store holds the current session: the user, the loading flag and the price
// catalog. It is the single mutable shared resource of the shell; all
// mutation happens through Bootstrap, LoadCatalog, Login and Logout.
type Store struct {
	client Client
	source CatalogSource
	log    *slog.Logger

	mu       sync.RWMutex
	user     *User
	loading  bool
	catalog  *catalog.PriceCatalog
	inflight chan struct{} // non-nil while a bootstrap run is in progress
	bootErr  error         // outcome of the most recent bootstrap run
	watchers map[chan Snapshot]struct{}
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a session store. Panics if a collaborator is nil to fail fast
// on misconfiguration.
func New(client Client, source CatalogSource, opts ...Option) *Store {
	if client == nil {
		panic("session: Client is required")
	}
	if source == nil {
		panic("session: CatalogSource is required")
	}

	s := &Store{
		client:   client,
		source:   source,
		log:      logger.Noop(),
		loading:  true, // nothing is known until the first bootstrap resolves
		watchers: make(map[chan Snapshot]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns the current state of the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{User: s.user, Loading: s.loading, Catalog: s.catalog}
}

// Bootstrap establishes the session: it fetches the current user and, on
// success, loads the price catalog. Concurrent calls are coalesced into a
// single run whose outcome every caller shares; exactly one session fetch
// and at most one catalog fetch happen per run.
//
// A failed session fetch clears the user and resolves the bootstrap; it is
// not retried automatically.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if done := s.inflight; done != nil {
		s.mu.Unlock()
		return s.join(ctx, done)
	}

	done := make(chan struct{})
	s.inflight = done
	s.loading = true
	s.mu.Unlock()
	s.notify()

	err := s.run(ctx)

	s.mu.Lock()
	s.loading = false
	s.inflight = nil
	s.bootErr = err
	s.mu.Unlock()
	close(done)
	s.notify()

	return err
}

// join waits for an in-flight bootstrap and returns its outcome.
func (s *Store) join(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.bootErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) run(ctx context.Context) error {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.setUser(nil)
		s.log.InfoContext(ctx, "session bootstrap resolved anonymous", slog.Any("error", err))
		return errors.Join(ErrSessionFetch, err)
	}

	s.setUser(user)
	s.log.DebugContext(ctx, "session bootstrap resolved user", slog.String("user_id", user.ID.String()))

	// Catalog absence is a loading state for dependent views, not an error;
	// LoadCatalog already logged the failure.
	_ = s.LoadCatalog(ctx)

	return nil
}

// LoadCatalog fetches the price catalog. Failure leaves the catalog absent
// and is surfaced only through the diagnostic log and the returned error;
// it never becomes a user-facing error state.
func (s *Store) LoadCatalog(ctx context.Context) error {
	c, err := s.source.Load(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "price catalog fetch failed", slog.Any("error", err))
		return errors.Join(ErrCatalogFetch, err)
	}

	if err := c.Validate(); err != nil {
		s.log.ErrorContext(ctx, "price catalog rejected", slog.Any("error", err))
		return errors.Join(ErrCatalogFetch, err)
	}

	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
	s.notify()

	return nil
}

// Login records a successfully authenticated user.
func (s *Store) Login(user *User) {
	s.setUser(user)
}

// Logout terminates the backend session and clears the local user. The local
// state clears even when the server call fails; the error is still returned
// so the caller can decide whether to surface it.
func (s *Store) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)

	s.setUser(nil)

	if err != nil {
		s.log.WarnContext(ctx, "server-side logout failed", slog.Any("error", err))
		return errors.Join(ErrLogout, err)
	}
	return nil
}

// Watch returns a channel receiving a snapshot after every state mutation.
// Delivery is latest-wins and never blocks mutators; a slow consumer only
// misses intermediate states. Release the channel with Unwatch.
func (s *Store) Watch() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	s.watchers[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

// Unwatch removes a watcher channel registered via Watch. The channel is not
// closed; it simply stops receiving snapshots.
func (s *Store) Unwatch(ch <-chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for w := range s.watchers {
		if w == ch {
			delete(s.watchers, w)
			return
		}
	}
}

func (s *Store) setUser(user *User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := Snapshot{User: s.user, Loading: s.loading, Catalog: s.catalog}
	watchers := make([]chan Snapshot, 0, len(s.watchers))
	for ch := range s.watchers {
		watchers = append(watchers, ch)
	}
	s.mu.RUnlock()

	for _, ch := range watchers {
		select {
		case ch <- snap:
		default:
			// Replace the stale buffered snapshot with the current one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
