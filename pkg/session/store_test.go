package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeeai/appshell/pkg/catalog"
	"github.com/omeeai/appshell/pkg/session"
)

type stubClient struct {
	userCalls   atomic.Int32
	logoutCalls atomic.Int32

	userDelay time.Duration
	user      *session.User
	userErr   error
	logoutErr error
}

func (c *stubClient) CurrentUser(ctx context.Context) (*session.User, error) {
	c.userCalls.Add(1)
	if c.userDelay > 0 {
		select {
		case <-time.After(c.userDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return c.user, c.userErr
}

func (c *stubClient) Logout(ctx context.Context) error {
	c.logoutCalls.Add(1)
	return c.logoutErr
}

type stubSource struct {
	calls atomic.Int32

	catalog *catalog.PriceCatalog
	err     error
}

func (s *stubSource) Load(ctx context.Context) (*catalog.PriceCatalog, error) {
	s.calls.Add(1)
	return s.catalog, s.err
}

func testUser() *session.User {
	return &session.User{
		ID:        uuid.New(),
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func testPriceCatalog() *catalog.PriceCatalog {
	return &catalog.PriceCatalog{Plans: []catalog.Plan{{
		Name:   "Basic",
		Prices: []catalog.PricePoint{{Duration: catalog.DurationMonthly, Amount: 10}},
	}}}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("panics on nil collaborators", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { session.New(nil, &stubSource{}) })
		assert.Panics(t, func() { session.New(&stubClient{}, nil) })
	})

	t.Run("starts in the loading state", func(t *testing.T) {
		t.Parallel()

		store := session.New(&stubClient{}, &stubSource{})
		snap := store.Snapshot()
		assert.True(t, snap.Loading)
		assert.False(t, snap.Authenticated())
		assert.Nil(t, snap.Catalog)
	})
}

func TestStore_Bootstrap(t *testing.T) {
	t.Parallel()

	t.Run("resolves the user and loads the catalog", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{user: testUser()}
		source := &stubSource{catalog: testPriceCatalog()}
		store := session.New(client, source)

		require.NoError(t, store.Bootstrap(context.Background()))

		snap := store.Snapshot()
		assert.False(t, snap.Loading)
		assert.True(t, snap.Authenticated())
		assert.Equal(t, "jane@example.com", snap.User.Email)
		require.NotNil(t, snap.Catalog)
		assert.Equal(t, int32(1), client.userCalls.Load())
		assert.Equal(t, int32(1), source.calls.Load())
	})

	t.Run("failed session fetch resolves anonymous without a catalog fetch", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{userErr: session.ErrUnauthenticated}
		source := &stubSource{catalog: testPriceCatalog()}
		store := session.New(client, source)

		err := store.Bootstrap(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrSessionFetch)
		assert.ErrorIs(t, err, session.ErrUnauthenticated)

		snap := store.Snapshot()
		assert.False(t, snap.Loading)
		assert.False(t, snap.Authenticated())
		assert.Equal(t, int32(0), source.calls.Load(), "catalog must not be fetched for a failed session")
	})

	t.Run("catalog fetch failure does not fail the bootstrap", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{user: testUser()}
		source := &stubSource{err: errors.New("backend down")}
		store := session.New(client, source)

		require.NoError(t, store.Bootstrap(context.Background()))

		snap := store.Snapshot()
		assert.True(t, snap.Authenticated())
		assert.Nil(t, snap.Catalog, "catalog stays absent, dependent views keep rendering a loading state")
	})

	t.Run("concurrent calls coalesce into a single run", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{user: testUser(), userDelay: 50 * time.Millisecond}
		source := &stubSource{catalog: testPriceCatalog()}
		store := session.New(client, source)

		const callers = 8
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Bootstrap(context.Background())
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoError(t, err, "caller %d", i)
		}
		assert.Equal(t, int32(1), client.userCalls.Load(), "exactly one session fetch per run")
		assert.Equal(t, int32(1), source.calls.Load(), "at most one catalog fetch per run")
	})

	t.Run("joiners share the failure of the in-flight run", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{userErr: errors.New("boom"), userDelay: 50 * time.Millisecond}
		store := session.New(client, &stubSource{})

		const callers = 4
		errs := make([]error, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Bootstrap(context.Background())
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.ErrorIs(t, err, session.ErrSessionFetch, "caller %d", i)
		}
		assert.Equal(t, int32(1), client.userCalls.Load())
	})

	t.Run("joining with a cancelled context returns the context error", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{user: testUser(), userDelay: 200 * time.Millisecond}
		store := session.New(client, &stubSource{catalog: testPriceCatalog()})

		started := make(chan struct{})
		go func() {
			close(started)
			_ = store.Bootstrap(context.Background())
		}()
		<-started
		time.Sleep(20 * time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := store.Bootstrap(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStore_LoginLogout(t *testing.T) {
	t.Parallel()

	t.Run("login records the user", func(t *testing.T) {
		t.Parallel()

		store := session.New(&stubClient{}, &stubSource{})
		user := testUser()

		store.Login(user)

		snap := store.Snapshot()
		require.True(t, snap.Authenticated())
		assert.Equal(t, user.ID, snap.User.ID)
	})

	t.Run("logout clears the user", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{}
		store := session.New(client, &stubSource{})
		store.Login(testUser())

		require.NoError(t, store.Logout(context.Background()))
		assert.False(t, store.Snapshot().Authenticated())
		assert.Equal(t, int32(1), client.logoutCalls.Load())
	})

	t.Run("logout clears the user even when the server call fails", func(t *testing.T) {
		t.Parallel()

		client := &stubClient{logoutErr: errors.New("backend down")}
		store := session.New(client, &stubSource{})
		store.Login(testUser())

		err := store.Logout(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrLogout)
		assert.False(t, store.Snapshot().Authenticated())
	})
}

func TestStore_Watch(t *testing.T) {
	t.Parallel()

	t.Run("delivers a snapshot after a mutation", func(t *testing.T) {
		t.Parallel()

		store := session.New(&stubClient{}, &stubSource{})
		ch := store.Watch()

		store.Login(testUser())

		select {
		case snap := <-ch:
			assert.True(t, snap.Authenticated())
		case <-time.After(time.Second):
			t.Fatal("no snapshot delivered")
		}
	})

	t.Run("latest snapshot wins for a slow consumer", func(t *testing.T) {
		t.Parallel()

		store := session.New(&stubClient{}, &stubSource{})
		ch := store.Watch()

		store.Login(testUser())
		store.Login(nil) // second mutation replaces the undelivered snapshot

		select {
		case snap := <-ch:
			assert.False(t, snap.Authenticated())
		case <-time.After(time.Second):
			t.Fatal("no snapshot delivered")
		}
	})

	t.Run("unwatch stops delivery without closing the channel", func(t *testing.T) {
		t.Parallel()

		store := session.New(&stubClient{}, &stubSource{})
		ch := store.Watch()
		store.Unwatch(ch)

		store.Login(testUser())

		select {
		case _, ok := <-ch:
			assert.True(t, ok, "channel must not be closed")
			t.Fatal("snapshot delivered after unwatch")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestUser_FullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane Doe", (&session.User{FirstName: "Jane", LastName: "Doe"}).FullName())
	assert.Equal(t, "Jane", (&session.User{FirstName: "Jane"}).FullName())
	assert.Equal(t, "", (&session.User{}).FullName())
}
