// Package session holds the shell's single mutable shared resource: the
// current user, the bootstrap loading flag and the fetched price catalog.
//
// A Store is an explicitly owned object passed by reference to the route
// guard and views; there are no package-level singletons. State is read
// through Snapshot (or observed through Watch) and mutated only through the
// defined entry points:
//
//	store := session.New(client, source, session.WithLogger(log))
//	go store.Bootstrap(ctx) // exactly once per application load
//
//	snap := store.Snapshot()
//	if snap.Loading { /* suspend rendering */ }
//
// Bootstrap coalesces concurrent callers into a single run: one session
// fetch, at most one catalog fetch, one shared outcome. A failed session
// fetch leaves the store anonymous; a failed catalog fetch leaves the
// catalog absent and is only logged.
package session
