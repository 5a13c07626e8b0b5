package delegate

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/km-arc/go-ioc/framework/container"
)

const (
	DefaultExpiration      = gocache.NoExpiration
	DefaultCleanupInterval = 10 * time.Minute
)

// Store is an expiring delegate registry backed by go-cache. Stored
// container.Factory values are invoked with the owning container on every
// Get, so they can depend on the parent's definitions.
//
//	store := delegate.NewStore(delegate.DefaultExpiration, delegate.DefaultCleanupInterval)
//	store.Set("session", sess, 30*time.Minute)
//	c.Delegate(store)
type Store struct {
	container.Aware
	cache *gocache.Cache
}

// NewStore creates an empty store.
func NewStore(defaultExpiration, cleanupInterval time.Duration) *Store {
	return &Store{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// Set stores value under id for ttl. Use gocache.DefaultExpiration (0) for
// the store default and gocache.NoExpiration (-1) to keep it forever.
func (s *Store) Set(id string, value any, ttl time.Duration) {
	s.cache.Set(id, value, ttl)
}

// Has reports whether an unexpired value exists for id.
func (s *Store) Has(id string) bool {
	_, ok := s.cache.Get(id)
	return ok
}

// Get returns the value for id, invoking it first if it is a Factory.
func (s *Store) Get(id string) (any, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, &container.NotFoundError{ID: id, Reason: "alias has expired or was never stored"}
	}
	if f, ok := v.(container.Factory); ok {
		return f(s.Container())
	}
	return v, nil
}

// Delete removes ids from the store.
func (s *Store) Delete(ids ...string) {
	for _, id := range ids {
		s.cache.Delete(id)
	}
}

// Flush removes everything.
func (s *Store) Flush() {
	s.cache.Flush()
}

// Len returns the number of stored items, including expired ones not yet
// cleaned up.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
