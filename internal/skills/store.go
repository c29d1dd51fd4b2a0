package skills

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Store caches the skill dataset for the lifetime of the process.
//
// The first Load reads the backing Source; every later Load returns the
// cached result. Concurrent first loads collapse into a single read. The
// cached slice is shared and must be treated as read-only by callers.
type Store struct {
	source Source
	group  singleflight.Group
	cached atomic.Pointer[[]Skill]
}

// NewStore creates a Store over the given source. The source is not read
// until the first Load.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Load returns the cached skill list, reading it from the source on first
// use. A failed load is not cached, so a later call retries the source.
func (s *Store) Load(ctx context.Context) ([]Skill, error) {
	if cached := s.cached.Load(); cached != nil {
		return *cached, nil
	}

	result, err, _ := s.group.Do("load", func() (any, error) {
		if cached := s.cached.Load(); cached != nil {
			return *cached, nil
		}
		list, err := s.source.List(ctx)
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []Skill{}
		}
		s.cached.Store(&list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]Skill), nil
}
