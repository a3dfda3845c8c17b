package store

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	values  []string
	failure error
	lock    sync.Mutex
}

func NewMemoryStore(values ...string) *MemoryStore {
	return &MemoryStore{
		values: slices.Clone(values),
	}
}

// SetFailure makes every subsequent operation return err, or restores normal
// operation when err is nil.
func (s *MemoryStore) SetFailure(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.failure = err
}

func (s *MemoryStore) Push(ctx context.Context, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return err
	}

	s.push(value)
	return nil
}

func (s *MemoryStore) Range(ctx context.Context) ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return nil, err
	}

	return slices.Clone(s.values), nil
}

func (s *MemoryStore) PushAndRange(ctx context.Context, value string) ([]string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.check(ctx); err != nil {
		return nil, err
	}

	s.push(value)
	return slices.Clone(s.values), nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.check(ctx)
}

func (s *MemoryStore) Close() error {
	return nil
}

// Private

func (s *MemoryStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.failure
}

func (s *MemoryStore) push(value string) {
	s.values = slices.Insert(s.values, 0, value)
}
