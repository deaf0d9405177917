package jobs

import (
	"context"
	"sync"
)

// Store keeps job records. Get returns a copy; Update applies fn to the
// stored record atomically.
type Store interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	Update(ctx context.Context, id string, fn func(*Job)) error
	Len(ctx context.Context) (int, error)
}

// MemoryStore is a bounded in-process job table. Admitting into a full table
// evicts the oldest terminal job; running jobs are never evicted.
type MemoryStore struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	capacity int
}

// NewMemoryStore creates a MemoryStore. A capacity of zero or less means
// unbounded.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		jobs:     make(map[string]*Job),
		capacity: capacity,
	}
}

func (s *MemoryStore) Create(ctx context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; ok {
		return errDuplicateID
	}
	if s.capacity > 0 && len(s.jobs) >= s.capacity {
		if !s.evictOldestTerminal() {
			return ErrAtCapacity
		}
	}
	s.jobs[job.ID] = job.clone()
	return nil
}

func (s *MemoryStore) evictOldestTerminal() bool {
	var victim *Job
	for _, j := range s.jobs {
		if !j.Status.Terminal() || j.FinishedAt == nil {
			continue
		}
		if victim == nil || j.FinishedAt.Before(*victim.FinishedAt) {
			victim = j
		}
	}
	if victim == nil {
		return false
	}
	delete(s.jobs, victim.ID)
	return true
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return j.clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}
	fn(j)
	return nil
}

func (s *MemoryStore) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs), nil
}
