package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent records in memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	max     int
}

// NewMemoryStore keeps at most max records; max <= 0 keeps everything.
func NewMemoryStore(max int) *MemoryStore {
	return &MemoryStore{max: max}
}

func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if s.max > 0 && len(s.records) > s.max {
		s.records = append([]Record(nil), s.records[len(s.records)-s.max:]...)
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for i := len(s.records) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if q.Match(s.records[i]) {
			out = append(out, s.records[i])
			if q.Limit > 0 && len(out) == q.Limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
