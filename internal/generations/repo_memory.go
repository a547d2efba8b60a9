package generations

import (
	"context"
	"sync"
)

// MemoryRepo keeps run records in memory for the lifetime of the process.
type MemoryRepo struct {
	mu      sync.RWMutex
	records []RunRecord
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Append(ctx context.Context, record RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RunRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}
