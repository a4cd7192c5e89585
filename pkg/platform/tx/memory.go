package tx

import (
	"context"
	"sync"
)

// InMemoryRunner serializes units of work behind one mutex. It gives tests
// the same mutual exclusion the database runner gets from row locks, without
// rollback semantics: callers must validate before mutating.
type InMemoryRunner struct {
	mu sync.Mutex
}

func NewInMemoryRunner() *InMemoryRunner {
	return &InMemoryRunner{}
}

func (r *InMemoryRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx)
}
