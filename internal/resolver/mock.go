package resolver

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Resolver interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	ResolveFunc  func(ids []string) (map[string]string, error)
	ResolveCalls [][]string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Resolve(ctx context.Context, ids []string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveCalls = append(m.ResolveCalls, append([]string(nil), ids...))
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ids)
	}
	return map[string]string{}, nil
}
