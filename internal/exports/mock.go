package exports

import "sync"

// Mock is a mock implementation of the ExportStore interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SaveExportFunc      func(export *Export) error
	GetExportFunc       func(id string) (*Export, error)
	GetLatestExportFunc func(matchID string) (*Export, error)
	ListExportsFunc     func(limit int) ([]Export, error)

	SaveExportCalls []*Export
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SaveExport(export *Export) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveExportCalls = append(m.SaveExportCalls, export)
	if m.SaveExportFunc != nil {
		return m.SaveExportFunc(export)
	}
	return nil
}

func (m *Mock) GetExport(id string) (*Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetExportFunc != nil {
		return m.GetExportFunc(id)
	}
	return nil, ErrNotFound
}

func (m *Mock) GetLatestExport(matchID string) (*Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLatestExportFunc != nil {
		return m.GetLatestExportFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *Mock) ListExports(limit int) ([]Export, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListExportsFunc != nil {
		return m.ListExportsFunc(limit)
	}
	return []Export{}, nil
}
