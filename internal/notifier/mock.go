package notifier

import "sync"

// SendExportSummaryCall holds the arguments for a call to SendExportSummary.
type SendExportSummaryCall struct {
	Summary ExportSummary
	DryRun  bool
}

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendExportSummaryFunc  func(summary ExportSummary, dryRun bool) error
	SendExportSummaryCalls []SendExportSummaryCall
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendExportSummaryCalls = nil
}

func (m *Mock) SendExportSummary(summary ExportSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendExportSummaryCalls = append(m.SendExportSummaryCalls, SendExportSummaryCall{Summary: summary, DryRun: dryRun})
	if m.SendExportSummaryFunc != nil {
		return m.SendExportSummaryFunc(summary, dryRun)
	}
	return nil
}
