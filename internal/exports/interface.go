package exports

// ExportStore defines the interface for persisting export history.
type ExportStore interface {
	SaveExport(export *Export) error
	GetExport(id string) (*Export, error)
	GetLatestExport(matchID string) (*Export, error)
	ListExports(limit int) ([]Export, error)
}
