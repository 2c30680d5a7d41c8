package notifier

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	SendExportSummary(summary ExportSummary, dryRun bool) error
}

// ExportSummary describes a finished match export.
type ExportSummary struct {
	ExportID  string
	MatchID   string
	Winners   []PlayerLine
	Losers    []PlayerLine
	Others    []PlayerLine
	Anomalies int
}

// PlayerLine is one player's headline stats in a summary.
type PlayerLine struct {
	Gamertag string
	DraftPos string
	Kills    int
	Deaths   int
	Goals    int
}
