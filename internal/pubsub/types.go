package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchExported EventType = "match-exported"
)

// MatchExported is published after an export has been stored.
type MatchExported struct {
	ExportID string   `msgpack:"export_id"`
	MatchID  string   `msgpack:"match_id"`
	RowCount int      `msgpack:"row_count"`
	Winners  []string `msgpack:"winners"`
	Losers   []string `msgpack:"losers"`
}
