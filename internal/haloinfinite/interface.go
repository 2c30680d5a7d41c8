package haloinfinite

import "context"

// Client defines the interface for interacting with the Halo Infinite web API.
// This allows for mock implementations to be used in tests.
type Client interface {
	GetMatchStats(ctx context.Context, matchID string) (MatchStats, error)
	GetUsersByID(ctx context.Context, xuids []string) ([]UserProfile, error)
	GetMedalMetadata(ctx context.Context) ([]Medal, error)
}
