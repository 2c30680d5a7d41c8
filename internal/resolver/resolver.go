// Package resolver maps opaque player ids to gamertags.
package resolver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
)

// Resolver resolves a batch of player ids to display names. The returned map is
// keyed by unwrapped XUID; ids the service does not know are absent.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]string, error)
}

// ResolutionError means the batched lookup itself failed.
type ResolutionError struct {
	Requested int
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %d player ids: %v", e.Requested, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// APIResolver resolves ids through the profile service.
type APIResolver struct {
	client haloinfinite.Client
}

// New creates a resolver backed by client.
func New(client haloinfinite.Client) *APIResolver {
	return &APIResolver{client: client}
}

var _ Resolver = (*APIResolver)(nil)

// Resolve unwraps and dedupes ids, then issues a single lookup.
func (r *APIResolver) Resolve(ctx context.Context, ids []string) (map[string]string, error) {
	xuids := Normalize(ids)
	gamertags := make(map[string]string, len(xuids))
	if len(xuids) == 0 {
		return gamertags, nil
	}

	log.Debug("Resolving gamertags", "xuids", xuids)
	profiles, err := r.client.GetUsersByID(ctx, xuids)
	if err != nil {
		return nil, &ResolutionError{Requested: len(xuids), Err: err}
	}

	for _, p := range profiles {
		gamertags[haloinfinite.UnwrapXUID(p.XUID)] = p.Gamertag
	}
	if missing := len(xuids) - len(gamertags); missing > 0 {
		log.Warn("Some player ids did not resolve to a gamertag", "missing", missing, "requested", len(xuids))
	}
	return gamertags, nil
}

// Normalize unwraps ids and drops duplicates and blanks, keeping first-seen order.
func Normalize(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		xuid := haloinfinite.UnwrapXUID(id)
		if xuid == "" {
			continue
		}
		if _, ok := seen[xuid]; ok {
			continue
		}
		seen[xuid] = struct{}{}
		out = append(out, xuid)
	}
	return out
}
