package haloinfinite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sosodev/duration"
	"golang.org/x/time/rate"
)

const (
	spartanHeader   = "x-343-authorization-spartan"
	clearanceHeader = "343-clearance"
)

// APIClient is a Halo Infinite web API client that implements the Client interface.
type APIClient struct {
	httpClient     *http.Client
	limiter        *rate.Limiter
	spartanToken   string
	clearanceToken string
	StatsURL       string
	ProfileURL     string
	CMSURL         string
}

// NewClient creates a new API client authorised with the given tokens.
// requestsPerSecond <= 0 disables rate limiting.
func NewClient(spartanToken, clearanceToken string, requestsPerSecond float64) *APIClient {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &APIClient{
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		limiter:        rate.NewLimiter(limit, 1),
		spartanToken:   spartanToken,
		clearanceToken: clearanceToken,
		StatsURL:       "https://halostats.svc.halowaypoint.com",
		ProfileURL:     "https://profile.svc.halowaypoint.com",
		CMSURL:         "https://gamecms-hacs.svc.halowaypoint.com",
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// GetMatchStats fetches the per-player stats of a match.
func (c *APIClient) GetMatchStats(ctx context.Context, matchID string) (MatchStats, error) {
	var resp matchStatsResponse
	endpoint := fmt.Sprintf("%s/hi/matches/%s/stats", c.StatsURL, url.PathEscape(matchID))
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return MatchStats{}, fmt.Errorf("error fetching match stats: %w", err)
	}

	match := MatchStats{MatchID: resp.MatchID}
	if match.MatchID == "" {
		match.MatchID = matchID
	}
	for _, p := range resp.Players {
		player := PlayerStats{
			PlayerID:   p.PlayerID,
			LastTeamID: p.LastTeamID,
			Outcome:    Outcome(p.Outcome),
		}
		if p.ParticipationInfo.TimePlayed != "" {
			d, err := duration.Parse(p.ParticipationInfo.TimePlayed)
			if err != nil {
				return MatchStats{}, fmt.Errorf("failed to parse time played %q for %s: %w", p.ParticipationInfo.TimePlayed, p.PlayerID, err)
			}
			player.TimePlayed = d.ToTimeDuration()
		}
		// Stats for the team the player finished on come first.
		if len(p.PlayerTeamStats) > 0 {
			core := p.PlayerTeamStats[0].Stats.CoreStats
			player.Core = CoreStats{
				Score:            core.Score,
				Kills:            core.Kills,
				Deaths:           core.Deaths,
				Assists:          core.Assists,
				KDA:              core.KDA,
				Betrayals:        core.Betrayals,
				PowerWeaponKills: core.PowerWeaponKills,
				DamageDealt:      core.DamageDealt,
				DamageTaken:      core.DamageTaken,
			}
			for _, m := range core.Medals {
				player.Core.Medals = append(player.Core.Medals, AwardCount{NameID: m.NameID, Count: m.Count})
			}
		} else {
			log.Warn("Player has no team stats", "matchID", matchID, "player", p.PlayerID)
		}
		match.Players = append(match.Players, player)
	}
	log.Info("Fetched match stats", "matchID", match.MatchID, "players", len(match.Players))
	return match, nil
}

// GetUsersByID looks up the profiles of the given unwrapped XUIDs in a single request.
func (c *APIClient) GetUsersByID(ctx context.Context, xuids []string) ([]UserProfile, error) {
	if len(xuids) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("xuids", strings.Join(xuids, ","))
	endpoint := fmt.Sprintf("%s/users?%s", c.ProfileURL, q.Encode())

	var resp []userResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("error fetching user profiles: %w", err)
	}

	profiles := make([]UserProfile, 0, len(resp))
	for _, u := range resp {
		profiles = append(profiles, UserProfile{XUID: u.XUID, Gamertag: u.Gamertag})
	}
	log.Debug("Fetched user profiles", "requested", len(xuids), "returned", len(profiles))
	return profiles, nil
}

// GetMedalMetadata fetches the medal name table from the content service.
func (c *APIClient) GetMedalMetadata(ctx context.Context) ([]Medal, error) {
	var resp medalMetadataResponse
	endpoint := c.CMSURL + "/hi/Waypoint/file/medals/metadata.json"
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("error fetching medal metadata: %w", err)
	}
	medals := make([]Medal, 0, len(resp.Medals))
	for _, m := range resp.Medals {
		medals = append(medals, Medal{NameID: m.NameID, Name: m.Name.Value})
	}
	return medals, nil
}

func (c *APIClient) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "HaloLeagueExport/1.0")
	req.Header.Set(spartanHeader, c.spartanToken)
	if c.clearanceToken != "" {
		req.Header.Set(clearanceHeader, c.clearanceToken)
	}

	log.Debug("Requesting Halo Infinite API", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Halo Infinite API", "status", resp.StatusCode, "body", string(body), "url", endpoint)
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
