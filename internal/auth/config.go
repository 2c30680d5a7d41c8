package auth

import "github.com/mauv0809/halo-league-export/internal/config"

// FromConfig prefers tokens from the environment and falls back to refreshing
// them through Azure when only a refresh token is configured.
func FromConfig(cfg config.Config) Provider {
	if cfg.Halo.SpartanToken == "" && cfg.Azure.RefreshToken != "" {
		return NewRefresher(cfg.Azure.ClientID, cfg.Azure.ClientSecret, cfg.Azure.RedirectURI, cfg.Azure.RefreshToken, DefaultEndpoints)
	}
	return EnvProvider{SpartanToken: cfg.Halo.SpartanToken, ClearanceToken: cfg.Halo.ClearanceToken}
}
