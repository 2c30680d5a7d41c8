package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/mauv0809/halo-league-export/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T, refreshToken string) (*httptest.Server, Endpoints) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, refreshToken, r.Form.Get("refresh_token"))
		assert.Equal(t, "client", r.Form.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "rotated",
			"token_type":    "bearer",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("POST /user/authenticate", func(w http.ResponseWriter, r *http.Request) {
		var body xboxTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "d=access", body.Properties["RpsTicket"])
		assert.Equal(t, "1", r.Header.Get("x-xbl-contract-version"))
		w.Write([]byte(`{"Token":"user-token","DisplayClaims":{"xui":[{"uhs":"hash"}]}}`))
	})
	mux.HandleFunc("POST /xsts/authorize", func(w http.ResponseWriter, r *http.Request) {
		var body xboxTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch body.RelyingParty {
		case haloRelyingParty:
			w.Write([]byte(`{"Token":"halo-xsts","DisplayClaims":{"xui":[{"uhs":"hash"}]}}`))
		case xboxRelyingParty:
			w.Write([]byte(`{"Token":"xbox-xsts","DisplayClaims":{"xui":[{"uhs":"hash","xid":"2533","gtg":"Chief"}]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})
	mux.HandleFunc("POST /spartan-token", func(w http.ResponseWriter, r *http.Request) {
		var body spartanTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Proof, 1)
		assert.Equal(t, "halo-xsts", body.Proof[0].Token)
		assert.Equal(t, spartanAudience, body.Audience)
		w.Write([]byte(`{"SpartanToken":"spartan","ExpiresUtc":{"ISO8601Date":"2026-01-02T03:04:05Z"}}`))
	})
	mux.HandleFunc("GET /players/{player}/active", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "xuid(2533)", r.PathValue("player"))
		assert.Equal(t, "spartan", r.Header.Get("x-343-authorization-spartan"))
		assert.Equal(t, clearanceBuild, r.URL.Query().Get("build"))
		w.Write([]byte(`{"FlightConfigurationId":"clearance"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, Endpoints{
		TokenURL:     server.URL + "/token",
		UserAuthURL:  server.URL + "/user/authenticate",
		XSTSURL:      server.URL + "/xsts/authorize",
		SpartanURL:   server.URL + "/spartan-token",
		ClearanceURL: server.URL + "/players",
	}
}

func TestRefresher(t *testing.T) {
	t.Run("runs the full chain", func(t *testing.T) {
		_, endpoints := newIdentityServer(t, "refresh")
		r := NewRefresher("client", "secret", "http://localhost", "refresh", endpoints)

		creds, err := r.Credentials(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "spartan", creds.SpartanToken)
		assert.Equal(t, "clearance", creds.ClearanceToken)
		assert.Equal(t, "2533", creds.XUID)
		assert.Equal(t, "Chief", creds.Gamertag)
		assert.Equal(t, "XBL3.0 x=hash;xbox-xsts", creds.XBLAuthorization)
		assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), creds.ExpiresAt.UTC())
		assert.Equal(t, "rotated", creds.RefreshToken)
	})

	t.Run("fails without a refresh token", func(t *testing.T) {
		r := NewRefresher("client", "secret", "http://localhost", "", DefaultEndpoints)

		_, err := r.Credentials(context.Background())

		assert.Error(t, err)
	})

	t.Run("surfaces service errors", func(t *testing.T) {
		_, endpoints := newIdentityServer(t, "refresh")
		endpoints.SpartanURL = endpoints.UserAuthURL + "/missing"
		r := NewRefresher("client", "secret", "http://localhost", "refresh", endpoints)

		_, err := r.Credentials(context.Background())

		assert.ErrorContains(t, err, "spartan token")
	})
}

func TestEnvProvider(t *testing.T) {
	_, err := EnvProvider{SpartanToken: "s"}.Credentials(context.Background())
	assert.ErrorIs(t, err, ErrMissingTokens)

	creds, err := EnvProvider{SpartanToken: "s", ClearanceToken: "c"}.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s", creds.SpartanToken)
	assert.Equal(t, "c", creds.ClearanceToken)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	t.Run("creates the file", func(t *testing.T) {
		require.NoError(t, Save(path, Credentials{SpartanToken: "s1", ClearanceToken: "c1"}))

		env, err := godotenv.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "s1", env["SPARTAN_TOKEN"])
		assert.Equal(t, "c1", env["CLEARANCE_TOKEN"])
		assert.NotContains(t, env, "AZURE_REFRESH_TOKEN")
	})

	t.Run("keeps unrelated keys", func(t *testing.T) {
		require.NoError(t, godotenv.Write(map[string]string{"PORT": "9000", "SPARTAN_TOKEN": "old"}, path))

		require.NoError(t, Save(path, Credentials{SpartanToken: "s2", ClearanceToken: "c2", RefreshToken: "r2"}))

		env, err := godotenv.Read(path)
		require.NoError(t, err)
		assert.Equal(t, "9000", env["PORT"])
		assert.Equal(t, "s2", env["SPARTAN_TOKEN"])
		assert.Equal(t, "r2", env["AZURE_REFRESH_TOKEN"])
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("uses environment tokens", func(t *testing.T) {
		cfg := config.Config{Halo: config.HaloConfig{SpartanToken: "s", ClearanceToken: "c"}}
		cfg.Azure.RefreshToken = "r"

		assert.IsType(t, EnvProvider{}, FromConfig(cfg))
	})

	t.Run("refreshes without environment tokens", func(t *testing.T) {
		cfg := config.Config{Azure: config.AzureConfig{RefreshToken: "r"}}

		assert.IsType(t, &Refresher{}, FromConfig(cfg))
	})
}
