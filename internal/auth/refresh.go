package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// Refresher exchanges an Azure refresh token for fresh Halo credentials.
type Refresher struct {
	httpClient   *http.Client
	oauth        *oauth2.Config
	refreshToken string
	endpoints    Endpoints
}

var _ Provider = (*Refresher)(nil)

// NewRefresher creates a Refresher for the given Azure app.
func NewRefresher(clientID, clientSecret, redirectURI, refreshToken string, endpoints Endpoints) *Refresher {
	return &Refresher{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				TokenURL:  endpoints.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken: refreshToken,
		endpoints:    endpoints,
	}
}

// Credentials runs the full refresh chain: OAuth, Xbox user token, XSTS, spartan
// token and clearance.
func (r *Refresher) Credentials(ctx context.Context) (Credentials, error) {
	if r.refreshToken == "" {
		return Credentials{}, fmt.Errorf("no Azure refresh token configured")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	token, err := r.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: r.refreshToken}).Token()
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to refresh OAuth token: %w", err)
	}
	log.Debug("Refreshed OAuth token", "expiry", token.Expiry)

	user, err := r.userToken(ctx, token.AccessToken)
	if err != nil {
		return Credentials{}, err
	}
	haloXSTS, err := r.xstsToken(ctx, user.Token, haloRelyingParty)
	if err != nil {
		return Credentials{}, err
	}
	xboxXSTS, err := r.xstsToken(ctx, user.Token, xboxRelyingParty)
	if err != nil {
		return Credentials{}, err
	}
	if len(xboxXSTS.DisplayClaims.XUI) == 0 {
		return Credentials{}, fmt.Errorf("xbox XSTS response has no user claims")
	}
	claims := xboxXSTS.DisplayClaims.XUI[0]

	spartan, err := r.spartanToken(ctx, haloXSTS.Token)
	if err != nil {
		return Credentials{}, err
	}
	clearance, err := r.clearanceToken(ctx, spartan.SpartanToken, claims.XUID)
	if err != nil {
		return Credentials{}, err
	}

	creds := Credentials{
		SpartanToken:     spartan.SpartanToken,
		ClearanceToken:   clearance,
		XUID:             claims.XUID,
		Gamertag:         claims.Gamertag,
		XBLAuthorization: fmt.Sprintf("XBL3.0 x=%s;%s", claims.UserHash, xboxXSTS.Token),
		ExpiresAt:        spartan.ExpiresUtc.ISO8601Date,
	}
	if token.RefreshToken != r.refreshToken {
		creds.RefreshToken = token.RefreshToken
	}
	log.Info("Refreshed Halo credentials", "gamertag", creds.Gamertag, "xuid", creds.XUID, "expiresAt", creds.ExpiresAt)
	return creds, nil
}

func (r *Refresher) userToken(ctx context.Context, accessToken string) (xboxTokenResponse, error) {
	var resp xboxTokenResponse
	body := xboxTokenRequest{
		RelyingParty: "http://auth.xboxlive.com",
		TokenType:    "JWT",
		Properties: map[string]any{
			"AuthMethod": "RPS",
			"SiteName":   "user.auth.xboxlive.com",
			"RpsTicket":  "d=" + accessToken,
		},
	}
	if err := r.do(ctx, http.MethodPost, r.endpoints.UserAuthURL, body, xblHeaders(), &resp); err != nil {
		return resp, fmt.Errorf("error requesting Xbox user token: %w", err)
	}
	return resp, nil
}

func (r *Refresher) xstsToken(ctx context.Context, userToken, relyingParty string) (xboxTokenResponse, error) {
	var resp xboxTokenResponse
	body := xboxTokenRequest{
		RelyingParty: relyingParty,
		TokenType:    "JWT",
		Properties: map[string]any{
			"SandboxId":  "RETAIL",
			"UserTokens": []string{userToken},
		},
	}
	if err := r.do(ctx, http.MethodPost, r.endpoints.XSTSURL, body, xblHeaders(), &resp); err != nil {
		return resp, fmt.Errorf("error requesting XSTS token for %s: %w", relyingParty, err)
	}
	return resp, nil
}

func (r *Refresher) spartanToken(ctx context.Context, xstsToken string) (spartanTokenResponse, error) {
	var resp spartanTokenResponse
	body := spartanTokenRequest{
		Audience:   spartanAudience,
		MinVersion: "4",
		Proof:      []spartanProof{{Token: xstsToken, TokenType: "Xbox_XSTSv3"}},
	}
	if err := r.do(ctx, http.MethodPost, r.endpoints.SpartanURL, body, nil, &resp); err != nil {
		return resp, fmt.Errorf("error requesting spartan token: %w", err)
	}
	return resp, nil
}

func (r *Refresher) clearanceToken(ctx context.Context, spartanToken, xuid string) (string, error) {
	var resp clearanceResponse
	q := url.Values{}
	q.Set("sandbox", "UNUSED")
	q.Set("build", clearanceBuild)
	endpoint := fmt.Sprintf("%s/xuid(%s)/active?%s", r.endpoints.ClearanceURL, xuid, q.Encode())
	headers := map[string]string{"x-343-authorization-spartan": spartanToken}
	if err := r.do(ctx, http.MethodGet, endpoint, nil, headers, &resp); err != nil {
		return "", fmt.Errorf("error requesting clearance: %w", err)
	}
	return resp.FlightConfigurationID, nil
}

func xblHeaders() map[string]string {
	return map[string]string{"x-xbl-contract-version": "1"}
}

func (r *Refresher) do(ctx context.Context, method, endpoint string, body any, headers map[string]string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status during token refresh", "status", resp.StatusCode, "body", string(respBody), "url", endpoint)
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
