package auth

import (
	"errors"
	"time"
)

// ErrMissingTokens is returned when no Halo tokens are configured.
var ErrMissingTokens = errors.New("spartan and clearance tokens are not set; run `league-cli refresh` first")

// Credentials authorise requests against the Halo Infinite services.
type Credentials struct {
	SpartanToken     string
	ClearanceToken   string
	XUID             string
	Gamertag         string
	XBLAuthorization string
	ExpiresAt        time.Time
	// RefreshToken is the rotated Azure refresh token, if the server issued one.
	RefreshToken string
}

// Endpoints are the services used during a token refresh.
type Endpoints struct {
	TokenURL     string
	UserAuthURL  string
	XSTSURL      string
	SpartanURL   string
	ClearanceURL string
}

// DefaultEndpoints are the production Microsoft, Xbox Live and Halo endpoints.
var DefaultEndpoints = Endpoints{
	TokenURL:     "https://login.live.com/oauth20_token.srf",
	UserAuthURL:  "https://user.auth.xboxlive.com/user/authenticate",
	XSTSURL:      "https://xsts.auth.xboxlive.com/xsts/authorize",
	SpartanURL:   "https://settings.svc.halowaypoint.com/spartan-token",
	ClearanceURL: "https://settings.svc.halowaypoint.com/oban/flight-configurations/titles/hi/audiences/RETAIL/players",
}

const (
	haloRelyingParty = "https://prod.xsts.halowaypoint.com/"
	xboxRelyingParty = "http://xboxlive.com"
	spartanAudience  = "urn:343:s3:services"
	clearanceBuild   = "222249.22.06.08.1730-0"
)

var scopes = []string{"Xboxlive.signin", "Xboxlive.offline_access"}

type xboxTokenRequest struct {
	RelyingParty string         `json:"RelyingParty"`
	TokenType    string         `json:"TokenType"`
	Properties   map[string]any `json:"Properties"`
}

type xboxTokenResponse struct {
	Token         string `json:"Token"`
	DisplayClaims struct {
		XUI []struct {
			UserHash string `json:"uhs"`
			XUID     string `json:"xid"`
			Gamertag string `json:"gtg"`
		} `json:"xui"`
	} `json:"DisplayClaims"`
}

type spartanProof struct {
	Token     string `json:"Token"`
	TokenType string `json:"TokenType"`
}

type spartanTokenRequest struct {
	Audience   string         `json:"Audience"`
	MinVersion string         `json:"MinVersion"`
	Proof      []spartanProof `json:"Proof"`
}

type spartanTokenResponse struct {
	SpartanToken string `json:"SpartanToken"`
	ExpiresUtc   struct {
		ISO8601Date time.Time `json:"ISO8601Date"`
	} `json:"ExpiresUtc"`
}

type clearanceResponse struct {
	FlightConfigurationID string `json:"FlightConfigurationId"`
}
