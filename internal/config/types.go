package config

// Config holds all configuration for the application.
type Config struct {
	DBName     string
	Port       string
	EnvFile    string
	LogLevel   string
	MedalsFile string
	DraftFile  string
	Halo       HaloConfig
	Azure      AzureConfig
	Slack      SlackConfig
	Turso      TursoConfig
	ProjectID  string
}

type HaloConfig struct {
	SpartanToken      string
	ClearanceToken    string
	RequestsPerSecond float64
}

// AzureConfig is the Azure AD app used to refresh Halo tokens.
type AzureConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	RefreshToken string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
