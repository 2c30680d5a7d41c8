package haloinfinite

import "time"

// Outcome is the per-player match result code reported by the stats service.
type Outcome int

const (
	OutcomeTie          Outcome = 1
	OutcomeWin          Outcome = 2
	OutcomeLoss         Outcome = 3
	OutcomeDidNotFinish Outcome = 4
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTie:
		return "TIE"
	case OutcomeWin:
		return "WIN"
	case OutcomeLoss:
		return "LOSS"
	case OutcomeDidNotFinish:
		return "DID_NOT_FINISH"
	default:
		return "UNKNOWN"
	}
}

// MatchStats holds the per-player stats of a single match.
type MatchStats struct {
	MatchID string
	Players []PlayerStats
}

// PlayerStats represents one participant of a match.
type PlayerStats struct {
	PlayerID   string // wrapped form, e.g. xuid(2533274800000000)
	LastTeamID int
	Outcome    Outcome
	TimePlayed time.Duration
	Core       CoreStats
}

// CoreStats are the mode-independent stats of a participant.
type CoreStats struct {
	Score            int64
	Kills            int
	Deaths           int
	Assists          int
	KDA              float64
	Betrayals        int
	PowerWeaponKills int
	DamageDealt      int
	DamageTaken      int
	Medals           []AwardCount
}

// AwardCount is how often a medal was earned.
type AwardCount struct {
	NameID int64
	Count  int
}

// UserProfile maps an XUID to a gamertag.
type UserProfile struct {
	XUID     string
	Gamertag string
}

// Medal is a single entry from the medal metadata file.
type Medal struct {
	NameID int64
	Name   string
}

// matchStatsResponse defines the JSON response of the match stats endpoint.
type matchStatsResponse struct {
	MatchID string                `json:"MatchId"`
	Players []playerStatsResponse `json:"Players"`
}

type playerStatsResponse struct {
	PlayerID          string                  `json:"PlayerId"`
	LastTeamID        int                     `json:"LastTeamId"`
	Outcome           int                     `json:"Outcome"`
	ParticipationInfo participationResponse   `json:"ParticipationInfo"`
	PlayerTeamStats   []playerTeamStatsResult `json:"PlayerTeamStats"`
}

type participationResponse struct {
	TimePlayed string `json:"TimePlayed"`
}

type playerTeamStatsResult struct {
	TeamID int `json:"TeamId"`
	Stats  struct {
		CoreStats coreStatsResponse `json:"CoreStats"`
	} `json:"Stats"`
}

type coreStatsResponse struct {
	Score            int64           `json:"Score"`
	Kills            int             `json:"Kills"`
	Deaths           int             `json:"Deaths"`
	Assists          int             `json:"Assists"`
	KDA              float64         `json:"KDA"`
	Betrayals        int             `json:"Betrayals"`
	PowerWeaponKills int             `json:"PowerWeaponKills"`
	DamageDealt      int             `json:"DamageDealt"`
	DamageTaken      int             `json:"DamageTaken"`
	Medals           []medalResponse `json:"Medals"`
}

type medalResponse struct {
	NameID int64 `json:"NameId"`
	Count  int   `json:"Count"`
}

type userResponse struct {
	XUID     string `json:"xuid"`
	Gamertag string `json:"gamertag"`
}

type medalMetadataResponse struct {
	Medals []struct {
		NameID int64 `json:"nameId"`
		Name   struct {
			Value string `json:"value"`
		} `json:"name"`
	} `json:"medals"`
}
