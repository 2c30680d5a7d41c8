package record

import (
	"fmt"

	"github.com/mauv0809/halo-league-export/internal/draft"
	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
)

// Input is everything needed to build one participant's row.
type Input struct {
	MatchID    string
	Player     haloinfinite.PlayerStats
	Identities map[string]string // unwrapped XUID -> gamertag
	Draft      draft.Table
	Medals     medals.Table
}

// Record is one exported row.
type Record struct {
	XUID         string
	Gamertag     string
	DraftPos     draft.Position
	Wins         int
	Losses       int
	Score        int64
	DamageDealt  int
	DamageTaken  int
	Goals        int
	BombHoldTime int
	Punches      int
	GoalAssists  int
	PlateStops   int
	Kills        int
	SwordKills   int
	Deaths       int
	KDA          float64
	KDRatio      float64
	Assists      int
	Betrayals    int
	GameTime     int
	Medals       medals.Counts
	URL          string
	MatchID      string

	// Anomalies are data problems that did not stop the row from being built.
	Anomalies []*DataInconsistencyError
}

// DataInconsistencyError flags stats that are arithmetically usable but
// point at bad upstream data.
type DataInconsistencyError struct {
	Player string
	Field  string
	Value  int
}

func (e *DataInconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent data for %s: %s is %d", e.Player, e.Field, e.Value)
}
