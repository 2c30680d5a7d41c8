// Package record assembles one export row per match participant.
package record

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mauv0809/halo-league-export/internal/haloinfinite"
	"github.com/mauv0809/halo-league-export/internal/medals"
	"github.com/mauv0809/halo-league-export/internal/score"
)

const matchURLFormat = "https://www.halowaypoint.com/halo-infinite/players/%s/matches/%s"

// Assemble builds the row for in.Player. It has no side effects.
func Assemble(in Input) (Record, error) {
	p := in.Player
	core := p.Core

	xuid := haloinfinite.UnwrapXUID(p.PlayerID)
	gamertag, ok := in.Identities[xuid]
	if !ok || gamertag == "" {
		gamertag = xuid
	}

	breakdown, err := score.Decode(core.Score)
	if err != nil {
		return Record{}, fmt.Errorf("player %s: %w", gamertag, err)
	}

	r := Record{
		XUID:         xuid,
		Gamertag:     gamertag,
		DraftPos:     in.Draft.Lookup(gamertag),
		Score:        core.Score,
		DamageDealt:  core.DamageDealt,
		DamageTaken:  core.DamageTaken,
		Goals:        breakdown.Goals,
		BombHoldTime: breakdown.BombHoldTime,
		Punches:      core.Kills - core.PowerWeaponKills,
		GoalAssists:  breakdown.GoalAssists,
		PlateStops:   breakdown.PlateStops,
		Kills:        core.Kills,
		SwordKills:   breakdown.SwordKills,
		Deaths:       core.Deaths,
		KDA:          core.KDA,
		KDRatio:      float64(core.Kills) / float64(max(core.Deaths, 1)),
		Assists:      core.Assists,
		Betrayals:    core.Betrayals,
		GameTime:     int(math.RoundToEven(p.TimePlayed.Seconds())),
		Medals:       medals.Aggregate(core.Medals, in.Medals),
		URL:          fmt.Sprintf(matchURLFormat, url.PathEscape(gamertag), in.MatchID),
		MatchID:      in.MatchID,
	}

	switch p.Outcome {
	case haloinfinite.OutcomeWin:
		r.Wins = 1
	case haloinfinite.OutcomeLoss:
		r.Losses = 1
	}

	if r.Deaths == 0 {
		r.Deaths = 1
	}
	if core.Deaths < 0 {
		r.Anomalies = append(r.Anomalies, &DataInconsistencyError{Player: gamertag, Field: "deaths", Value: core.Deaths})
	}
	if r.Punches < 0 {
		r.Anomalies = append(r.Anomalies, &DataInconsistencyError{Player: gamertag, Field: "punches", Value: r.Punches})
	}
	return r, nil
}

// Fields returns the row as a column -> value map. Manual columns are nil.
func (r Record) Fields() map[string]any {
	f := map[string]any{
		"PlayerId":     r.Gamertag,
		"DraftPos":     r.DraftPos,
		"Wins":         r.Wins,
		"Losses":       r.Losses,
		"Score":        r.Score,
		"Damage Dealt": r.DamageDealt,
		"Damage Taken": r.DamageTaken,
		"Goals":        r.Goals,
		"BHT":          r.BombHoldTime,
		"Punches":      r.Punches,
		"Goal Assists": r.GoalAssists,
		"Plate Stops":  r.PlateStops,
		"Kills":        r.Kills,
		"Sword Kills":  r.SwordKills,
		"Deaths":       r.Deaths,
		"KDA":          r.KDA,
		"KD Ratio":     r.KDRatio,
		"Assists":      r.Assists,
		"Betrayals":    r.Betrayals,
		"GameTime":     r.GameTime,
		"URL":          r.URL,
		"MatchID":      r.MatchID,
	}
	for col, name := range MedalColumns {
		f[col] = r.Medals.Get(name)
	}
	for _, col := range ManualColumns {
		f[col] = nil
	}
	return f
}

// Values returns the row as strings in Columns order. Nil fields are empty.
func (r Record) Values() []string {
	fields := r.Fields()
	out := make([]string, len(Columns))
	for i, col := range Columns {
		out[i] = formatValue(fields[col])
	}
	return out
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
