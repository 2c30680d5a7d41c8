// Package score decodes the packed 9-digit score that custom game modes use to
// smuggle objective stats through the single Score field of the stats API.
package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Digits is the fixed width of a packed score once zero-padded.
const Digits = 9

// Widths lists the width of each packed field, left to right:
// goal assists, goals, plate stops, sword kills, bomb hold time.
var Widths = []int{1, 1, 2, 2, 3}

// Breakdown holds the five fields packed into a score.
type Breakdown struct {
	GoalAssists  int
	Goals        int
	PlateStops   int
	SwordKills   int
	BombHoldTime int
}

// MalformedScoreError is returned when a score does not fit the packed layout.
type MalformedScoreError struct {
	Score  int64
	Reason string
}

func (e *MalformedScoreError) Error() string {
	return fmt.Sprintf("malformed score %d: %s", e.Score, e.Reason)
}

// Pad renders score as a zero-padded string of exactly Digits characters.
func Pad(score int64) (string, error) {
	if score < 0 {
		return "", &MalformedScoreError{Score: score, Reason: "negative"}
	}
	s := strconv.FormatInt(score, 10)
	if len(s) > Digits {
		return "", &MalformedScoreError{Score: score, Reason: fmt.Sprintf("has %d digits, max %d", len(s), Digits)}
	}
	return strings.Repeat("0", Digits-len(s)) + s, nil
}

// Decode splits score into its packed fields.
func Decode(score int64) (Breakdown, error) {
	padded, err := Pad(score)
	if err != nil {
		return Breakdown{}, err
	}

	fields := make([]int, len(Widths))
	offset := 0
	for i, w := range Widths {
		v, err := strconv.Atoi(padded[offset : offset+w])
		if err != nil {
			return Breakdown{}, &MalformedScoreError{Score: score, Reason: err.Error()}
		}
		fields[i] = v
		offset += w
	}

	return Breakdown{
		GoalAssists:  fields[0],
		Goals:        fields[1],
		PlateStops:   fields[2],
		SwordKills:   fields[3],
		BombHoldTime: fields[4],
	}, nil
}

// Encode packs b back into its zero-padded string form.
func Encode(b Breakdown) (string, error) {
	var sb strings.Builder
	for i, v := range b.fields() {
		s := strconv.Itoa(v)
		if v < 0 || len(s) > Widths[i] {
			return "", &MalformedScoreError{Score: int64(v), Reason: fmt.Sprintf("field %d does not fit width %d", i, Widths[i])}
		}
		sb.WriteString(strings.Repeat("0", Widths[i]-len(s)))
		sb.WriteString(s)
	}
	return sb.String(), nil
}

func (b Breakdown) fields() []int {
	return []int{b.GoalAssists, b.Goals, b.PlateStops, b.SwordKills, b.BombHoldTime}
}
