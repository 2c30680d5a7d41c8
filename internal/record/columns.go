package record

// Columns is the export schema, in output order.
var Columns = []string{
	"PlayerId", "DraftPos", "PlayerSub", "Wins", "Losses", "Score",
	"Damage Dealt", "Damage Taken", "Goals", "Goals Allowed", "BHT", "BHT Allowed",
	"Punches", "Goal Assists", "Plate Stops", "Plate Stops Allowed", "Kills", "Sword Kills",
	"Deaths", "KDA", "KD Ratio", "Assists", "Betrayals", "GameTime",
	"Killing Spree", "Killing Frenzy", "Running Riot", "Rampage",
	"Grand Slams", "Grand Slams Allowed",
	"Double Kill", "Triple Kill", "Overkill", "Killtacular", "Killtrocity", "Killamanjaro",
	"Killtastrophe", "Killpocalypse", "Killionaire", "Extermination", "Bulltrue", "Ninja",
	"Pancake", "Whiplash", "Killjoy", "Harpoon", "Back Smack", "Spotter", "Warrior",
	"From the Grave", "Flawless Victory", "Boxer",
	"URL", "MatchID", "Week", "Playoffs", "QF", "SF", "GF", "Team", "Opponent", "OldTeam",
}

// ManualColumns are filled in by hand after export.
var ManualColumns = []string{
	"PlayerSub", "Goals Allowed", "BHT Allowed", "Plate Stops Allowed", "Grand Slams Allowed",
	"Week", "Playoffs", "QF", "SF", "GF", "Team", "Opponent", "OldTeam",
}

// MedalColumns maps medal columns to the medal display name they count.
var MedalColumns = map[string]string{
	"Killing Spree":    "Killing Spree",
	"Killing Frenzy":   "Killing Frenzy",
	"Running Riot":     "Running Riot",
	"Rampage":          "Rampage",
	"Grand Slams":      "Grand Slam",
	"Double Kill":      "Double Kill",
	"Triple Kill":      "Triple Kill",
	"Overkill":         "Overkill",
	"Killtacular":      "Killtacular",
	"Killtrocity":      "Killtrocity",
	"Killamanjaro":     "Killamanjaro",
	"Killtastrophe":    "Killtastrophe",
	"Killpocalypse":    "Killpocalypse",
	"Killionaire":      "Killionaire",
	"Extermination":    "Extermination",
	"Bulltrue":         "Bulltrue",
	"Ninja":            "Ninja",
	"Pancake":          "Pancake",
	"Whiplash":         "Whiplash",
	"Killjoy":          "Killjoy",
	"Harpoon":          "Harpoon",
	"Back Smack":       "Back Smack",
	"Spotter":          "Spotter",
	"Warrior":          "Warrior",
	"From the Grave":   "From the Grave",
	"Flawless Victory": "Flawless Victory",
	"Boxer":            "Boxer",
}
