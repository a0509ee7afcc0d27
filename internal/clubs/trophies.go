package clubs

import (
	"strconv"
	"strings"
)

// Trophy keys stored on a career. League, cup and preseason trophies carry a
// competition suffix ("league:<league>", "cup:<cup>", "preseason:<cup>:S<n>").
const (
	TrophyLeagueLow  = "league_low"
	TrophyLeagueMid  = "league_mid"
	TrophyLeagueTop  = "league_top"
	TrophyCup        = "cup"
	TrophyChampions  = "champions"
	TrophyPOTY       = "poty"
	TrophyGoldenBoot = "golden_boot"
	TrophyCleanSheet = "clean_sheet"
	TrophyBallon     = "ballon"
)

var trophyNames = map[string]string{
	TrophyLeagueLow:  "Lower League Title",
	TrophyLeagueMid:  "League Title",
	TrophyLeagueTop:  "Premier League / La Liga Title",
	TrophyCup:        "Domestic Cup",
	TrophyChampions:  "UEFA Champions League",
	TrophyPOTY:       "Player of the Year",
	TrophyGoldenBoot: "Golden Boot",
	TrophyCleanSheet: "Clean Sheet Master",
	TrophyBallon:     "Ballon d'Or",
}

// LeagueTrophyKey tags a league title with the competition it was won in.
func LeagueTrophyKey(league string) string { return "league:" + league }

// CupTrophyKey tags a domestic cup win.
func CupTrophyKey(cup string) string { return "cup:" + cup }

// PreseasonTrophyKey tags a preseason cup win with its season.
func PreseasonTrophyKey(cup string, season int) string {
	return "preseason:" + cup + ":S" + strconv.Itoa(season)
}

// TrophyName renders a stored trophy key for display.
func TrophyName(key string) string {
	if rest, ok := strings.CutPrefix(key, "preseason:"); ok {
		if cup, _, found := strings.Cut(rest, ":S"); found && cup != "" {
			return cup
		}
		return "Preseason Cup"
	}
	if league, ok := strings.CutPrefix(key, "league:"); ok {
		if league != "" {
			return league + " Title"
		}
		return "League Title"
	}
	if cup, ok := strings.CutPrefix(key, "cup:"); ok {
		if cup != "" {
			return cup
		}
		return "Domestic Cup"
	}
	if name, ok := trophyNames[key]; ok {
		return name
	}
	return key
}
