// Package clubs holds the static club, academy and national-team reference
// data the career engine draws from. Everything here is immutable; callers
// copy what they need.
package clubs

// Club is a static reference entry. Prestige is 0..100 and drives offer
// quality, affordability and season-end win chances.
type Club struct {
	Name     string `json:"name"`
	League   string `json:"league"`
	Country  string `json:"country"`
	Prestige int    `json:"prestige"`
}

// Tiers groups the club pool into ascending prestige bands. Tier index is a
// relative strength signal, not a hard cutoff; prestige overlaps at the
// edges on purpose.
var Tiers = [][]Club{
	{ // tier 1
		{Name: "Sunderland AFC", League: "EFL Championship", Country: "England", Prestige: 35},
		{Name: "Sheffield United", League: "EFL Championship", Country: "England", Prestige: 42},
		{Name: "Hertha BSC", League: "2. Bundesliga", Country: "Germany", Prestige: 41},
		{Name: "Hannover 96", League: "2. Bundesliga", Country: "Germany", Prestige: 36},
		{Name: "Palermo FC", League: "Serie B", Country: "Italy", Prestige: 39},
		{Name: "Bari", League: "Serie B", Country: "Italy", Prestige: 35},
		{Name: "Real Zaragoza", League: "Segunda División", Country: "Spain", Prestige: 38},
		{Name: "Sporting Gijón", League: "Segunda División", Country: "Spain", Prestige: 36},
		{Name: "FC Metz", League: "Ligue 2", Country: "France", Prestige: 40},
		{Name: "SM Caen", League: "Ligue 2", Country: "France", Prestige: 32},
		{Name: "RCD Espanyol", League: "La Liga", Country: "Spain", Prestige: 46},
		{Name: "CD Leganés", League: "La Liga", Country: "Spain", Prestige: 42},
		{Name: "Real Valladolid", League: "La Liga", Country: "Spain", Prestige: 43},
		{Name: "Venezia FC", League: "Serie A", Country: "Italy", Prestige: 42},
		{Name: "Parma Calcio 1913", League: "Serie A", Country: "Italy", Prestige: 49},
		{Name: "FC St. Pauli", League: "Bundesliga", Country: "Germany", Prestige: 47},
		{Name: "Holstein Kiel", League: "Bundesliga", Country: "Germany", Prestige: 40},
		{Name: "Angers SCO", League: "Ligue 1", Country: "France", Prestige: 44},
		{Name: "AJ Auxerre", League: "Ligue 1", Country: "France", Prestige: 45},
		{Name: "Le Havre AC", League: "Ligue 1", Country: "France", Prestige: 44},
	},
	{ // tier 2
		{Name: "Leeds United", League: "EFL Championship", Country: "England", Prestige: 49},
		{Name: "Burnley FC", League: "EFL Championship", Country: "England", Prestige: 46},
		{Name: "Hamburger SV", League: "2. Bundesliga", Country: "Germany", Prestige: 50},
		{Name: "FC Schalke 04", League: "2. Bundesliga", Country: "Germany", Prestige: 48},
		{Name: "Sampdoria", League: "Serie B", Country: "Italy", Prestige: 47},
		{Name: "US Cremonese", League: "Serie B", Country: "Italy", Prestige: 43},
		{Name: "Real Oviedo", League: "Segunda División", Country: "Spain", Prestige: 40},
		{Name: "Deportivo La Coruña", League: "Segunda División", Country: "Spain", Prestige: 44},
		{Name: "Paris FC", League: "Ligue 2", Country: "France", Prestige: 35},
		{Name: "AC Ajaccio", League: "Ligue 2", Country: "France", Prestige: 34},
		{Name: "Ipswich Town", League: "Premier League", Country: "England", Prestige: 51},
		{Name: "Leicester City", League: "Premier League", Country: "England", Prestige: 57},
		{Name: "Southampton FC", League: "Premier League", Country: "England", Prestige: 54},
		{Name: "Getafe CF", League: "La Liga", Country: "Spain", Prestige: 54},
		{Name: "Deportivo Alavés", League: "La Liga", Country: "Spain", Prestige: 53},
		{Name: "CA Osasuna", League: "La Liga", Country: "Spain", Prestige: 56},
		{Name: "Empoli FC", League: "Serie A", Country: "Italy", Prestige: 50},
		{Name: "US Lecce", League: "Serie A", Country: "Italy", Prestige: 51},
		{Name: "Cagliari Calcio", League: "Serie A", Country: "Italy", Prestige: 54},
		{Name: "VfL Bochum", League: "Bundesliga", Country: "Germany", Prestige: 52},
	},
	{ // tier 3
		{Name: "1. FC Heidenheim", League: "Bundesliga", Country: "Germany", Prestige: 55},
		{Name: "FC Augsburg", League: "Bundesliga", Country: "Germany", Prestige: 57},
		{Name: "TSG Hoffenheim", League: "Bundesliga", Country: "Germany", Prestige: 59},
		{Name: "Mainz 05", League: "Bundesliga", Country: "Germany", Prestige: 60},
		{Name: "VfL Wolfsburg", League: "Bundesliga", Country: "Germany", Prestige: 63},
		{Name: "Montpellier HSC", League: "Ligue 1", Country: "France", Prestige: 56},
		{Name: "FC Nantes", League: "Ligue 1", Country: "France", Prestige: 59},
		{Name: "Toulouse FC", League: "Ligue 1", Country: "France", Prestige: 60},
		{Name: "Stade de Reims", League: "Ligue 1", Country: "France", Prestige: 60},
		{Name: "RC Strasbourg", League: "Ligue 1", Country: "France", Prestige: 62},
		{Name: "Wolverhampton Wanderers", League: "Premier League", Country: "England", Prestige: 62},
		{Name: "AFC Bournemouth", League: "Premier League", Country: "England", Prestige: 63},
		{Name: "Fulham FC", League: "Premier League", Country: "England", Prestige: 64},
		{Name: "Everton FC", League: "Premier League", Country: "England", Prestige: 68},
		{Name: "UD Las Palmas", League: "La Liga", Country: "Spain", Prestige: 58},
		{Name: "Rayo Vallecano", League: "La Liga", Country: "Spain", Prestige: 59},
		{Name: "RCD Mallorca", League: "La Liga", Country: "Spain", Prestige: 60},
		{Name: "Celta Vigo", League: "La Liga", Country: "Spain", Prestige: 63},
		{Name: "Hellas Verona", League: "Serie A", Country: "Italy", Prestige: 58},
		{Name: "Genoa CFC", League: "Serie A", Country: "Italy", Prestige: 64},
		{Name: "Udinese Calcio", League: "Serie A", Country: "Italy", Prestige: 60},
	},
	{ // tier 4
		{Name: "West Bromwich Albion", League: "EFL Championship", Country: "England", Prestige: 45},
		{Name: "Norwich City", League: "EFL Championship", Country: "England", Prestige: 47},
		{Name: "Middlesbrough FC", League: "EFL Championship", Country: "England", Prestige: 43},
		{Name: "Coventry City", League: "EFL Championship", Country: "England", Prestige: 42},
		{Name: "Brentford FC", League: "Premier League", Country: "England", Prestige: 68},
		{Name: "Crystal Palace", League: "Premier League", Country: "England", Prestige: 69},
		{Name: "Nottingham Forest", League: "Premier League", Country: "England", Prestige: 70},
		{Name: "Brighton & Hove Albion", League: "Premier League", Country: "England", Prestige: 72},
		{Name: "Girona FC", League: "La Liga", Country: "Spain", Prestige: 66},
		{Name: "Sevilla FC", League: "La Liga", Country: "Spain", Prestige: 70},
		{Name: "Valencia CF", League: "La Liga", Country: "Spain", Prestige: 72},
		{Name: "Real Betis", League: "La Liga", Country: "Spain", Prestige: 74},
		{Name: "Torino FC", League: "Serie A", Country: "Italy", Prestige: 67},
		{Name: "Bologna FC 1909", League: "Serie A", Country: "Italy", Prestige: 72},
		{Name: "AC Monza", League: "Serie A", Country: "Italy", Prestige: 62},
		{Name: "Como 1907", League: "Serie A", Country: "Italy", Prestige: 57},
		{Name: "Werder Bremen", League: "Bundesliga", Country: "Germany", Prestige: 66},
		{Name: "Borussia Mönchengladbach", League: "Bundesliga", Country: "Germany", Prestige: 69},
		{Name: "Union Berlin", League: "Bundesliga", Country: "Germany", Prestige: 68},
		{Name: "1. FC Nürnberg", League: "2. Bundesliga", Country: "Germany", Prestige: 37},
	},
	{ // tier 5
		{Name: "Olympique de Marseille", League: "Ligue 1", Country: "France", Prestige: 79},
		{Name: "Olympique Lyonnais", League: "Ligue 1", Country: "France", Prestige: 77},
		{Name: "AS Monaco", League: "Ligue 1", Country: "France", Prestige: 80},
		{Name: "Stade Rennais FC", League: "Ligue 1", Country: "France", Prestige: 74},
		{Name: "OGC Nice", League: "Ligue 1", Country: "France", Prestige: 76},
		{Name: "LOSC Lille", League: "Ligue 1", Country: "France", Prestige: 78},
		{Name: "RC Lens", League: "Ligue 1", Country: "France", Prestige: 75},
		{Name: "Stade Brestois 29", League: "Ligue 1", Country: "France", Prestige: 72},
		{Name: "AS Saint-Étienne", League: "Ligue 1", Country: "France", Prestige: 68},
		{Name: "SC Freiburg", League: "Bundesliga", Country: "Germany", Prestige: 72},
		{Name: "Eintracht Frankfurt", League: "Bundesliga", Country: "Germany", Prestige: 76},
		{Name: "VfB Stuttgart", League: "Bundesliga", Country: "Germany", Prestige: 77},
		{Name: "Aston Villa", League: "Premier League", Country: "England", Prestige: 79},
		{Name: "West Ham United", League: "Premier League", Country: "England", Prestige: 76},
		{Name: "Villarreal CF", League: "La Liga", Country: "Spain", Prestige: 78},
		{Name: "Athletic Club", League: "La Liga", Country: "Spain", Prestige: 80},
		{Name: "Real Sociedad", League: "La Liga", Country: "Spain", Prestige: 79},
		{Name: "ACF Fiorentina", League: "Serie A", Country: "Italy", Prestige: 75},
		{Name: "Lazio", League: "Serie A", Country: "Italy", Prestige: 78},
		{Name: "Atalanta BC", League: "Serie A", Country: "Italy", Prestige: 81},
	},
	{ // tier 6
		{Name: "Tottenham Hotspur", League: "Premier League", Country: "England", Prestige: 83},
		{Name: "Newcastle United", League: "Premier League", Country: "England", Prestige: 84},
		{Name: "Chelsea FC", League: "Premier League", Country: "England", Prestige: 86},
		{Name: "Manchester United", League: "Premier League", Country: "England", Prestige: 87},
		{Name: "AS Roma", League: "Serie A", Country: "Italy", Prestige: 82},
		{Name: "SSC Napoli", League: "Serie A", Country: "Italy", Prestige: 84},
		{Name: "Juventus FC", League: "Serie A", Country: "Italy", Prestige: 89},
		{Name: "RB Leipzig", League: "Bundesliga", Country: "Germany", Prestige: 82},
		{Name: "Borussia Dortmund", League: "Bundesliga", Country: "Germany", Prestige: 88},
		{Name: "Bayer Leverkusen", League: "Bundesliga", Country: "Germany", Prestige: 90},
		{Name: "Atlético de Madrid", League: "La Liga", Country: "Spain", Prestige: 90},
		{Name: "Paris Saint-Germain", League: "Ligue 1", Country: "France", Prestige: 93},
	},
	{ // tier 7
		{Name: "Arsenal FC", League: "Premier League", Country: "England", Prestige: 93},
		{Name: "Liverpool FC", League: "Premier League", Country: "England", Prestige: 96},
		{Name: "Manchester City FC", League: "Premier League", Country: "England", Prestige: 99},
		{Name: "Real Madrid CF", League: "La Liga", Country: "Spain", Prestige: 99},
		{Name: "FC Barcelona", League: "La Liga", Country: "Spain", Prestige: 97},
		{Name: "Inter Milan", League: "Serie A", Country: "Italy", Prestige: 94},
		{Name: "AC Milan", League: "Serie A", Country: "Italy", Prestige: 92},
		{Name: "FC Bayern München", League: "Bundesliga", Country: "Germany", Prestige: 97},
	},
}

// TopTier is the highest tier index (1-based).
func TopTier() int { return len(Tiers) }

// TierOf returns the 1-based tier of a club by name, or 1 if unknown.
func TierOf(name string) int {
	for t, tier := range Tiers {
		for _, c := range tier {
			if c.Name == name {
				return t + 1
			}
		}
	}
	return 1
}

// ByName looks a club up across all tiers.
func ByName(name string) (Club, bool) {
	for _, tier := range Tiers {
		for _, c := range tier {
			if c.Name == name {
				return c, true
			}
		}
	}
	return Club{}, false
}

// Tier returns a copy of the clubs in the given 1-based tier. Out-of-range
// tiers return nil.
func Tier(t int) []Club {
	if t < 1 || t > len(Tiers) {
		return nil
	}
	out := make([]Club, len(Tiers[t-1]))
	copy(out, Tiers[t-1])
	return out
}

// Window returns all clubs in tiers [lo, hi], both 1-based and clamped to
// the table bounds.
func Window(lo, hi int) []Club {
	if lo < 1 {
		lo = 1
	}
	if hi > len(Tiers) {
		hi = len(Tiers)
	}
	var out []Club
	for t := lo; t <= hi; t++ {
		out = append(out, Tiers[t-1]...)
	}
	return out
}

var domesticCupByLeague = map[string]string{
	"Premier League":   "FA Cup",
	"EFL Championship": "FA Cup",
	"La Liga":          "Copa del Rey",
	"Segunda División": "Copa del Rey",
	"Serie A":          "Coppa Italia",
	"Serie B":          "Coppa Italia",
	"Bundesliga":       "DFB-Pokal",
	"2. Bundesliga":    "DFB-Pokal",
	"Ligue 1":          "Coupe de France",
	"Ligue 2":          "Coupe de France",
}

// DomesticCupName maps a league to its national cup competition.
func DomesticCupName(league string) string {
	if cup, ok := domesticCupByLeague[league]; ok {
		return cup
	}
	return "Domestic Cup"
}
