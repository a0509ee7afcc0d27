package clubs

// NationalProfile describes a national side's call-up bar.
type NationalProfile struct {
	Name   string `json:"name"`
	Tier   string `json:"tier"`
	MinOvr int    `json:"min_ovr"`
}

var nationalProfiles = map[string]NationalProfile{
	"England":        {Name: "England", Tier: "elite", MinOvr: 84},
	"Spain":          {Name: "Spain", Tier: "elite", MinOvr: 84},
	"France":         {Name: "France", Tier: "elite", MinOvr: 85},
	"Germany":        {Name: "Germany", Tier: "elite", MinOvr: 83},
	"Brazil":         {Name: "Brazil", Tier: "elite", MinOvr: 86},
	"Argentina":      {Name: "Argentina", Tier: "elite", MinOvr: 85},
	"Italy":          {Name: "Italy", Tier: "strong", MinOvr: 81},
	"Portugal":       {Name: "Portugal", Tier: "strong", MinOvr: 80},
	"Netherlands":    {Name: "Netherlands", Tier: "strong", MinOvr: 80},
	"Belgium":        {Name: "Belgium", Tier: "strong", MinOvr: 79},
	"Croatia":        {Name: "Croatia", Tier: "strong", MinOvr: 78},
	"Uruguay":        {Name: "Uruguay", Tier: "strong", MinOvr: 78},
	"Colombia":       {Name: "Colombia", Tier: "strong", MinOvr: 77},
	"Switzerland":    {Name: "Switzerland", Tier: "mid", MinOvr: 75},
	"Sweden":         {Name: "Sweden", Tier: "mid", MinOvr: 74},
	"Denmark":        {Name: "Denmark", Tier: "mid", MinOvr: 75},
	"Serbia":         {Name: "Serbia", Tier: "mid", MinOvr: 74},
	"Morocco":        {Name: "Morocco", Tier: "mid", MinOvr: 75},
	"Japan":          {Name: "Japan", Tier: "mid", MinOvr: 74},
	"South Korea":    {Name: "South Korea", Tier: "mid", MinOvr: 74},
	"USA":            {Name: "USA", Tier: "mid", MinOvr: 73},
	"Mexico":         {Name: "Mexico", Tier: "mid", MinOvr: 74},
	"Norway":         {Name: "Norway", Tier: "mid", MinOvr: 73},
	"Chile":          {Name: "Chile", Tier: "mid", MinOvr: 73},
	"Poland":         {Name: "Poland", Tier: "mid", MinOvr: 73},
	"Hungary":        {Name: "Hungary", Tier: "rising", MinOvr: 69},
	"Romania":        {Name: "Romania", Tier: "rising", MinOvr: 68},
	"Greece":         {Name: "Greece", Tier: "rising", MinOvr: 68},
	"Czech Republic": {Name: "Czech Republic", Tier: "rising", MinOvr: 69},
	"Slovakia":       {Name: "Slovakia", Tier: "rising", MinOvr: 67},
	"Austria":        {Name: "Austria", Tier: "rising", MinOvr: 70},
	"Ireland":        {Name: "Ireland", Tier: "rising", MinOvr: 67},
	"Turkey":         {Name: "Turkey", Tier: "rising", MinOvr: 71},
	"Peru":           {Name: "Peru", Tier: "rising", MinOvr: 68},
	"Ecuador":        {Name: "Ecuador", Tier: "rising", MinOvr: 69},
	"Paraguay":       {Name: "Paraguay", Tier: "rising", MinOvr: 68},
	"Nigeria":        {Name: "Nigeria", Tier: "rising", MinOvr: 71},
	"Senegal":        {Name: "Senegal", Tier: "rising", MinOvr: 72},
	"Ghana":          {Name: "Ghana", Tier: "rising", MinOvr: 69},
}

// NationalProfileFor returns the call-up profile for a nationality, with a
// developing-nation fallback so every input produces a playable side.
func NationalProfileFor(country string) NationalProfile {
	if p, ok := nationalProfiles[country]; ok {
		return p
	}
	return NationalProfile{Name: "National Team", Tier: "developing", MinOvr: 66}
}
