package engine

import (
	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/season"
)

// Effect describes what a dispatched action changed, for rendering. A
// refused action sets Refusal and mutates nothing; an unknown action sets
// Ignored and mutates nothing.
type Effect struct {
	Ignored bool   `json:"ignored,omitempty"`
	Refusal string `json:"refusal,omitempty"`
	Message string `json:"message,omitempty"`

	Event        *season.Event      `json:"event,omitempty"`
	Cup          *season.CupResult  `json:"cup,omitempty"`
	Summary      *SeasonSummary     `json:"summary,omitempty"`
	RetirePrompt bool               `json:"retire_prompt,omitempty"`
	Retirement   *RetirementSummary `json:"retirement,omitempty"`
}

// SeasonSummary is the season-end report handed to the presentation layer.
type SeasonSummary struct {
	Season      int      `json:"season"`
	Age         int      `json:"age"`
	Club        string   `json:"club"`
	Ovr         int      `json:"ovr"`
	MarketValue float64  `json:"market_value"`
	Goals       int      `json:"goals"`
	Assists     int      `json:"assists"`
	Saves       int      `json:"saves"`
	CleanSheets int      `json:"clean_sheets"`
	Trophies    []string `json:"trophies,omitempty"`
	BallonRank  *int     `json:"ballon_rank,omitempty"`
	BallonNote  string   `json:"ballon_note,omitempty"`
	SeasonType  string   `json:"season_type"`
	Earnings    int64    `json:"earnings"`
}

// RetirementSummary is the terminal career report.
type RetirementSummary struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	SeasonsPlayed int    `json:"seasons_played"`
	PeakOvr       int    `json:"peak_ovr"`
	PeakClub      string `json:"peak_club"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	Saves         int    `json:"saves"`
	CleanSheets   int    `json:"clean_sheets"`
	Caps          int    `json:"caps"`
	NationalGoals int    `json:"national_goals"`
	TrophyCount   int    `json:"trophy_count"`
	Earnings      int64  `json:"earnings"`
	Rating        int    `json:"rating"`
	Label         string `json:"label"`
}

// CareerView bundles the save with the event waiting on the player.
type CareerView struct {
	ID     string         `json:"id"`
	Career *career.Career `json:"career"`
	Event  *season.Event  `json:"event"`
}

func buildSeasonSummary(c *career.Career) *SeasonSummary {
	if len(c.SeasonHistory) == 0 {
		return nil
	}
	rec := c.SeasonHistory[len(c.SeasonHistory)-1]
	names := make([]string, 0, len(rec.Trophies))
	for _, key := range rec.Trophies {
		names = append(names, clubs.TrophyName(key))
	}
	sum := &SeasonSummary{
		Season:      rec.Season,
		Age:         rec.Age,
		Club:        rec.Club,
		Ovr:         rec.Ovr,
		MarketValue: rec.MarketValue,
		Goals:       rec.Goals,
		Assists:     rec.Assists,
		Saves:       rec.Saves,
		CleanSheets: rec.CleanSheets,
		Trophies:    names,
		SeasonType:  rec.SeasonType,
		Earnings:    c.Earnings,
	}
	if len(c.BallonHistory) > 0 {
		entry := c.BallonHistory[len(c.BallonHistory)-1]
		sum.BallonRank = entry.Rank
		sum.BallonNote = entry.IneligibleReason
	}
	return sum
}

func buildRetirementSummary(c *career.Career) *RetirementSummary {
	rating := c.CareerRating()
	return &RetirementSummary{
		Name:          c.Name,
		Age:           c.Age,
		SeasonsPlayed: c.SeasonsPlayed,
		PeakOvr:       c.PeakOvr,
		PeakClub:      c.PeakClub,
		Goals:         c.TotalGoals,
		Assists:       c.TotalAssists,
		Saves:         c.TotalSaves,
		CleanSheets:   c.TotalCleanSheets,
		Caps:          c.Caps,
		NationalGoals: c.NationalGoals,
		TrophyCount:   len(c.Trophies),
		Earnings:      c.Earnings,
		Rating:        rating,
		Label:         career.CareerRatingLabel(rating),
	}
}
