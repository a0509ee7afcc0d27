// Package export renders a career into shareable artifacts: a CSV of the
// season-by-season record and a plain-text career sheet. The CLI writes
// them under ~/.goalline/exports; the API hands the strings back as a
// payload.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"goalline/internal/career"
	"goalline/internal/clubs"
)

// CSV renders the season history. The header block carries the career
// totals; the table that follows has one row per season.
func CSV(c *career.Career) string {
	var b strings.Builder
	w := csv.NewWriter(&b)

	w.Write([]string{"Player Career Summary"})
	w.Write([]string{"Name", c.Name})
	w.Write([]string{"Position", string(c.Position)})
	w.Write([]string{"Nationality", c.Nationality})
	w.Write([]string{"Seasons Played", strconv.Itoa(c.SeasonsPlayed)})
	w.Write([]string{"Peak OVR", strconv.Itoa(c.PeakOvr)})
	w.Write([]string{"Peak Club", c.PeakClub})
	w.Write([]string{"Career Earnings", strconv.FormatInt(c.Earnings, 10)})
	w.Write([]string{"Caps", strconv.Itoa(c.Caps)})
	w.Write([]string{})
	w.Write([]string{"Season", "Age", "Club", "OVR", "Goals", "Assists", "Saves", "Clean Sheets", "Trophies", "Ballon Rank"})

	ballonBySeason := map[int]career.BallonEntry{}
	for _, entry := range c.BallonHistory {
		ballonBySeason[entry.Season] = entry
	}
	for _, rec := range c.SeasonHistory {
		names := make([]string, 0, len(rec.Trophies))
		for _, key := range rec.Trophies {
			names = append(names, clubs.TrophyName(key))
		}
		rank := ""
		if entry, ok := ballonBySeason[rec.Season]; ok {
			if entry.Rank != nil {
				rank = strconv.Itoa(*entry.Rank)
			} else if entry.IneligibleReason != "" {
				rank = entry.IneligibleReason
			}
		}
		w.Write([]string{
			strconv.Itoa(rec.Season),
			strconv.Itoa(rec.Age),
			rec.Club,
			strconv.Itoa(rec.Ovr),
			strconv.Itoa(rec.Goals),
			strconv.Itoa(rec.Assists),
			strconv.Itoa(rec.Saves),
			strconv.Itoa(rec.CleanSheets),
			strings.Join(names, "; "),
			rank,
		})
	}
	w.Flush()
	return b.String()
}

// Sheet renders the plain-text career summary.
func Sheet(c *career.Career) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n", c.Name, c.Position, c.Nationality)
	fmt.Fprintf(&b, "Seasons played: %d  Peak OVR: %d at %s\n", c.SeasonsPlayed, c.PeakOvr, c.PeakClub)
	fmt.Fprintf(&b, "Career totals: %d goals, %d assists, %d saves, %d clean sheets\n",
		c.TotalGoals, c.TotalAssists, c.TotalSaves, c.TotalCleanSheets)
	fmt.Fprintf(&b, "International: %d caps, %d goals\n", c.Caps, c.NationalGoals)
	fmt.Fprintf(&b, "Earnings: %d\n", c.Earnings)
	if len(c.Trophies) > 0 {
		b.WriteString("Honours:\n")
		for _, key := range c.Trophies {
			fmt.Fprintf(&b, "  - %s\n", clubs.TrophyName(key))
		}
	} else {
		b.WriteString("Honours: none\n")
	}
	if c.Retired {
		rating := c.CareerRating()
		fmt.Fprintf(&b, "Legacy: %s (%d/5)\n", career.CareerRatingLabel(rating), rating)
	}
	return b.String()
}

// Dir is the export directory under the user's home.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".goalline", "exports")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// WriteAll writes the CSV and the sheet to the export directory and
// returns the written paths.
func WriteAll(c *career.Career) ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	stamp := time.Now().Format("20060102-150405")
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(c.Name)), " ", "-")
	if slug == "" {
		slug = "career"
	}
	csvPath := filepath.Join(dir, fmt.Sprintf("%s-%s.csv", slug, stamp))
	txtPath := filepath.Join(dir, fmt.Sprintf("%s-%s.txt", slug, stamp))
	if err := os.WriteFile(csvPath, []byte(CSV(c)), 0o600); err != nil {
		return nil, err
	}
	if err := os.WriteFile(txtPath, []byte(Sheet(c)), 0o600); err != nil {
		return nil, err
	}
	return []string{csvPath, txtPath}, nil
}
