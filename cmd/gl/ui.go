package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/engine"
	"goalline/internal/market"
	"goalline/internal/season"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func promptInt(label string, min, max int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil || v < min || v > max {
			printWarn(fmt.Sprintf("Enter a number between %d and %d.", min, max))
			continue
		}
		return v, nil
	}
}

func renderCareer(view engine.CareerView) {
	c := view.Career
	if c == nil {
		printWarn("No career data.")
		return
	}
	accent.Printf("\n== %s (%s) ==\n", c.Name, strings.ToUpper(string(c.Position)))
	fmt.Printf("Season %d, age %d — %s\n", c.Season, c.Age, season.SlotLabel(c.Slot))
	club, tier := c.CurrentClub()
	fmt.Printf("Club:        %s (tier %d, prestige %d)\n", club.Name, tier, club.Prestige)
	if c.OnLoan() {
		warn.Printf("On loan from %s, %d season(s) left\n", c.Loan.FromClub.Name, c.Loan.SeasonsLeft)
	}
	if c.IsFreeAgent() {
		warn.Println("Contract:    free agent")
	} else {
		fmt.Printf("Contract:    %d year(s), %s/week, clause %s\n",
			c.Contract.Years, formatMoney(int64(c.Contract.SalaryWeekly)), formatMoneyF(c.Contract.ReleaseClause))
	}
	fmt.Printf("OVR %d  value %s\n", c.Ovr(), formatMoneyF(c.MarketValue()))
	fmt.Printf("PAC %2.0f  SHO %2.0f  PAS %2.0f  DRI %2.0f  PHY %2.0f\n",
		c.Stats.Pace, c.Stats.Shooting, c.Stats.Passing, c.Stats.Dribbling, c.Stats.Physical)
	fmt.Printf("Fitness %.0f  Reputation %.0f  Earnings %s\n", c.Fitness, c.Reputation, formatMoney(c.Earnings))
	if len(c.Trophies) > 0 {
		fmt.Printf("Honours:     %d (latest: %s)\n", len(c.Trophies), clubs.TrophyName(c.Trophies[len(c.Trophies)-1]))
	}
	if c.Caps > 0 {
		fmt.Printf("Country:     %s — %d caps, %d goals\n", c.Nationality, c.Caps, c.NationalGoals)
	}
	fmt.Println()
}

func renderEvent(ev season.Event) {
	accent.Printf("\n-- Week %d: %s --\n", ev.Slot, ev.Label)
	if ev.Title != "" {
		success.Println(ev.Title)
	}
	if ev.Text != "" {
		fmt.Println(ev.Text)
	}
	switch {
	case ev.Feedback != nil:
		renderFeedback(*ev.Feedback)
	case ev.LoanReaction != nil:
		fmt.Printf("%s is sending you to %s for %d season(s), growth x%.2f.\n",
			ev.LoanReaction.FromClub, ev.LoanReaction.ToClub, ev.LoanReaction.Years, ev.LoanReaction.GrowthMult)
	case ev.LoanSignOffer != nil:
		o := ev.LoanSignOffer
		fmt.Printf("%s wants you permanently: %d years at %s/week.\n",
			o.Club.Name, o.Years, formatMoney(int64(o.SalaryWeekly)))
	case ev.Renewal != nil:
		renderOffer(*ev.Renewal)
	case ev.ReleaseClause != nil:
		renderOffer(*ev.ReleaseClause)
	case ev.Matchday != nil:
		if ev.Matchday.Title != "" {
			success.Println(ev.Matchday.Title)
		}
		if ev.Matchday.Text != "" {
			fmt.Println(ev.Matchday.Text)
		}
		if ev.Matchday.Injury != nil {
			danger.Printf("Diagnosis: %s, %d weeks out.\n", ev.Matchday.Injury.Name, ev.Matchday.Injury.Weeks)
		}
		for _, b := range ev.Matchday.Boosters {
			fmt.Printf("  [%s] %s (detection risk %.0f%%)\n", b.Key, b.Label, b.CatchChance*100)
		}
		if l := ev.Matchday.LoanOffer; l != nil {
			fmt.Printf("Terms: %s (tier %d), one season, growth x%.2f, bonus %s.\n",
				l.ToClub.Name, l.ToTier, l.GrowthMult, formatMoney(int64(l.Bonus)))
		}
	case ev.National != nil:
		if ev.National.CalledUp {
			success.Printf("Called up by %s.\n", ev.National.Profile.Name)
		} else {
			fmt.Printf("The %s squad is named without you (bar: %d).\n",
				ev.National.Profile.Name, ev.National.Profile.MinOvr)
		}
	case ev.Clutch != nil:
		if ev.Clutch.Title != "" {
			success.Println(ev.Clutch.Title)
		}
		fmt.Println(ev.Clutch.Text)
	case ev.Preseason != nil:
		fmt.Printf("The %s. Field:\n", ev.Preseason.CupName)
		for _, team := range ev.Preseason.Teams {
			fmt.Printf("  - %s\n", team.Club.Name)
		}
	}
	if len(ev.Choices) > 0 {
		for _, ch := range ev.Choices {
			line := fmt.Sprintf("  [%s] %s", ch.Key, ch.Label)
			if ch.Hint != "" {
				line += " — " + ch.Hint
			}
			fmt.Println(line)
		}
	}
	if len(ev.Offers) > 0 {
		accent.Println("Offers:")
		for i, offer := range ev.Offers {
			fmt.Printf("  %d) ", i+1)
			renderOffer(offer)
		}
	}
	if ev.Board != nil {
		renderBoard(ev.Board)
	}
}

func renderOffer(o career.Offer) {
	fmt.Printf("%s (tier %d): %d years, %s/week, clause %s\n",
		o.Club.Name, o.Tier, o.Years, formatMoney(int64(o.SalaryWeekly)), formatMoneyF(o.ReleaseClause))
}

func renderFeedback(fb career.MarketFeedback) {
	switch fb.Status {
	case career.AppOffered:
		success.Printf("%s says yes.\n", fb.ClubName)
		if fb.Offer != nil {
			renderOffer(*fb.Offer)
		}
	case career.AppRejected:
		danger.Printf("%s passes on you.\n", fb.ClubName)
	default:
		fmt.Printf("%s: %s\n", fb.ClubName, fb.Status)
	}
}

func renderBoard(board *market.Board) {
	if len(board.Incoming) > 0 {
		accent.Println("Interest in you:")
		for _, entry := range board.Incoming {
			fmt.Printf("  %s (tier %d) — %s\n", entry.Club.Name, entry.Tier, entry.Status)
		}
	}
	if len(board.Targets) > 0 {
		accent.Println("Clubs worth a call:")
		for _, target := range board.Targets {
			fmt.Printf("  %s (tier %d)\n", target.Club.Name, target.Tier)
		}
	}
}

func renderEffect(eff engine.Effect) {
	switch {
	case eff.Refusal != "":
		warn.Println(eff.Refusal)
	case eff.Ignored:
		printInfo("Nothing happens.")
	case eff.Message != "":
		fmt.Println(eff.Message)
	}
	if eff.Cup != nil {
		renderCup(eff.Cup)
	}
	if eff.Summary != nil {
		renderSummary(eff.Summary)
	}
	if eff.RetirePrompt {
		warn.Println("No contract, past 36. `gl retire` is on the table.")
	}
	if eff.Retirement != nil {
		renderRetirement(eff.Retirement)
	}
}

func renderCup(res *season.CupResult) {
	accent.Printf("\n== %s ==\n", res.CupName)
	if res.Benched {
		printInfo("You watch the whole thing from the bench.")
	}
	fmt.Printf("Semi:  %s %d - %d %s\n", res.Semi.Home, res.Semi.HomeGoals, res.Semi.AwayGoals, res.Semi.Away)
	if res.Final != nil {
		fmt.Printf("Final: %s %d - %d %s\n", res.Final.Home, res.Final.HomeGoals, res.Final.AwayGoals, res.Final.Away)
	}
	if res.Won {
		success.Println("Champions.")
	}
}

func renderSummary(sum *engine.SeasonSummary) {
	accent.Printf("\n== SEASON %d REVIEW (age %d) ==\n", sum.Season, sum.Age)
	fmt.Printf("Club:   %s\n", sum.Club)
	fmt.Printf("OVR:    %d  value %s\n", sum.Ovr, formatMoneyF(sum.MarketValue))
	fmt.Printf("Output: %d goals, %d assists", sum.Goals, sum.Assists)
	if sum.Saves > 0 || sum.CleanSheets > 0 {
		fmt.Printf(", %d saves, %d clean sheets", sum.Saves, sum.CleanSheets)
	}
	fmt.Println()
	if len(sum.Trophies) > 0 {
		success.Printf("Silverware: %s\n", strings.Join(sum.Trophies, ", "))
	}
	switch {
	case sum.BallonRank != nil && *sum.BallonRank == 1:
		success.Println("Ballon d'Or winner.")
	case sum.BallonRank != nil:
		fmt.Printf("Ballon d'Or rank: %d\n", *sum.BallonRank)
	case sum.BallonNote != "":
		printInfo("Ballon d'Or: " + sum.BallonNote)
	}
	fmt.Printf("Career earnings: %s\n", formatMoney(sum.Earnings))
	fmt.Println()
}

func renderRetirement(ret *engine.RetirementSummary) {
	accent.Printf("\n== CAREER OVER: %s, age %d ==\n", ret.Name, ret.Age)
	fmt.Printf("Seasons:   %d  (peak OVR %d at %s)\n", ret.SeasonsPlayed, ret.PeakOvr, ret.PeakClub)
	fmt.Printf("Output:    %d goals, %d assists, %d saves, %d clean sheets\n",
		ret.Goals, ret.Assists, ret.Saves, ret.CleanSheets)
	fmt.Printf("Country:   %d caps, %d goals\n", ret.Caps, ret.NationalGoals)
	fmt.Printf("Honours:   %d trophies\n", ret.TrophyCount)
	fmt.Printf("Earnings:  %s\n", formatMoney(ret.Earnings))
	success.Printf("Legacy:    %s (%d/5)\n\n", ret.Label, ret.Rating)
}

func renderAcademies(academies []clubs.Academy) {
	accent.Println("\nAcademy offers:")
	for i, a := range academies {
		fmt.Printf("  %d) %s — %s, %s (prestige %d)\n", i+1, a.Name, a.Club, a.League, a.Prestige)
		if a.Desc != "" {
			fmt.Printf("     %s\n", a.Desc)
		}
	}
}

func formatMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "€" + comma(v)
}

func formatMoneyF(v float64) string {
	return formatMoney(int64(v))
}

func comma(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
