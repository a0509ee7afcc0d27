package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cl "goalline/internal/cli"
	"goalline/internal/config"
	"goalline/internal/engine"
	"goalline/internal/export"
	"goalline/internal/season"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "gl",
		Short:        "Goalline career game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newNewCmd(&apiBase),
		newStatusCmd(&apiBase),
		newPlayCmd(&apiBase),
		newSeasonCmd(&apiBase),
		newExportCmd(&apiBase),
		newRetireCmd(&apiBase),
		newAbandonCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func loadCareer() (cl.Session, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return cl.Session{}, fmt.Errorf("no active career, run `gl new` first: %w", err)
	}
	return sess, nil
}

func newNewCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new career",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := promptRequired("Player name")
			if err != nil {
				return err
			}
			position, err := promptChoice("Position", []string{"striker", "midfielder", "defender", "goalkeeper"}, "striker")
			if err != nil {
				return err
			}
			nationality, err := promptOptional("Nationality (blank: your club's country)")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)

			academies, err := client.Academies(ctx, 3)
			if err != nil {
				return err
			}
			if len(academies) == 0 {
				return fmt.Errorf("no academy offers available")
			}
			renderAcademies(academies)
			pick, err := promptInt("Pick an academy", 1, len(academies))
			if err != nil {
				return err
			}

			view, err := client.StartCareer(ctx, engine.StartCareerInput{
				Name:        name,
				Position:    position,
				Nationality: nationality,
				AcademyID:   academies[pick-1].ID,
			})
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{CareerID: view.ID, Name: view.Career.Name}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Welcome to %s, %s.", view.Career.Club.Name, view.Career.Name))
			renderCareer(view)
			printInfo("Run `gl play` to start the season.")
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current career",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			view, err := newClient(apiBase).View(ctx, sess.CareerID)
			if err != nil {
				return err
			}
			renderCareer(view)
			if view.Event != nil && !view.Career.Retired {
				renderEvent(*view.Event)
			}
			return nil
		},
	}
}

func newPlayCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play through the calendar week by week",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			client := newClient(apiBase)

			for {
				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				view, err := client.View(ctx, sess.CareerID)
				cancel()
				if err != nil {
					return err
				}
				if view.Career.Retired {
					printInfo("This career is over. `gl export` keeps the record.")
					return nil
				}
				if view.Event == nil {
					return fmt.Errorf("no pending event for this career")
				}
				renderEvent(*view.Event)

				action, quit, err := promptEventAction(view)
				if err != nil {
					return err
				}
				if quit {
					printInfo("Saved. Come back any time.")
					return nil
				}

				ctx, cancel = context.WithTimeout(cmd.Context(), 30*time.Second)
				eff, err := client.Act(ctx, sess.CareerID, action)
				cancel()
				if err != nil {
					return err
				}
				renderEffect(eff)
				if eff.Retirement != nil {
					return nil
				}
			}
		},
	}
}

// promptEventAction turns the pending event into one action envelope.
// The quit flag leaves the event pending on the server.
func promptEventAction(view engine.CareerView) (map[string]any, bool, error) {
	ev := *view.Event
	c := view.Career

	pick := func(label string, options []string, def string) (string, bool, error) {
		choice, err := promptChoice(label, append(options, "quit"), def)
		if err != nil {
			return "", false, err
		}
		return choice, choice == "quit", nil
	}

	switch ev.Kind {
	case season.KindTransferWindow, season.KindQuietWindow:
		return promptWindowAction(ev)

	case season.KindBanSeason, season.KindLoanReaction, season.KindRunIn:
		_, quit, err := pick("Continue", []string{"continue"}, "continue")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("acknowledge"), false, nil

	case season.KindFeedback:
		if ev.Feedback != nil && ev.Feedback.Offer != nil {
			choice, quit, err := pick("Answer", []string{"accept", "dismiss"}, "dismiss")
			if err != nil || quit {
				return nil, quit, err
			}
			if choice == "accept" {
				return envelope("accept_feedback"), false, nil
			}
		}
		return envelope("dismiss_feedback"), false, nil

	case season.KindLoanSignOffer:
		choice, quit, err := pick("Sign permanently", []string{"accept", "decline"}, "accept")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "accept" {
			return envelope("accept_loan_sign"), false, nil
		}
		return envelope("decline_loan_sign"), false, nil

	case season.KindTraining, season.KindCupTie, season.KindContinental, season.KindReserveWeek:
		keys := make([]string, 0, len(ev.Choices))
		for _, ch := range ev.Choices {
			keys = append(keys, ch.Key)
		}
		if len(keys) == 0 {
			return envelope("acknowledge"), false, nil
		}
		choice, quit, err := pick("Your call", keys, keys[0])
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil

	case season.KindPreseasonCup:
		choice, quit, err := pick("The invitation", []string{"accept", "decline", "sick"}, "accept")
		if err != nil || quit {
			return nil, quit, err
		}
		switch choice {
		case "accept":
			return envelope("accept_cup"), false, nil
		case "decline":
			return envelope("decline_cup"), false, nil
		}
		return envelope("fake_sick"), false, nil

	case season.KindMatchday:
		return promptMatchdayAction(ev)

	case season.KindNational:
		if ev.National == nil || !ev.National.CalledUp {
			return envelope("acknowledge"), false, nil
		}
		choice, quit, err := pick("How do you play", []string{"bold", "safe"}, "safe")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil

	case season.KindClutch:
		choice, quit, err := pick("Where do you put it", []string{"left", "center", "right"}, "left")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("pick_penalty", "direction", choice), false, nil

	case season.KindRenewal:
		if ev.Renewal == nil {
			return envelope("acknowledge"), false, nil
		}
		choice, quit, err := pick("The offer", []string{"accept", "decline", "counter"}, "accept")
		if err != nil || quit {
			return nil, quit, err
		}
		switch choice {
		case "accept":
			return envelope("accept_renewal"), false, nil
		case "decline":
			return envelope("decline_renewal"), false, nil
		}
		mode, err := promptChoice("Counter posture", []string{"balanced", "teamFirst", "shortTerm", "starDemand"}, "balanced")
		if err != nil {
			return nil, false, err
		}
		return envelope("extend", "mode", mode), false, nil

	case season.KindFreeAgency:
		options := []string{"sign"}
		if c.Age >= 36 {
			options = append(options, "retire")
		}
		choice, quit, err := pick("Free agency", options, "sign")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "retire" {
			return envelope("retire"), false, nil
		}
		idx, err := promptInt("Which offer", 1, len(ev.Offers))
		if err != nil {
			return nil, false, err
		}
		return envelope("accept_offer", "index", idx-1), false, nil

	case season.KindNoOffers:
		options := []string{"continue"}
		if c.Age >= 36 {
			options = append(options, "retire")
		}
		choice, quit, err := pick("The silence", options, "continue")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "retire" {
			return envelope("retire"), false, nil
		}
		return envelope("acknowledge"), false, nil

	case season.KindReleaseClause:
		choice, quit, err := pick("The clause", []string{"accept", "decline"}, "decline")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "accept" {
			return envelope("accept_release_clause"), false, nil
		}
		return envelope("decline_release_clause"), false, nil
	}
	return envelope("acknowledge"), false, nil
}

func promptWindowAction(ev season.Event) (map[string]any, bool, error) {
	options := []string{"stay", "extend", "loan"}
	if ev.Kind == season.KindTransferWindow {
		options = append(options, "apply")
		if len(ev.Offers) > 0 {
			options = append(options, "sign")
		}
	}
	choice, err := promptChoice("The window", append(options, "quit"), "stay")
	if err != nil {
		return nil, false, err
	}
	switch choice {
	case "quit":
		return nil, true, nil
	case "stay":
		return envelope("choose", "key", "stay"), false, nil
	case "extend":
		mode, err := promptChoice("Posture", []string{"balanced", "teamFirst", "shortTerm", "starDemand"}, "balanced")
		if err != nil {
			return nil, false, err
		}
		return envelope("extend", "mode", mode), false, nil
	case "loan":
		return envelope("request_loan"), false, nil
	case "apply":
		club, err := promptRequired("Club to approach")
		if err != nil {
			return nil, false, err
		}
		mode, err := promptChoice("Posture", []string{"balanced", "teamFirst", "proveIt", "starDemand"}, "balanced")
		if err != nil {
			return nil, false, err
		}
		return envelope("apply", "club", club, "mode", mode), false, nil
	case "sign":
		idx, err := promptInt("Which offer", 1, len(ev.Offers))
		if err != nil {
			return nil, false, err
		}
		return envelope("accept_offer", "index", idx-1), false, nil
	}
	return envelope("acknowledge"), false, nil
}

func promptMatchdayAction(ev season.Event) (map[string]any, bool, error) {
	if ev.Matchday == nil {
		return envelope("acknowledge"), false, nil
	}
	ask := func(label string, options []string, def string) (string, bool, error) {
		choice, err := promptChoice(label, append(options, "quit"), def)
		if err != nil {
			return "", false, err
		}
		return choice, choice == "quit", nil
	}
	switch ev.Matchday.SubKind {
	case season.SubDoping:
		options := []string{"refuse"}
		for _, b := range ev.Matchday.Boosters {
			options = append(options, b.Key)
		}
		choice, quit, err := ask("The fixer waits", options, "refuse")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "refuse" {
			return envelope("refuse_booster"), false, nil
		}
		return envelope("take_booster", "tier", choice), false, nil
	case season.SubInjury:
		choice, quit, err := ask("The treatment room", []string{"sit", "rush"}, "sit")
		if err != nil || quit {
			return nil, quit, err
		}
		if choice == "rush" {
			return envelope("rush_back"), false, nil
		}
		return envelope("sit_out"), false, nil
	case season.SubRivalry:
		choice, quit, err := ask("The rival", []string{"confront", "ignore"}, "ignore")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil
	case season.SubMedia:
		choice, quit, err := ask("The press", []string{"speak", "quiet"}, "quiet")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil
	case season.SubFame:
		choice, quit, err := ask("The spotlight", []string{"embrace", "humble"}, "humble")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil
	case season.SubMentor:
		choice, quit, err := ask("The veteran's offer", []string{"train", "decline"}, "train")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil
	case season.SubLoanOffer:
		choice, quit, err := ask("The loan plea", []string{"accept", "decline"}, "decline")
		if err != nil || quit {
			return nil, quit, err
		}
		return envelope("choose", "key", choice), false, nil
	}
	return envelope("acknowledge"), false, nil
}

func envelope(kind string, kv ...any) map[string]any {
	m := map[string]any{"kind": kind}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i].(string)] = kv[i+1]
	}
	return m
}

func newSeasonCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "season [count]",
		Short: "Let the season play out on autopilot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			count := 1
			if len(args) == 1 {
				count, err = strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil || count < 1 || count > 30 {
					return fmt.Errorf("count must be 1..30")
				}
			}
			client := newClient(apiBase)
			for i := 0; i < count; i++ {
				ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
				eff, err := client.Advance(ctx, sess.CareerID)
				cancel()
				if err != nil {
					return err
				}
				renderEffect(eff)
				if eff.Retirement != nil {
					return nil
				}
			}
			return nil
		},
	}
}

func newExportCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the career record to ~/.goalline/exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			payload, err := newClient(apiBase).Export(ctx, sess.CareerID)
			if err != nil {
				return err
			}
			dir, err := export.Dir()
			if err != nil {
				return err
			}
			stamp := time.Now().Format("20060102-150405")
			slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(sess.Name)), " ", "-")
			if slug == "" {
				slug = "career"
			}
			csvPath := filepath.Join(dir, fmt.Sprintf("%s-%s.csv", slug, stamp))
			txtPath := filepath.Join(dir, fmt.Sprintf("%s-%s.txt", slug, stamp))
			if err := os.WriteFile(csvPath, []byte(payload.CSV), 0o600); err != nil {
				return err
			}
			if err := os.WriteFile(txtPath, []byte(payload.Sheet), 0o600); err != nil {
				return err
			}
			printSuccess("Exported:")
			fmt.Println("  " + csvPath)
			fmt.Println("  " + txtPath)
			return nil
		},
	}
}

func newRetireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "retire",
		Short: "Hang up the boots (age 36+, out of contract)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			eff, err := newClient(apiBase).Act(ctx, sess.CareerID, envelope("retire"))
			if err != nil {
				return err
			}
			renderEffect(eff)
			return nil
		},
	}
}

func newAbandonCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Delete the current career",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadCareer()
			if err != nil {
				return err
			}
			confirm, err := promptChoice("Delete "+sess.Name+" forever", []string{"yes", "no"}, "no")
			if err != nil {
				return err
			}
			if confirm != "yes" {
				printInfo("Kept.")
				return nil
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := newClient(apiBase).Close(ctx, sess.CareerID); err != nil {
				return err
			}
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Career deleted.")
			return nil
		},
	}
}
