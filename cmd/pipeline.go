package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/hiring"
	"github.com/mountainops/lifthire/internal/logger"
	"github.com/mountainops/lifthire/internal/pipeline"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errAborted = errors.New("aborted by operator")

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applicants ranked by score",
	Run: func(cmd *cobra.Command, _ []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			applicants, err := env.Engine.ListFiltered(pipeline.ListFilter{
				Status:   cmd.Flag("status").Value.String(),
				MinScore: mustIntFlag(cmd, "min-score"),
				Top:      mustIntFlag(cmd, "top"),
			})
			if err != nil {
				return err
			}
			for i, a := range applicants.Items {
				printApplicantRow(i+1, a)
			}
			return nil
		})
	},
}

var detailCmd = &cobra.Command{
	Use:   "status [applicant-id]",
	Short: "Show one applicant's full record, by id or --name",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			a, err := resolveTarget(cmd, env, args)
			if err != nil {
				return err
			}
			printApplicantDetail(a)
			return nil
		})
	},
}

var scoreAllCmd = &cobra.Command{
	Use:   "score-all",
	Short: "Score every applicant against the job rubric",
	Run: func(cmd *cobra.Command, _ []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			report, err := env.Engine.ScoreAll(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Scored %d applicants (auto-promoted %d at threshold %d)\n\n",
				report.Scored, report.AutoPromoted, report.Threshold)
			for i, r := range report.Results {
				fmt.Printf("%2d. %-22s %3d  %-14s %s\n", i+1, r.Name, r.Score, r.Recommendation, r.Status.Display())
			}
			return nil
		})
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [applicant-id]",
	Short: "Score one applicant, by id or --name, and show the full breakdown",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			target, err := resolveTarget(cmd, env, args)
			if err != nil {
				return err
			}

			a, err := env.Engine.ScoreOne(target.ID)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%s) — %d/%d %s\n", a.FullName(), a.ID,
				a.ScoreData.Score, a.ScoreData.MaxScore, a.ScoreData.Recommendation)
			for _, cat := range a.ScoreData.Breakdown {
				fmt.Printf("  %-28s %2d/%d\n", cat.Category, cat.Points, cat.Max)
			}
			for _, reason := range a.ScoreData.Reasons {
				fmt.Printf("  - %s\n", reason)
			}
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "set-status <applicant-id> <status>",
	Short: "Set an applicant's pipeline status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(_ *cobra.Command, env *environment) error {
			a, err := env.Engine.UpdateStatus(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) is now %s\n", a.FullName(), a.ID, a.Status.Display())
			return nil
		})
	},
}

var emailCmd = &cobra.Command{
	Use:   "email [applicant-id...]",
	Short: "Send interview invites (or preview them with --preview)",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			ids, err := bulkTargets(cmd, env, args)
			if err != nil {
				return err
			}

			if cmd.Flag("preview").Value.String() == "true" {
				return previewEmails(env, ids)
			}

			if err := confirm(cmd, fmt.Sprintf("Send interview invites to %d applicants?", len(ids))); err != nil {
				return err
			}
			return runBulk(cmd.Context(), env, ids, pipeline.ActionSendInvite)
		})
	},
}

var bookCmd = &cobra.Command{
	Use:   "book [applicant-id...]",
	Short: "Book interviews, assigning hourly slots by position",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			ids, err := bulkTargets(cmd, env, args)
			if err != nil {
				return err
			}

			if err := confirm(cmd, fmt.Sprintf("Book interviews for %d applicants?", len(ids))); err != nil {
				return err
			}
			return runBulk(cmd.Context(), env, ids, pipeline.ActionBookInterview)
		})
	},
}

var rejectCmd = &cobra.Command{
	Use:   "reject [applicant-id...]",
	Short: "Reject applicants",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			ids, err := bulkTargets(cmd, env, args)
			if err != nil {
				return err
			}

			if err := confirm(cmd, fmt.Sprintf("Reject %d applicants?", len(ids))); err != nil {
				return err
			}
			return runBulk(cmd.Context(), env, ids, pipeline.ActionReject)
		})
	},
}

var replyCmd = &cobra.Command{
	Use:   "simulate-reply <applicant-id>",
	Short: "Simulate a candidate reply and grade it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(_ *cobra.Command, env *environment) error {
			a, err := env.Engine.SimulateReply(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s replied:\n\n%s\n\nGraded %d/%d (%s)\n",
				a.FullName(), a.ResponseData.Text,
				a.ResponseData.Score, a.ResponseData.MaxScore, a.ResponseData.Recommendation)
			return nil
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show pipeline counts by stage",
	Run: func(cmd *cobra.Command, _ []string) {
		withEngine(cmd, func(_ *cobra.Command, env *environment) error {
			report, err := env.Engine.Summary()
			if err != nil {
				return err
			}

			fmt.Printf("Pipeline: %d applicants, %d scored\n", report.Total, report.Scored)
			for _, stage := range report.Stages {
				fmt.Printf("  %-16s %d\n", stage.Label, stage.Count)
			}
			return nil
		})
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Show the daily briefing: top candidates and next actions",
	Run: func(cmd *cobra.Command, _ []string) {
		withEngine(cmd, func(_ *cobra.Command, env *environment) error {
			report, err := env.Engine.Digest()
			if err != nil {
				return err
			}

			fmt.Printf("Pipeline: %d applicants, %d scored\n\n", report.Summary.Total, report.Summary.Scored)
			if len(report.TopCandidates) > 0 {
				fmt.Println("Top candidates:")
				for _, c := range report.TopCandidates {
					fmt.Printf("  %-22s %3d  %s\n", c.Name, c.Score, c.Recommendation)
				}
				fmt.Println()
			}
			fmt.Println("Next actions:")
			for _, action := range report.NextActions {
				fmt.Printf("  - %s\n", action)
			}
			return nil
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search applicants by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(_ *cobra.Command, env *environment) error {
			matches, err := env.Engine.Search(args[0])
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Printf("No applicants match %q\n", args[0])
				return nil
			}
			for i, a := range matches {
				printApplicantRow(i+1, a)
			}
			return nil
		})
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reset the store to the seed roster, discarding all progress",
	Run: func(cmd *cobra.Command, _ []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			if err := confirm(cmd, "Discard all scores and statuses and reload the roster?"); err != nil {
				return err
			}

			n, err := env.Engine.Refresh()
			if err != nil {
				return err
			}
			fmt.Printf("Roster refreshed: %d applicants\n", n)
			return nil
		})
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <first-name> <last-name> <resume-file>",
	Short: "Add an applicant from a freeform resume text file",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		withEngine(cmd, func(cmd *cobra.Command, env *environment) error {
			text, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("reading resume: %w", err)
			}

			a, err := env.Engine.Upload(pipeline.UploadRequest{
				FirstName:     args[0],
				LastName:      args[1],
				Email:         cmd.Flag("email").Value.String(),
				Location:      cmd.Flag("location").Value.String(),
				DistanceMiles: mustFloatFlag(cmd, "distance"),
				ResumeText:    string(text),
			})
			if err != nil {
				return err
			}

			pretty, _ := json.MarshalIndent(a.Resume, "", "  ")
			fmt.Printf("Added %s as %s. Extracted resume:\n%s\n", a.FullName(), a.ID, pretty)
			return nil
		})
	},
}

func init() {
	emailCmd.Flags().Bool("preview", false, "render the invites without sending")
	uploadCmd.Flags().String("email", "", "applicant email address")
	uploadCmd.Flags().String("location", "", "applicant location")
	uploadCmd.Flags().Float64("distance", 0, "distance from the resort in miles")

	listCmd.Flags().String("status", "", "only applicants in this status")
	listCmd.Flags().Int("min-score", 0, "only applicants scored at least this")
	listCmd.Flags().Int("top", 0, "only the N highest ranked")

	detailCmd.Flags().String("name", "", "look up by applicant name instead of id")
	scoreCmd.Flags().String("name", "", "look up by applicant name instead of id")

	for _, c := range []*cobra.Command{emailCmd, bookCmd, rejectCmd} {
		c.Flags().String("status", "", "select every applicant in this status")
		c.Flags().Int("top", 0, "select the N highest ranked applicants")
	}

	for _, c := range []*cobra.Command{
		listCmd, detailCmd, scoreAllCmd, scoreCmd, statusCmd, emailCmd, bookCmd,
		rejectCmd, replyCmd, summaryCmd, digestCmd, searchCmd, refreshCmd, uploadCmd,
	} {
		c.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
		rootCmd.AddCommand(c)
	}
}

// withEngine wires the environment, runs the command body, and tears
// the store down again.
func withEngine(cmd *cobra.Command, body func(*cobra.Command, *environment) error) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	env, err := newEnvironment(zlog, config)
	if err != nil {
		zlog.Fatal("building the pipeline", zap.Error(err))
	}
	defer env.Close()

	if err := body(cmd, env); err != nil {
		if errors.Is(err, errAborted) {
			zlog.Info("exiting", zap.String("reason", "operator declined"))
			return
		}
		zlog.Fatal("command failed", zap.Error(err))
	}
}

// confirm asks the operator before an action that sends mail or throws
// work away. The --yes flag skips the prompt for scripted use.
func confirm(cmd *cobra.Command, label string) error {
	if cmd.Flag("yes").Value.String() == "true" {
		return nil
	}

	prompt := promptui.Select{
		Label: label,
		Items: []string{PromptYes, PromptNo},
	}

	_, answer, err := prompt.Run()
	if err != nil {
		return err
	}
	if answer != PromptYes {
		return errAborted
	}
	return nil
}

func runBulk(ctx context.Context, env *environment, ids []string, action string) error {
	report, err := env.Engine.ApplyBulkAction(ctx, ids, action)
	if err != nil {
		return err
	}

	fmt.Printf("%s: processed %d of %d\n", report.Action, report.Processed, len(ids))
	for _, r := range report.Results {
		fmt.Printf("  %-10s %-22s %s\n", r.ID, r.Name, r.Message)
	}
	if skipped := len(ids) - report.Processed; skipped > 0 {
		fmt.Printf("  (%d unknown ids skipped)\n", skipped)
	}
	return nil
}

func previewEmails(env *environment, ids []string) error {
	for _, id := range ids {
		preview, err := env.Engine.PreviewEmail(id)
		if err != nil {
			return err
		}

		fmt.Printf("To: %s <%s>\nSubject: %s\n\n%s\n", preview.Name, preview.Email, preview.Subject, preview.Body)
		fmt.Println(strings.Repeat("-", 60))
	}
	return nil
}

// resolveTarget turns a positional id or the --name flag into one
// applicant.
func resolveTarget(cmd *cobra.Command, env *environment, args []string) (*hiring.Applicant, error) {
	if len(args) > 0 {
		return env.Engine.Get(args[0])
	}

	name := cmd.Flag("name").Value.String()
	if name == "" {
		return nil, errors.New("provide an applicant id or --name")
	}
	return env.Engine.ResolveByName(name)
}

// bulkTargets returns the explicit ids, or resolves --status/--top into
// ids when none are given.
func bulkTargets(cmd *cobra.Command, env *environment, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	filter := pipeline.ListFilter{
		Status: cmd.Flag("status").Value.String(),
		Top:    mustIntFlag(cmd, "top"),
	}
	if filter.Status == "" && filter.Top <= 0 {
		return nil, errors.New("provide applicant ids or select with --status/--top")
	}

	ids, err := env.Engine.SelectIDs(filter)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, errors.New("selection matched no applicants")
	}
	return ids, nil
}

func printApplicantDetail(a *hiring.Applicant) {
	fmt.Printf("%s (%s)\n", a.FullName(), a.ID)
	fmt.Printf("  Status:    %s\n", a.Status.Display())
	fmt.Printf("  Email:     %s\n", a.Email)
	fmt.Printf("  Location:  %s (%.1f mi)\n", a.Location, a.DistanceMiles)
	fmt.Printf("  Applied:   %s\n", a.AppliedDate)

	if a.ScoreData != nil {
		fmt.Printf("  Score:     %d/%d %s\n", a.ScoreData.Score, a.ScoreData.MaxScore, a.ScoreData.Recommendation)
		for _, cat := range a.ScoreData.Breakdown {
			fmt.Printf("    %-28s %2d/%d\n", cat.Category, cat.Points, cat.Max)
		}
	}
	if a.ResponseData != nil {
		fmt.Printf("  Reply:     %d/%d %s\n", a.ResponseData.Score, a.ResponseData.MaxScore, a.ResponseData.Recommendation)
	}
	if a.EmailSentAt != "" {
		fmt.Printf("  Invited:   %s\n", a.EmailSentAt)
	}
	if a.CalendarEvent != nil {
		fmt.Printf("  Interview: %s %s, %s\n", a.CalendarEvent.Date, a.CalendarEvent.Time, a.CalendarEvent.Location)
	}
}

func printApplicantRow(rank int, a *hiring.Applicant) {
	score := "unscored"
	if a.ScoreData != nil {
		score = fmt.Sprintf("%3d %s", a.ScoreData.Score, a.ScoreData.Recommendation)
	}
	fmt.Printf("%2d. %-10s %-22s %-14s %s\n", rank, a.ID, a.FullName(), a.Status.Display(), score)
}

func mustFloatFlag(cmd *cobra.Command, name string) float64 {
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return 0
	}
	return v
}

func mustIntFlag(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return v
}
