package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"canvass/internal/agent"
	"canvass/internal/archive"
	"canvass/internal/config"
	"canvass/internal/question"
	"canvass/internal/runner"
	"canvass/internal/sheet"
)

// runSurveySession is a test seam for driving one session.
var runSurveySession = runner.RunSession

// runAgent builds the handler for the agent command.
func runAgent(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: .canvass.yml)")
		rowIndex := flags.Int("row", 0, "Contact sheet row index for this call")
		phone := flags.String("phone", "", "Phone number for this call")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}
		if *rowIndex <= 0 {
			fmt.Fprintln(stderr, "Missing --row")
			return ExitUsage
		}
		if *phone == "" {
			fmt.Fprintln(stderr, "Missing --phone")
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve config: %v\n", err)
			return ExitError
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		baseDir := filepath.Dir(resolved)
		if err := config.LoadEnv(filepath.Join(baseDir, ".env")); err != nil {
			fmt.Fprintf(stderr, "Failed to load env: %v\n", err)
			return ExitError
		}

		catalog, err := question.LoadCatalog(config.ResolvePath(baseDir, cfg.Campaign.Questions))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
			return ExitError
		}
		provider, err := agent.ProviderFromEnv(cfg.Agent.Provider, cfg.Agent.Model)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}

		deps := runner.SessionDependencies{
			Provider: provider,
			Listener: &lineListener{scanner: bufio.NewScanner(os.Stdin)},
			Speaker:  &lineSpeaker{out: stdout},
			Sheet:    sheet.NewStore(config.ResolvePath(baseDir, cfg.Campaign.Sheet)),
		}
		ctx := context.Background()
		if cfg.Campaign.Archive != "" {
			store, err := archive.Open(config.ResolvePath(baseDir, cfg.Campaign.Archive))
			if err != nil {
				fmt.Fprintf(stderr, "Failed to open archive: %v\n", err)
				return ExitError
			}
			defer store.Close()
			campaignID, err := store.UpsertCampaign(ctx, archive.Campaign{
				Sheet:         cfg.Campaign.Sheet,
				QuestionsFile: cfg.Campaign.Questions,
			}, time.Now())
			if err != nil {
				fmt.Fprintf(stderr, "Failed to register campaign: %v\n", err)
				return ExitError
			}
			deps.Archive = store
			deps.CampaignID = campaignID
		}

		result, err := runSurveySession(ctx, runner.SessionParams{
			Catalog:             catalog,
			RowIndex:            *rowIndex,
			Phone:               *phone,
			Instructions:        cfg.Agent.Instructions,
			ClosingInstructions: cfg.Agent.ClosingInstructions,
			MaxTurns:            cfg.Agent.MaxTurns,
		}, deps)
		if err != nil {
			fmt.Fprintf(stderr, "Session failed: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Session finished: %s (%d answers)\n", result.Status, len(result.Answers))
		return ExitOK
	}
}

// lineListener reads respondent utterances one line at a time.
type lineListener struct {
	scanner *bufio.Scanner
}

func (l *lineListener) NextUtterance(context.Context) (string, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return l.scanner.Text(), nil
}

// lineSpeaker writes agent replies as prefixed lines.
type lineSpeaker struct {
	out io.Writer
}

func (s *lineSpeaker) Say(_ context.Context, text string) error {
	_, err := fmt.Fprintf(s.out, "agent> %s\n", text)
	return err
}
