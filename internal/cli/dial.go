package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"canvass/internal/config"
	"canvass/internal/dialer"
	"canvass/internal/runner"
	"canvass/internal/ui/live"
)

// runCampaign is a test seam for running the dial loop.
var runCampaign = runner.Run

// runDial builds the handler for the dial command.
func runDial(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: .canvass.yml)")
		uiMode := flags.String("ui", "auto", "UI mode: auto, live, or plain")
		dryRun := flags.Bool("dry-run", false, "Plan the calls without dialing")
		if err := flags.Parse(args); err != nil {
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			printCommandUsage(cmd, stderr)
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

		params := runner.RunParams{
			Sheet:      config.ResolvePath(baseDir, cfg.Campaign.Sheet),
			AgentName:  cfg.Dialer.AgentName,
			RoomPrefix: cfg.Dialer.RoomPrefix,
			DryRun:     *dryRun,
		}
		if !*dryRun {
			token, err := config.RequireEnv(config.EnvDialerAPIToken)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			trunkID, err := config.RequireEnv(config.EnvOutboundTrunk)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			params.TrunkID = trunkID
			params.Deps.DialerFactory = func() (dialer.Dialer, error) {
				return dialer.NewClient(cfg.Dialer.BaseURL, token, nil)
			}
		}

		decision, err := resolveUIMode(*uiMode, *dryRun, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{})
			params.Deps.Observer = controller
		} else {
			params.Deps.Observer = &plainObserver{out: stdout}
		}

		results, err := runCampaign(context.Background(), params)
		controller.Close()
		controller.Wait()
		if err != nil {
			fmt.Fprintf(stderr, "Dial failed: %v\n", err)
			return ExitError
		}
		if decision.useLive {
			summary := results.Summary
			fmt.Fprintf(stdout, "Run %s: dispatched %d, failed %d, already complete %d\n",
				results.RunID, summary.Dispatched, summary.Failed, summary.Complete)
		}
		if results.Summary.Failed > 0 {
			return ExitError
		}
		return ExitOK
	}
}
