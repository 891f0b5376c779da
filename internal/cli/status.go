package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"canvass/internal/config"
	"canvass/internal/sheet"
)

// runStatus builds the handler for the status command.
func runStatus(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: .canvass.yml)")
		if err := flags.Parse(args); err != nil {
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

		sheetPath := config.ResolvePath(filepath.Dir(resolved), cfg.Campaign.Sheet)
		rows, err := sheet.NewStore(sheetPath).Load()
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load sheet: %v\n", err)
			return ExitError
		}

		complete := 0
		for _, row := range rows {
			status := row.Status
			if status == "" && row.Answer != "" {
				status = sheet.StatusCompleted
			}
			if status == "" {
				status = "Pending"
			}
			if row.Complete() {
				complete++
			}
			name := row.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(stdout, "%3d  %-16s %-20s %s\n", row.Index, row.Phone, name, status)
		}
		fmt.Fprintf(stdout, "%d of %d contacts complete\n", complete, len(rows))
		return ExitOK
	}
}
