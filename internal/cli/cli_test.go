package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCampaignFixture(t *testing.T, sheetRows string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	sheetPath := filepath.Join(dir, "survey_data.csv")
	sheetData := "PhoneNumber,Name,Answer,Status\n" + sheetRows
	if err := os.WriteFile(sheetPath, []byte(sheetData), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	questionsPath := filepath.Join(dir, "questions.yml")
	questions := "version: 1\nquestions:\n  - id: q1\n    prompt: \"Age?\"\n"
	if err := os.WriteFile(questionsPath, []byte(questions), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	configPath := filepath.Join(dir, ".canvass.yml")
	payload := `version: 1
campaign:
  sheet: survey_data.csv
  questions: questions.yml
dialer:
  base_url: https://telephony.example.com
agent:
  model: gpt-4o-mini
  instructions: "Conduct the survey politely."
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir, configPath
}

func TestRootHelp(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"--help"}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if err.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", err.String())
	}
	output := out.String()
	if !strings.Contains(output, "Usage:") {
		t.Fatalf("expected usage header, got %q", output)
	}
	for _, cmd := range commands {
		if !strings.Contains(output, cmd.Name) {
			t.Fatalf("expected command %q in output", cmd.Name)
		}
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	var out, err bytes.Buffer
	code := Run(nil, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Fatalf("expected usage output, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out, err bytes.Buffer
	code := Run([]string{"nope"}, &out, &err)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(err.String(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %q", err.String())
	}
}

func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		var out, err bytes.Buffer
		code := Run([]string{cmd.Name, "--help"}, &out, &err)
		if code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", cmd.Name, ExitOK, code)
		}
		if err.Len() != 0 {
			t.Fatalf("%s: expected no stderr output, got %q", cmd.Name, err.String())
		}
		for _, line := range cmd.Usage {
			if !strings.Contains(out.String(), line) {
				t.Fatalf("%s: expected usage line %q", cmd.Name, line)
			}
		}
	}
}
