package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"canvass/internal/config"
	"canvass/internal/runner"
)

// TestDialCommandDryRunPlans verifies a dry run reports the plan without
// needing credentials.
func TestDialCommandDryRunPlans(t *testing.T) {
	_, configPath := writeCampaignFixture(t, "+15550001,Ada,,\n")
	var out, errOut bytes.Buffer
	code := Run([]string{"dial", "--config", configPath, "--dry-run"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "would dial +15550001") {
		t.Fatalf("expected plan line, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Planned 1 calls") {
		t.Fatalf("expected plan summary, got %q", out.String())
	}
}

// TestDialCommandRequiresCredentials verifies live dialing demands the API
// token and trunk id.
func TestDialCommandRequiresCredentials(t *testing.T) {
	_, configPath := writeCampaignFixture(t, "+15550001,Ada,,\n")
	t.Setenv(config.EnvDialerAPIToken, "")
	t.Setenv(config.EnvOutboundTrunk, "")

	var out, errOut bytes.Buffer
	code := Run([]string{"dial", "--config", configPath, "--ui", "plain"}, &out, &errOut)
	if code != ExitError {
		t.Fatalf("expected exit error, got %d", code)
	}
	if !strings.Contains(errOut.String(), config.EnvDialerAPIToken) {
		t.Fatalf("expected missing token error, got %q", errOut.String())
	}
}

// TestDialCommandRejectsInvalidUIMode verifies the ui flag is validated.
func TestDialCommandRejectsInvalidUIMode(t *testing.T) {
	_, configPath := writeCampaignFixture(t, "+15550001,Ada,,\n")
	t.Setenv(config.EnvDialerAPIToken, "token")
	t.Setenv(config.EnvOutboundTrunk, "trunk-1")

	var out, errOut bytes.Buffer
	code := Run([]string{"dial", "--config", configPath, "--ui", "nope"}, &out, &errOut)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d: %s", code, errOut.String())
	}
}

// TestDialCommandPassesRunParams verifies config and env land in the run
// parameters.
func TestDialCommandPassesRunParams(t *testing.T) {
	_, configPath := writeCampaignFixture(t, "+15550001,Ada,,\n")
	t.Setenv(config.EnvDialerAPIToken, "token")
	t.Setenv(config.EnvOutboundTrunk, "trunk-9")

	var gotParams runner.RunParams
	origRun := runCampaign
	runCampaign = func(_ context.Context, params runner.RunParams) (runner.Results, error) {
		gotParams = params
		return runner.Results{RunID: "run-1"}, nil
	}
	t.Cleanup(func() { runCampaign = origRun })

	var out, errOut bytes.Buffer
	code := Run([]string{"dial", "--config", configPath, "--ui", "plain"}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut.String())
	}
	if gotParams.TrunkID != "trunk-9" {
		t.Fatalf("expected trunk from env, got %q", gotParams.TrunkID)
	}
	if !strings.HasSuffix(gotParams.Sheet, "survey_data.csv") {
		t.Fatalf("expected resolved sheet path, got %q", gotParams.Sheet)
	}
	if gotParams.AgentName != "survey-agent" || gotParams.RoomPrefix != "survey-call-" {
		t.Fatalf("expected dialer defaults, got %+v", gotParams)
	}
	if gotParams.Deps.DialerFactory == nil {
		t.Fatalf("expected dialer factory to be set")
	}
}
