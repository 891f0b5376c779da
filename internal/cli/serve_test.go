package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"canvass/internal/reportserver"
)

// TestServeCommandRequiresDBPath verifies serve fails without an archive
// argument.
func TestServeCommandRequiresDBPath(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}

// TestServeCommandPassesConfig ensures serve forwards the parsed settings
// to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.duckdb")
	if err := os.WriteFile(dbPath, []byte("duckdb"), 0o644); err != nil {
		t.Fatalf("write temp db: %v", err)
	}

	var gotConfig reportserver.Config
	origServe := serveReport
	serveReport = func(_ context.Context, cfg reportserver.Config) error {
		gotConfig = cfg
		return nil
	}
	t.Cleanup(func() { serveReport = origServe })

	var stdout, stderr bytes.Buffer
	code := Run([]string{"serve", "--addr", "127.0.0.1:5050", dbPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, stderr.String())
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.DBPath != dbPath {
		t.Fatalf("unexpected db path: %s", gotConfig.DBPath)
	}
}
