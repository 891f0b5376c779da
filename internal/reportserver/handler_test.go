package reportserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"canvass/internal/archive"
)

func writeTempArchive(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "archive.duckdb")
	store, err := archive.Open(dbPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	campaignID, err := store.UpsertCampaign(ctx,
		archive.Campaign{Sheet: "s.csv", QuestionsFile: "q.yml"}, time.Now())
	if err != nil {
		t.Fatalf("upsert campaign: %v", err)
	}
	_, err = store.InsertSession(ctx, archive.SessionRecord{
		CampaignID: campaignID,
		RowIndex:   1,
		Phone:      "+15550001",
		Status:     "Completed",
		Complete:   true,
		Answers:    map[string]string{"q1": "30"},
	})
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	return dbPath
}

// TestNewHandlerServesHTML ensures the root path returns the report page.
func TestNewHandlerServesHTML(t *testing.T) {
	handler, err := NewHandler(Config{DBPath: writeTempArchive(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if !strings.Contains(body, "/api/summary") || !strings.Contains(body, "/data/db.duckdb") {
		t.Fatalf("expected links to summary and database, got %s", body)
	}
}

// TestNewHandlerServesSummary ensures the summary endpoint reports archive counts.
func TestNewHandlerServesSummary(t *testing.T) {
	handler, err := NewHandler(Config{DBPath: writeTempArchive(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/summary", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var summary archive.Summary
	if err := json.Unmarshal(resp.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.Campaigns != 1 || summary.Sessions != 1 || summary.Answers != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

// TestNewHandlerServesDatabase ensures the DuckDB endpoint returns the file.
func TestNewHandlerServesDatabase(t *testing.T) {
	handler, err := NewHandler(Config{DBPath: writeTempArchive(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/data/db.duckdb", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected non-empty database payload")
	}
}

// TestNewHandlerRejectsNonGet verifies the data endpoints only accept GET.
func TestNewHandlerRejectsNonGet(t *testing.T) {
	handler, err := NewHandler(Config{DBPath: writeTempArchive(t)})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	for _, path := range []string{"/api/summary", "/data/db.duckdb"} {
		req := httptest.NewRequest(http.MethodPost, "http://example.com"+path, nil)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405 for POST %s, got %d", path, resp.Code)
		}
	}
}

// TestNewHandlerRequiresDBPath verifies configuration validation.
func TestNewHandlerRequiresDBPath(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected db path error")
	}
}
