package reportserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"canvass/internal/archive"
)

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Canvass Campaign Report</title>
  </head>
  <body>
    <h1>Canvass Campaign Report</h1>
    <p>Fetch <a href="/api/summary">/api/summary</a> for archive counts or
    download <a href="/data/db.duckdb">the archive database</a> for ad-hoc
    queries.</p>
  </body>
</html>`

// NewHandler builds the HTTP handler for the report page, the summary
// endpoint, and the DuckDB download. The archive at cfg.DBPath is opened
// lazily per summary request so the file can be replaced between runs.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("reportserver: db path is required")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.Handle("/api/summary", serveSummary(cfg.DBPath))
	mux.Handle("/data/db.duckdb", serveDatabase(cfg.DBPath))
	return mux, nil
}

// serveIndex writes the base HTML shell for the report page.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, indexHTML)
}

// serveSummary returns archive counts as JSON.
func serveSummary(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		store, err := archive.Open(dbPath)
		if err != nil {
			http.Error(w, "open archive: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer store.Close()

		summary, err := store.Summarize(r.Context())
		if err != nil {
			http.Error(w, "summarize archive: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(summary)
	})
}

// serveDatabase serves the DuckDB file from disk for browser-side processing.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
