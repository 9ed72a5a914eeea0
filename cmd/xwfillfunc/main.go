// Command xwfillfunc is the HTTP service entry point: a Google Cloud
// Function exposing the fill operation as a stateless POST /fill call,
// sharing the library surface the CLI uses.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/charmbracelet/log"

	"github.com/aleris/xwords/across"
	"github.com/aleris/xwords/config"
	"github.com/aleris/xwords/fill"
	"github.com/aleris/xwords/grid"
	"github.com/aleris/xwords/wordindex"
	"github.com/aleris/xwords/wordlist"
)

// fillRequest is the POST /fill request body.
type fillRequest struct {
	Grid      string `json:"grid"`
	Wordlist  string `json:"wordlist"`
	Random    bool   `json:"random"`
	Seed      uint64 `json:"seed"`
	Format    string `json:"format"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copyright string `json:"copyright"`
}

// fillResponse is the POST /fill success body.
type fillResponse struct {
	Result string `json:"result"`
}

// errorResponse is the POST /fill error body, for any non-200 status.
type errorResponse struct {
	Error string `json:"error"`
}

var (
	cfg    = config.Load(os.Getenv("XWORDS_CONFIG"))
	loader = wordlist.NewLoader(cfg.Wordlist.Dir, cfg.Cloud.Project, cfg.Cloud.Dataset)
)

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("xwfillfunc: could not encode response", "err", err)
	}
}

func handleFill(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: fmt.Sprintf("method %s not allowed", r.Method)})
		return
	}

	var req fillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	result, status, err := execute(r.Context(), req)
	if err != nil {
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, fillResponse{Result: result})
}

func execute(ctx context.Context, req fillRequest) (result string, status int, err error) {
	g, err := grid.ParseGrid(req.Grid)
	if err != nil {
		return "", http.StatusUnprocessableEntity, err
	}

	wordlistName := req.Wordlist
	if wordlistName == "" {
		wordlistName = cfg.Wordlist.DefaultName
	}
	rawWords, err := loader.Load(ctx, wordlistName)
	if err != nil {
		return "", http.StatusUnprocessableEntity, err
	}
	ix := wordindex.BuildOrLoad(cfg.Wordlist.CacheDir, wordlistName, rawWords)

	timeout := cfg.FillTimeout()
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline) - 5*time.Second; remaining < timeout {
			timeout = remaining
		}
	}
	fillCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := fill.Options{Randomize: req.Random, ThroughputLogEvery: cfg.Fill.ThroughputLogEvery}
	if req.Random {
		opts.Seed = &req.Seed
	}

	filled, err := fill.Fill(fillCtx, g, ix, opts)
	switch {
	case err == nil:
	case errors.Is(err, fill.ErrInfeasible):
		return "", http.StatusConflict, err
	case errors.Is(err, fill.ErrCancelled):
		return "", http.StatusGatewayTimeout, err
	default:
		return "", http.StatusUnprocessableEntity, err
	}

	switch req.Format {
	case "across":
		title, author, copyrightText := req.Title, req.Author, req.Copyright
		if author == "" {
			author = "xwords"
		}
		if copyrightText == "" {
			copyrightText = fmt.Sprintf("%d Public domain.", time.Now().Year())
		}
		text, err := across.Render(filled, title, author, copyrightText)
		if err != nil {
			return "", http.StatusUnprocessableEntity, err
		}
		return text, http.StatusOK, nil
	default:
		return grid.RenderGrid(filled), http.StatusOK, nil
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/fill", handleFill)

	port := fmt.Sprintf("%d", cfg.Server.Port)
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	if err := funcframework.StartHostPort("", port); err != nil {
		log.Fatal("xwfillfunc: funcframework.StartHostPort failed", "err", err)
	}
}
