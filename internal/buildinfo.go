package internal

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/jasonlovesdoggo/mousemanip"
)

// StatusFunc reports the tool's live state for the buildinfo endpoint. The
// value must encode as JSON.
type StatusFunc func() any

var startedAt = time.Now()

func buildInfoHandler(status StatusFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeBuildInfo(w, status)
	}
}

func writeBuildInfo(w http.ResponseWriter, status StatusFunc) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		slog.Error("can't read build info")
		http.Error(w, "no build info available", http.StatusInternalServerError)
		return
	}

	var st any
	if status != nil {
		st = status()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		BuildInfo *debug.BuildInfo `json:"build_info"`
		Version   string           `json:"version"`
		Uptime    string           `json:"uptime"`
		Status    any              `json:"status,omitempty"`
	}{bi, mousemanip.Version, time.Since(startedAt).Round(time.Second).String(), st}); err != nil {
		slog.Error("can't encode build info", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
