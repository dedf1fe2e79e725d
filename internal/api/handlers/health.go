// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"
)

type HealthHandler struct {
	startTime time.Time
	artifacts ArtifactSource
}

func NewHealthHandler(artifacts ArtifactSource) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), artifacts: artifacts}
}

// Health reports OK once every artifact is bound, 503 before that
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, code := "OK", http.StatusOK
	if !h.artifacts.Loaded() {
		status, code = "UNAVAILABLE", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
		"uptime":    time.Since(h.startTime).String(),
		"artifacts": len(h.artifacts.Artifacts()),
	})
}

// Artifacts lists the bound model artifacts
func (h *HealthHandler) Artifacts(w http.ResponseWriter, r *http.Request) {
	infos := h.artifacts.Artifacts()
	body := map[string]any{
		"success":   true,
		"loaded":    h.artifacts.Loaded(),
		"artifacts": infos,
		"metadata": map[string]any{
			"count": len(infos),
		},
	}
	if at := h.artifacts.LoadedAt(); !at.IsZero() {
		body["loaded_at"] = at.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}
