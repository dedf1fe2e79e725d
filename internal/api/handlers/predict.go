package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/randytsao24/experienceintel/internal/advisor"
	"github.com/randytsao24/experienceintel/internal/features"
)

// PredictHandler exposes each advisor as a JSON endpoint
type PredictHandler struct {
	models advisor.Models
}

func NewPredictHandler(m advisor.Models) *PredictHandler {
	return &PredictHandler{models: m}
}

// churnRequest has no km_per_drive: the model always sees features.KmPerDrivePlaceholder
type churnRequest struct {
	SessionsPerDay     float64 `json:"sessions_per_day"`
	FavoriteRatio      float64 `json:"favorite_ratio"`
	InactiveRatio      float64 `json:"inactive_ratio"`
	DrivingConsistency float64 `json:"driving_consistency"`
	DeviceAndroid      float64 `json:"device_android"`
	TaxiScore          float64 `json:"taxi_score"`
}

var churnRequired = []string{
	"sessions_per_day", "favorite_ratio", "inactive_ratio", "driving_consistency", "device_android", "taxi_score",
}

func (c churnRequest) row() features.WazeFeatures {
	return features.WazeFeatures{
		SessionsPerDay:     c.SessionsPerDay,
		KmPerDrive:         features.KmPerDrivePlaceholder,
		FavoriteRatio:      c.FavoriteRatio,
		InactiveRatio:      c.InactiveRatio,
		DrivingConsistency: c.DrivingConsistency,
		DeviceAndroid:      c.DeviceAndroid,
	}
}

// decodeRow decodes and validates a feature row; it writes the 400 itself on failure
func decodeRow[T features.Row](w http.ResponseWriter, r *http.Request, dst *T) bool {
	required := (*dst).Schema().Names()
	if err := decodeBody(w, r, dst, required); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := features.Check(*dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid features", err)
		return false
	}
	return true
}

// fail maps an advisor error to a response
func (h *PredictHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if isClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid features", err)
		return
	}
	slog.Error("prediction failed", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
	writeError(w, http.StatusInternalServerError, "Prediction failed", err)
}

// Taxi scores a trip and explains the score
func (h *PredictHandler) Taxi(w http.ResponseWriter, r *http.Request) {
	var f features.TaxiFeatures
	if !decodeRow(w, r, &f) {
		return
	}
	section, err := advisor.AdviseTaxi(h.models, f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"taxi":    section,
	})
}

// Churn scores a user's churn risk given the taxi score it is paired with
func (h *PredictHandler) Churn(w http.ResponseWriter, r *http.Request) {
	var req churnRequest
	if err := decodeBody(w, r, &req, churnRequired); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	row := req.row()
	if err := features.Check(row); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid features", err)
		return
	}
	if math.IsNaN(req.TaxiScore) || math.IsInf(req.TaxiScore, 0) {
		writeError(w, http.StatusBadRequest, "Invalid features", errors.New("taxi_score must be finite"))
		return
	}

	section, err := advisor.AdviseChurn(h.models, row, req.TaxiScore)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"churn":   section,
	})
}

// Engagement classifies a piece of content
func (h *PredictHandler) Engagement(w http.ResponseWriter, r *http.Request) {
	var f features.TikTokFeatures
	if !decodeRow(w, r, &f) {
		return
	}
	section, err := advisor.AdviseEngagement(h.models, f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"engagement": section,
	})
}

// WhatIf scores the optimized version of a trip against the original
func (h *PredictHandler) WhatIf(w http.ResponseWriter, r *http.Request) {
	var f features.TaxiFeatures
	if !decodeRow(w, r, &f) {
		return
	}
	original, err := h.models.PredictTipRatio(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	section, err := advisor.WhatIf(h.models, f, original)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"what_if": section,
	})
}
