package handlers

import (
	"net/http"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "experienceintel",
		"description": "Satisfaction, churn and engagement predictions with explanations",
		"version":     "1.0.0",
		"endpoints": map[string]string{
			"GET /":                        "HTML dashboard",
			"GET /assets/style.css":        "Dashboard stylesheet",
			"GET /api":                     "API information",
			"GET /health":                  "Health check",
			"GET /metrics":                 "Prometheus metrics",
			"GET /api/dashboard":           "Dashboard as JSON for the query-string controls",
			"GET /api/widgets":             "Control descriptors",
			"GET /api/artifacts":           "Loaded model artifacts",
			"POST /api/predict/taxi":       "Taxi satisfaction score and reasons",
			"POST /api/predict/churn":      "Churn probability, risk tier and actions",
			"POST /api/predict/engagement": "Engagement label and verdict",
			"POST /api/predict/whatif":     "Optimized trip score and delta",
		},
	})
}
