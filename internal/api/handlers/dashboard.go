package handlers

import (
	"log/slog"
	"net/http"

	"github.com/randytsao24/experienceintel/internal/cache"
	"github.com/randytsao24/experienceintel/internal/metrics"
	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/widgets"
)

type DashboardHandler struct {
	engine DashboardRenderer
	page   PageRenderer
	styles StylesheetSource
	cache  *cache.Cache[*models.Dashboard]
}

func NewDashboardHandler(engine DashboardRenderer, page PageRenderer, styles StylesheetSource, c *cache.Cache[*models.Dashboard]) *DashboardHandler {
	return &DashboardHandler{engine: engine, page: page, styles: styles, cache: c}
}

// render returns the dashboard for s, memoised by the state key
func (h *DashboardHandler) render(s widgets.State) (*models.Dashboard, error) {
	d, hit, err := h.cache.GetOrLoad(s.Key(), func() (*models.Dashboard, error) {
		return h.engine.Render(s)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return d, nil
}

// Page renders the HTML dashboard for the query-string controls
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	s := widgets.Parse(r.URL.Query())
	d, err := h.render(s)
	if err != nil {
		slog.Error("dashboard render failed", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "Dashboard unavailable: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Render(w, d, s); err != nil {
		slog.Error("page render failed", "error", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "Dashboard unavailable: "+err.Error(), http.StatusInternalServerError)
	}
}

// JSON returns the dashboard for the query-string controls
func (h *DashboardHandler) JSON(w http.ResponseWriter, r *http.Request) {
	s := widgets.Parse(r.URL.Query())
	d, err := h.render(s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Render failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"state":     s,
		"dashboard": d,
	})
}

// Widgets describes every control, populated from the query string
func (h *DashboardHandler) Widgets(w http.ResponseWriter, r *http.Request) {
	s := widgets.Parse(r.URL.Query())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"defaults": widgets.Default(),
		"state":    s,
		"controls": widgets.Controls(s),
	})
}

// Stylesheet serves the dashboard CSS
func (h *DashboardHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := h.styles.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Stylesheet unavailable", err)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(css))
}
