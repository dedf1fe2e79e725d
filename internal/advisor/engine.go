package advisor

import (
	"time"

	"github.com/randytsao24/experienceintel/internal/metrics"
	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/widgets"
)

const (
	DashboardTitle    = "🧠 AI-Powered Experience Intelligence System"
	DashboardSubtitle = "Analytics + AI to predict Satisfaction, Churn & Engagement"
)

// Models bundles the three prediction contracts the dashboard needs
type Models interface {
	TaxiModel
	ChurnModel
	EngagementModel
}

// Engine renders dashboards. It holds no per-render state.
type Engine struct {
	taxi       TaxiModel
	churn      ChurnModel
	engagement EngagementModel
	live       func() bool
}

// NewEngine creates an engine over m. live reports whether artifacts are loaded; nil means always.
func NewEngine(m Models, live func() bool) *Engine {
	if live == nil {
		live = func() bool { return true }
	}
	return &Engine{taxi: m, churn: m, engagement: m, live: live}
}

// Render computes every section for one set of control values.
// Any failure aborts the whole render.
func (e *Engine) Render(s widgets.State) (d *models.Dashboard, err error) {
	defer func(start time.Time) { metrics.RecordRender(start, err) }(time.Now())

	taxiRow := s.TaxiFeatures()
	taxi, err := AdviseTaxi(e.taxi, taxiRow)
	if err != nil {
		return nil, err
	}

	churn, err := AdviseChurn(e.churn, s.WazeFeatures(), taxi.Score)
	if err != nil {
		return nil, err
	}
	metrics.RiskTiers.WithLabelValues(churn.Risk.Level).Inc()

	engagement, err := AdviseEngagement(e.engagement, s.TikTokFeatures())
	if err != nil {
		return nil, err
	}
	metrics.RecordEngagement(engagement.Label)

	whatIf, err := WhatIf(e.taxi, taxiRow, taxi.Score)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Title:      DashboardTitle,
		Subtitle:   DashboardSubtitle,
		Status:     e.status(),
		Taxi:       taxi,
		Churn:      churn,
		Engagement: engagement,
		WhatIf:     whatIf,
	}, nil
}

func (e *Engine) status() []models.Metric {
	value := "Offline"
	if e.live() {
		value = "Live"
	}
	return []models.Metric{
		{Label: "🚕 Taxi Satisfaction AI", Value: value},
		{Label: "🧭 Waze Churn AI", Value: value},
		{Label: "📱 TikTok Engagement AI", Value: value},
	}
}
