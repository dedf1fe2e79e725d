package advisor

import (
	"fmt"

	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/models"
)

const (
	VerdictHigh = "High Engagement Content"
	VerdictLow  = "Low Engagement Risk"

	engagementInsight = "Short videos with high interaction intensity perform better."
)

// Verdict maps an engagement label to its alert
func Verdict(label int) (models.Alert, error) {
	switch label {
	case 1:
		return models.Alert{Severity: models.SeveritySuccess, Text: "🔥 " + VerdictHigh}, nil
	case 0:
		return models.Alert{Severity: models.SeverityWarning, Text: "📉 " + VerdictLow}, nil
	default:
		return models.Alert{}, fmt.Errorf("engagement label %d is not 0 or 1", label)
	}
}

// AdviseEngagement classifies a piece of content
func AdviseEngagement(m EngagementModel, f features.TikTokFeatures) (models.EngagementSection, error) {
	label, err := m.PredictClass(f)
	if err != nil {
		return models.EngagementSection{}, fmt.Errorf("predicting engagement: %w", err)
	}
	alert, err := Verdict(label)
	if err != nil {
		return models.EngagementSection{}, err
	}
	return models.EngagementSection{
		Inputs: f,
		Label:  label,
		High:   label == 1,
		Alert:  alert,
		Insight: models.Insight{
			Summary: engagementInsight,
		},
	}, nil
}
