package advisor

import (
	"fmt"

	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/models"
)

// Churn tier boundaries. A probability equal to a boundary belongs to the lower-risk tier.
const (
	HighRiskAbove   = 0.6
	MediumRiskAbove = 0.3
)

// LowSatisfactionBelow is the taxi score under which remediation actions are suggested
const LowSatisfactionBelow = 0.15

var (
	TierHigh     = models.RiskTier{Level: "high", Label: "High Risk User", Severity: models.SeverityError}
	TierMedium   = models.RiskTier{Level: "medium", Label: "Medium Risk User", Severity: models.SeverityWarning}
	TierRetained = models.RiskTier{Level: "retained", Label: "Likely Retained", Severity: models.SeveritySuccess}
)

var (
	remediationActions = []string{
		"Offer dynamic discounts during peak hours",
		"Optimize routes to reduce duration",
		"Improve driver communication & comfort",
	}
	statusQuoActions = []string{
		"Current pricing and timing look acceptable",
		"Maintain service quality",
	}
)

var tierIcons = map[string]string{
	TierHigh.Level:     "🚨 ",
	TierMedium.Level:   "⚠️ ",
	TierRetained.Level: "✅ ",
}

const churnInsight = "High inactivity and low favorite usage strongly increase churn risk."

// Bucket maps a churn probability to its risk tier
func Bucket(p float64) models.RiskTier {
	switch {
	case p > HighRiskAbove:
		return TierHigh
	case p > MediumRiskAbove:
		return TierMedium
	default:
		return TierRetained
	}
}

// Recommend returns the suggested actions given the taxi satisfaction score
func Recommend(taxiScore float64) []string {
	if taxiScore < LowSatisfactionBelow {
		return append([]string(nil), remediationActions...)
	}
	return append([]string(nil), statusQuoActions...)
}

// AdviseChurn scores a user's churn risk. taxiScore comes from AdviseTaxi.
// KmPerDrive is always replaced with features.KmPerDrivePlaceholder.
func AdviseChurn(m ChurnModel, f features.WazeFeatures, taxiScore float64) (models.ChurnSection, error) {
	f.KmPerDrive = features.KmPerDrivePlaceholder
	scaled, err := m.Scale(f)
	if err != nil {
		return models.ChurnSection{}, fmt.Errorf("scaling churn features: %w", err)
	}
	p, err := m.PredictProbability(scaled)
	if err != nil {
		return models.ChurnSection{}, fmt.Errorf("predicting churn probability: %w", err)
	}
	if p < 0 || p > 1 {
		return models.ChurnSection{}, fmt.Errorf("churn probability %g outside [0, 1]", p)
	}

	tier := Bucket(p)
	actions := Recommend(taxiScore)
	return models.ChurnSection{
		Inputs:      f,
		Probability: p,
		Metric: models.Metric{
			Label: "⚠️ Churn Probability",
			Value: fmt.Sprintf("%.1f%%", p*100),
		},
		Risk:    tier,
		Alert:   models.Alert{Severity: tier.Severity, Text: tierIcons[tier.Level] + tier.Label},
		Actions: actions,
		Insight: models.Insight{
			Summary: churnInsight,
			Heading: "✅ Suggested Actions",
			Items:   actions,
		},
		Assumptions: []string{
			fmt.Sprintf("km_per_drive is fixed at %.1f for every user pending product confirmation.", features.KmPerDrivePlaceholder),
		},
	}, nil
}
