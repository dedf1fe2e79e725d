// Package advisor turns model outputs into the dashboard's scores, verdicts and explanations
package advisor

import (
	"fmt"

	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/models"
)

// Taxi rule thresholds
const (
	HighCostPerKm     = 18.0
	LongDurationMin   = 30.0
	LongDistanceKm    = 20.0
	taxiInsight       = "Longer trips and higher cost per KM reduce perceived satisfaction."
	taxiInsightHeader = "Why this satisfaction score?"
)

const (
	ReasonHighCost     = "High cost per KM makes the ride feel expensive."
	ReasonFatigue      = "Long travel duration increases passenger fatigue."
	ReasonPeakTraffic  = "Peak-hour traffic causes delays and frustration."
	ReasonLongDistance = "Very long distance trips reduce comfort."
	ReasonBalanced     = "Trip conditions look balanced and customer-friendly."
)

type taxiRule struct {
	applies func(features.TaxiFeatures) bool
	reason  string
}

// evaluated in order; every match contributes a reason
var taxiRules = []taxiRule{
	{func(f features.TaxiFeatures) bool { return f.CostPerKm > HighCostPerKm }, ReasonHighCost},
	{func(f features.TaxiFeatures) bool { return f.TripDurationMin > LongDurationMin }, ReasonFatigue},
	{func(f features.TaxiFeatures) bool { return f.IsPeak() }, ReasonPeakTraffic},
	{func(f features.TaxiFeatures) bool { return f.TripDistance > LongDistanceKm }, ReasonLongDistance},
}

// ExplainTaxi returns the reasons behind a trip's satisfaction score
func ExplainTaxi(f features.TaxiFeatures) []string {
	var reasons []string
	for _, rule := range taxiRules {
		if rule.applies(f) {
			reasons = append(reasons, rule.reason)
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, ReasonBalanced)
	}
	return reasons
}

// AdviseTaxi scores a trip and explains the score
func AdviseTaxi(m TaxiModel, f features.TaxiFeatures) (models.TaxiSection, error) {
	score, err := m.PredictTipRatio(f)
	if err != nil {
		return models.TaxiSection{}, fmt.Errorf("predicting tip ratio: %w", err)
	}
	reasons := ExplainTaxi(f)
	return models.TaxiSection{
		Inputs: f,
		Score:  score,
		Metric: models.Metric{
			Label: "💡 Predicted Tip Ratio (Satisfaction)",
			Value: fmt.Sprintf("%.2f", score),
		},
		Reasons: reasons,
		Insight: models.Insight{
			Summary: taxiInsight,
			Heading: "📌 " + taxiInsightHeader,
			Items:   reasons,
		},
	}, nil
}
