package advisor

import (
	"fmt"

	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/models"
)

// Optimized trip multipliers
const (
	OptimizedCostFactor     = 0.8
	OptimizedDurationFactor = 0.85
)

// Optimize returns the counterfactual trip: cheaper per km and shorter, same distance and peak flag
func Optimize(f features.TaxiFeatures) features.TaxiFeatures {
	f.CostPerKm *= OptimizedCostFactor
	f.TripDurationMin *= OptimizedDurationFactor
	return f
}

// WhatIf re-scores the optimized trip and reports the change against originalScore
func WhatIf(m TaxiModel, f features.TaxiFeatures, originalScore float64) (models.WhatIfSection, error) {
	optimized := Optimize(f)
	score, err := m.PredictTipRatio(optimized)
	if err != nil {
		return models.WhatIfSection{}, fmt.Errorf("predicting optimized tip ratio: %w", err)
	}
	delta := score - originalScore
	return models.WhatIfSection{
		Inputs:        optimized,
		OriginalScore: originalScore,
		Score:         score,
		Delta:         delta,
		Metric: models.Metric{
			Label: "Optimized Satisfaction Score",
			Value: fmt.Sprintf("%.2f", score),
			Delta: fmt.Sprintf("%.2f", delta),
		},
	}, nil
}
