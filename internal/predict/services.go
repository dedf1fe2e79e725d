package predict

import (
	"fmt"
	"time"

	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/metrics"
)

// Metric label values, one per artifact role
const (
	modelTaxi        = "taxi"
	modelChurnScaler = "churn_scaler"
	modelChurn       = "churn"
	modelEngagement  = "engagement"
)

// PredictTipRatio returns the taxi model's satisfaction score
func (r *Registry) PredictTipRatio(f features.TaxiFeatures) (score float64, err error) {
	defer func(start time.Time) { metrics.RecordPrediction(modelTaxi, start, err) }(time.Now())

	r.mu.RLock()
	taxi := r.taxi
	r.mu.RUnlock()
	if taxi == nil {
		return 0, ErrNotLoaded
	}

	if err := features.Check(f); err != nil {
		return 0, err
	}
	score, err = taxi.Predict(f.Vector())
	if err != nil {
		return 0, fmt.Errorf("taxi model: %w", err)
	}
	return score, nil
}

// Scale standardizes a churn row with the fitted scaler
func (r *Registry) Scale(f features.WazeFeatures) (scaled []float64, err error) {
	defer func(start time.Time) { metrics.RecordPrediction(modelChurnScaler, start, err) }(time.Now())

	r.mu.RLock()
	scaler := r.churnScaler
	r.mu.RUnlock()
	if scaler == nil {
		return nil, ErrNotLoaded
	}

	if err := features.Check(f); err != nil {
		return nil, err
	}
	scaled, err = scaler.Transform(f.Vector())
	if err != nil {
		return nil, fmt.Errorf("churn scaler: %w", err)
	}
	return scaled, nil
}

// PredictProbability returns the churn probability for a scaled row
func (r *Registry) PredictProbability(scaled []float64) (p float64, err error) {
	defer func(start time.Time) { metrics.RecordPrediction(modelChurn, start, err) }(time.Now())

	r.mu.RLock()
	churn, pos := r.churn, r.churnPos
	r.mu.RUnlock()
	if churn == nil {
		return 0, ErrNotLoaded
	}

	proba, err := churn.PredictProba(scaled)
	if err != nil {
		return 0, fmt.Errorf("churn model: %w", err)
	}
	return proba[pos], nil
}

// PredictClass returns the engagement label, 0 or 1
func (r *Registry) PredictClass(f features.TikTokFeatures) (label int, err error) {
	defer func(start time.Time) { metrics.RecordPrediction(modelEngagement, start, err) }(time.Now())

	r.mu.RLock()
	engagement := r.engagement
	r.mu.RUnlock()
	if engagement == nil {
		return 0, ErrNotLoaded
	}

	if err := features.Check(f); err != nil {
		return 0, err
	}
	label, err = engagement.Predict(f.Vector())
	if err != nil {
		return 0, fmt.Errorf("engagement model: %w", err)
	}
	return label, nil
}
