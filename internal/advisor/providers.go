package advisor

import "github.com/randytsao24/experienceintel/internal/features"

// TaxiModel abstracts the taxi satisfaction regressor for testability.
type TaxiModel interface {
	PredictTipRatio(f features.TaxiFeatures) (float64, error)
}

// ChurnModel abstracts the churn scaler and classifier pair.
type ChurnModel interface {
	Scale(f features.WazeFeatures) ([]float64, error)
	PredictProbability(scaled []float64) (float64, error)
}

// EngagementModel abstracts the engagement classifier.
type EngagementModel interface {
	PredictClass(f features.TikTokFeatures) (int, error)
}
