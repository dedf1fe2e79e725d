package model

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/randytsao24/experienceintel/internal/artifact"
)

// Linear is an ordinary least squares style regressor: w·x + b
type Linear struct {
	weights   *mat.VecDense
	intercept float64
}

func newLinear(doc *artifact.Document) *Linear {
	return &Linear{
		weights:   mat.NewVecDense(len(doc.Coef), slices.Clone(doc.Coef)),
		intercept: doc.Intercept,
	}
}

func (l *Linear) decision(row []float64) (float64, error) {
	if err := checkWidth(row, l.weights.Len()); err != nil {
		return 0, err
	}
	x := mat.NewVecDense(len(row), slices.Clone(row))
	return mat.Dot(l.weights, x) + l.intercept, nil
}

// Predict returns w·x + b
func (l *Linear) Predict(row []float64) (float64, error) {
	return l.decision(row)
}

// Logistic is a binary logistic regression classifier
type Logistic struct {
	linear  *Linear
	classes []int
}

func newLogistic(doc *artifact.Document) *Logistic {
	return &Logistic{linear: newLinear(doc), classes: slices.Clone(doc.Classes)}
}

// PredictProba returns [P(classes[0]), P(classes[1])]
func (l *Logistic) PredictProba(row []float64) ([]float64, error) {
	z, err := l.linear.decision(row)
	if err != nil {
		return nil, err
	}
	p := sigmoid(z)
	return []float64{1 - p, p}, nil
}

// Predict returns classes[1] when the decision function is positive
func (l *Logistic) Predict(row []float64) (int, error) {
	z, err := l.linear.decision(row)
	if err != nil {
		return 0, err
	}
	if z > 0 {
		return l.classes[1], nil
	}
	return l.classes[0], nil
}

func (l *Logistic) Classes() []int { return slices.Clone(l.classes) }

func sigmoid(z float64) float64 {
	// split on sign so exp never overflows
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// Scaler standardizes each column: (x - mean) / scale
type Scaler struct {
	mean  *mat.VecDense
	scale *mat.VecDense
}

func newScaler(doc *artifact.Document) *Scaler {
	scale := slices.Clone(doc.Scale)
	for i, s := range scale {
		// constant columns were fitted with zero variance
		if s == 0 {
			scale[i] = 1
		}
	}
	return &Scaler{
		mean:  mat.NewVecDense(len(doc.Mean), slices.Clone(doc.Mean)),
		scale: mat.NewVecDense(len(scale), scale),
	}
}

// Transform returns the standardized row
func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if err := checkWidth(row, s.mean.Len()); err != nil {
		return nil, err
	}
	out := mat.NewVecDense(len(row), slices.Clone(row))
	out.SubVec(out, s.mean)
	out.DivElemVec(out, s.scale)
	return out.RawVector().Data, nil
}
