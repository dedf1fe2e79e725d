// Package model evaluates fitted estimators exported as artifact documents
package model

import (
	"errors"
	"fmt"
	"slices"

	"github.com/randytsao24/experienceintel/internal/artifact"
	"github.com/randytsao24/experienceintel/internal/features"
)

// ErrSchemaMismatch is returned when an artifact was fitted on different columns than the caller supplies
var ErrSchemaMismatch = errors.New("artifact feature schema mismatch")

// ErrWrongKind is returned when a document is bound to an incompatible estimator role
var ErrWrongKind = errors.New("artifact kind cannot serve this role")

// Regressor produces a continuous score for one row
type Regressor interface {
	Predict(row []float64) (float64, error)
}

// Classifier produces class probabilities and labels for one row
type Classifier interface {
	PredictProba(row []float64) ([]float64, error)
	Predict(row []float64) (int, error)
	Classes() []int
}

// Transformer maps a row to a new row of the same width
type Transformer interface {
	Transform(row []float64) ([]float64, error)
}

// Info describes a bound artifact
type Info struct {
	Name     string        `json:"name"`
	Kind     artifact.Kind `json:"kind"`
	Version  string        `json:"version"`
	Features []string      `json:"features"`
}

func infoOf(doc *artifact.Document) Info {
	return Info{
		Name:     doc.Name,
		Kind:     doc.Kind,
		Version:  doc.Version,
		Features: slices.Clone(doc.FeatureNames),
	}
}

// bind checks the document against the schema the caller will feed it
func bind(doc *artifact.Document, schema features.Schema) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	if want := schema.Names(); !slices.Equal(doc.FeatureNames, want) {
		return fmt.Errorf("%w: %s expects %v, rows carry %v", ErrSchemaMismatch, doc.Name, doc.FeatureNames, want)
	}
	return nil
}

func checkWidth(row []float64, width int) error {
	if len(row) != width {
		return fmt.Errorf("%w: got %d values, want %d", features.ErrWidth, len(row), width)
	}
	return nil
}

// NewRegressor binds a regression artifact to a schema
func NewRegressor(doc *artifact.Document, schema features.Schema) (Regressor, Info, error) {
	if err := bind(doc, schema); err != nil {
		return nil, Info{}, err
	}
	switch doc.Kind {
	case artifact.LinearRegressor:
		return newLinear(doc), infoOf(doc), nil
	case artifact.TreeEnsembleRegressor:
		return newForestRegressor(doc), infoOf(doc), nil
	default:
		return nil, Info{}, fmt.Errorf("%w: %s is %s, need a regressor", ErrWrongKind, doc.Name, doc.Kind)
	}
}

// NewClassifier binds a classification artifact to a schema
func NewClassifier(doc *artifact.Document, schema features.Schema) (Classifier, Info, error) {
	if err := bind(doc, schema); err != nil {
		return nil, Info{}, err
	}
	switch doc.Kind {
	case artifact.LogisticClassifier:
		return newLogistic(doc), infoOf(doc), nil
	case artifact.TreeEnsembleClassifier:
		return newForestClassifier(doc), infoOf(doc), nil
	default:
		return nil, Info{}, fmt.Errorf("%w: %s is %s, need a classifier", ErrWrongKind, doc.Name, doc.Kind)
	}
}

// NewTransformer binds a preprocessing artifact to a schema
func NewTransformer(doc *artifact.Document, schema features.Schema) (Transformer, Info, error) {
	if err := bind(doc, schema); err != nil {
		return nil, Info{}, err
	}
	if doc.Kind != artifact.StandardScaler {
		return nil, Info{}, fmt.Errorf("%w: %s is %s, need a scaler", ErrWrongKind, doc.Name, doc.Kind)
	}
	return newScaler(doc), infoOf(doc), nil
}
