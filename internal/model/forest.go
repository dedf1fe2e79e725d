package model

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/randytsao24/experienceintel/internal/artifact"
)

type forest struct {
	trees   []artifact.Tree
	width   int
	outputs int
}

func newForestCore(doc *artifact.Document, outputs int) forest {
	return forest{trees: doc.Trees, width: len(doc.FeatureNames), outputs: outputs}
}

// leaf walks one tree to the leaf the row falls into
func leaf(t artifact.Tree, row []float64) []float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return n.Value
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// average returns the mean leaf value across all trees
func (f forest) average(row []float64) ([]float64, error) {
	if err := checkWidth(row, f.width); err != nil {
		return nil, err
	}
	sum := make([]float64, f.outputs)
	for _, t := range f.trees {
		floats.Add(sum, leaf(t, row))
	}
	floats.Scale(1/float64(len(f.trees)), sum)
	return sum, nil
}

// ForestClassifier averages per-tree class distributions
type ForestClassifier struct {
	forest
	classes []int
}

// ForestRegressor averages per-tree leaf values
type ForestRegressor struct {
	forest
}

func newForestRegressor(doc *artifact.Document) *ForestRegressor {
	return &ForestRegressor{forest: newForestCore(doc, 1)}
}

func newForestClassifier(doc *artifact.Document) *ForestClassifier {
	return &ForestClassifier{
		forest:  newForestCore(doc, len(doc.Classes)),
		classes: slices.Clone(doc.Classes),
	}
}

// PredictProba returns the mean class distribution, ordered like Classes
func (f *ForestClassifier) PredictProba(row []float64) ([]float64, error) {
	return f.average(row)
}

// Predict returns the most probable class; ties go to the earlier class
func (f *ForestClassifier) Predict(row []float64) (int, error) {
	proba, err := f.average(row)
	if err != nil {
		return 0, err
	}
	return f.classes[floats.MaxIdx(proba)], nil
}

func (f *ForestClassifier) Classes() []int { return slices.Clone(f.classes) }

// Predict returns the mean leaf value
func (f *ForestRegressor) Predict(row []float64) (float64, error) {
	mean, err := f.average(row)
	if err != nil {
		return 0, err
	}
	return mean[0], nil
}
