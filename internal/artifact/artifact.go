// Package artifact reads and writes fitted model parameter documents
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind names the estimator family a document was exported from
type Kind string

const (
	LinearRegressor        Kind = "linear_regressor"
	LogisticClassifier     Kind = "logistic_classifier"
	StandardScaler         Kind = "standard_scaler"
	TreeEnsembleClassifier Kind = "tree_ensemble_classifier"
	TreeEnsembleRegressor  Kind = "tree_ensemble_regressor"
)

var (
	ErrUnknownKind       = errors.New("unknown artifact kind")
	ErrUnsupportedFormat = errors.New("unsupported artifact format")
	ErrMalformed         = errors.New("malformed artifact")
	ErrNotFound          = errors.New("artifact not found")
)

// Document is the serialized form of one fitted estimator
type Document struct {
	Name         string    `json:"name"`
	Kind         Kind      `json:"kind"`
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names"`
	Coef         []float64 `json:"coef,omitempty"`
	Intercept    float64   `json:"intercept,omitempty"`
	Classes      []int     `json:"classes,omitempty"`
	Mean         []float64 `json:"mean,omitempty"`
	Scale        []float64 `json:"scale,omitempty"`
	Trees        []Tree    `json:"trees,omitempty"`
}

// Tree is a binary decision tree in flattened node-array form.
// A node is a leaf when Left == -1; otherwise rows with x[Feature] <= Threshold go Left.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is one decision or leaf node
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// IsLeaf reports whether the node terminates a path
func (n Node) IsLeaf() bool { return n.Left == -1 }

// Validate checks the document is internally consistent for its kind
func (d *Document) Validate() error {
	width := len(d.FeatureNames)
	if width == 0 {
		return fmt.Errorf("%w: %s has no feature_names", ErrMalformed, d.Name)
	}

	switch d.Kind {
	case LinearRegressor:
		if len(d.Coef) != width {
			return fmt.Errorf("%w: %s has %d coefficients for %d features", ErrMalformed, d.Name, len(d.Coef), width)
		}
	case LogisticClassifier:
		if len(d.Coef) != width {
			return fmt.Errorf("%w: %s has %d coefficients for %d features", ErrMalformed, d.Name, len(d.Coef), width)
		}
		if len(d.Classes) != 2 {
			return fmt.Errorf("%w: %s must declare exactly two classes", ErrMalformed, d.Name)
		}
	case StandardScaler:
		if len(d.Mean) != width || len(d.Scale) != width {
			return fmt.Errorf("%w: %s mean/scale length does not match %d features", ErrMalformed, d.Name, width)
		}
	case TreeEnsembleClassifier, TreeEnsembleRegressor:
		if len(d.Trees) == 0 {
			return fmt.Errorf("%w: %s has no trees", ErrMalformed, d.Name)
		}
		outputs := 1
		if d.Kind == TreeEnsembleClassifier {
			if len(d.Classes) < 2 {
				return fmt.Errorf("%w: %s must declare at least two classes", ErrMalformed, d.Name)
			}
			outputs = len(d.Classes)
		}
		for i, tree := range d.Trees {
			if err := tree.validate(width, outputs); err != nil {
				return fmt.Errorf("%w: %s tree %d: %v", ErrMalformed, d.Name, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	return nil
}

func (t Tree) validate(width, outputs int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}
	for i, n := range t.Nodes {
		if n.IsLeaf() {
			if len(n.Value) != outputs {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(n.Value), outputs)
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= width {
			return fmt.Errorf("node %d splits on feature %d", i, n.Feature)
		}
		// children always come after their parent, which also rules out cycles
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has invalid children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

// Format is an on-disk encoding
type Format string

const (
	JSON     Format = "json"
	Protobuf Format = "pb"
)

// extensions in resolution order
var extensions = []Format{JSON, Protobuf}

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "json":
		return JSON, nil
	case "pb", "binpb":
		return Protobuf, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads, decodes and validates the document at path
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact file: %w", err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Resolve finds <dir>/<name>.json or <dir>/<name>.pb, in that order
func Resolve(dir, name string) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+"."+string(ext))
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s in %s", ErrNotFound, name, dir)
}

// Write encodes doc in the format implied by path and writes it
func Write(path string, doc *Document) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact file: %w", err)
	}
	return nil
}
