// Package predict loads the dashboard's model artifacts and exposes typed prediction calls
package predict

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/randytsao24/experienceintel/internal/artifact"
	"github.com/randytsao24/experienceintel/internal/features"
	"github.com/randytsao24/experienceintel/internal/metrics"
	"github.com/randytsao24/experienceintel/internal/model"
)

// ErrNotLoaded is returned by prediction calls before Load succeeds
var ErrNotLoaded = errors.New("model artifacts not loaded")

// Names are the artifact base names looked up in the model directory
type Names struct {
	Taxi        string `yaml:"taxi"`
	Churn       string `yaml:"churn"`
	ChurnScaler string `yaml:"churn_scaler"`
	Engagement  string `yaml:"engagement"`
}

// DefaultNames matches the file names the models were exported under
func DefaultNames() Names {
	return Names{
		Taxi:        "taxi_model",
		Churn:       "waze_model",
		ChurnScaler: "waze_scaler",
		Engagement:  "tiktok_model",
	}
}

// Documents is one set of decoded artifacts
type Documents struct {
	Taxi        *artifact.Document
	Churn       *artifact.Document
	ChurnScaler *artifact.Document
	Engagement  *artifact.Document
}

// Registry holds the bound estimators. It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	taxi        model.Regressor
	churnScaler model.Transformer
	churn       model.Classifier
	churnPos    int
	engagement  model.Classifier
	infos       []model.Info
	loadedAt    time.Time
	loaded      bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Load reads every artifact from dir and binds it to its feature schema
func (r *Registry) Load(dir string, names Names) error {
	var docs Documents
	targets := []struct {
		name string
		dst  **artifact.Document
	}{
		{names.Taxi, &docs.Taxi},
		{names.ChurnScaler, &docs.ChurnScaler},
		{names.Churn, &docs.Churn},
		{names.Engagement, &docs.Engagement},
	}
	for _, t := range targets {
		path, err := artifact.Resolve(dir, t.name)
		if err != nil {
			return err
		}
		doc, err := artifact.Load(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", t.name, err)
		}
		*t.dst = doc
	}
	return r.Bind(docs)
}

// Bind installs an already decoded set of artifacts
func (r *Registry) Bind(docs Documents) error {
	if docs.Taxi == nil || docs.Churn == nil || docs.ChurnScaler == nil || docs.Engagement == nil {
		return errors.New("incomplete artifact set")
	}

	taxi, taxiInfo, err := model.NewRegressor(docs.Taxi, features.TaxiSchema())
	if err != nil {
		return fmt.Errorf("binding taxi model: %w", err)
	}
	scaler, scalerInfo, err := model.NewTransformer(docs.ChurnScaler, features.WazeSchema())
	if err != nil {
		return fmt.Errorf("binding churn scaler: %w", err)
	}
	// the classifier consumes scaled rows, which keep the raw column names
	churn, churnInfo, err := model.NewClassifier(docs.Churn, features.WazeSchema())
	if err != nil {
		return fmt.Errorf("binding churn model: %w", err)
	}
	pos := slices.Index(churn.Classes(), 1)
	if pos < 0 {
		return fmt.Errorf("binding churn model: %w: no positive class 1 in %v", model.ErrSchemaMismatch, churn.Classes())
	}
	engagement, engagementInfo, err := model.NewClassifier(docs.Engagement, features.TikTokSchema())
	if err != nil {
		return fmt.Errorf("binding engagement model: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.taxi = taxi
	r.churnScaler = scaler
	r.churn = churn
	r.churnPos = pos
	r.engagement = engagement
	r.infos = []model.Info{taxiInfo, churnInfo, scalerInfo, engagementInfo}
	r.loadedAt = time.Now()
	r.loaded = true

	metrics.ArtifactsLoaded.Reset()
	for _, info := range r.infos {
		metrics.ArtifactsLoaded.WithLabelValues(info.Name, string(info.Kind), info.Version).Set(1)
	}
	return nil
}

// Loaded reports whether a complete artifact set is bound
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// LoadedAt returns when the current artifact set was bound
func (r *Registry) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// Artifacts returns metadata for every bound artifact
func (r *Registry) Artifacts() []model.Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.infos)
}
