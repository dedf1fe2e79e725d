// Package features defines the fixed-order feature rows fed to each model
package features

import (
	"errors"
	"fmt"
	"math"
)

// KmPerDrivePlaceholder is the value reported for km_per_drive in every churn row.
// The dashboard has no input for it; product has not confirmed whether zero is intended.
const KmPerDrivePlaceholder = 0.0

// Kind classifies a feature column
type Kind string

const (
	Continuous Kind = "continuous"
	Ratio      Kind = "ratio"
	Binary     Kind = "binary"
)

// Field describes one column of a feature row
type Field struct {
	Name string  `json:"name"`
	Kind Kind    `json:"kind"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Schema is an ordered list of fields. Order matters: artifacts are fitted against it.
type Schema []Field

// Names returns the column names in order
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Validate checks a row against the schema
func (s Schema) Validate(row []float64) error {
	if len(row) != len(s) {
		return fmt.Errorf("%w: row has %d values, schema has %d", ErrWidth, len(row), len(s))
	}
	for i, f := range s {
		v := row[i]
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return &FieldError{Field: f.Name, Value: v, Reason: "must be finite"}
		case f.Kind == Binary && v != 0 && v != 1:
			return &FieldError{Field: f.Name, Value: v, Reason: "must be 0 or 1"}
		case v < f.Min || v > f.Max:
			return &FieldError{Field: f.Name, Value: v, Reason: fmt.Sprintf("must be within [%g, %g]", f.Min, f.Max)}
		}
	}
	return nil
}

// ErrWidth is returned when a row does not have one value per schema field
var ErrWidth = errors.New("feature row width mismatch")

// FieldError reports a single out-of-contract feature value
type FieldError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("feature %s=%g %s", e.Field, e.Value, e.Reason)
}

// Row is implemented by every feature record
type Row interface {
	Schema() Schema
	Vector() []float64
}

// Check validates a row against its own schema
func Check(r Row) error {
	return r.Schema().Validate(r.Vector())
}

// Flag converts a boolean to the 0/1 encoding the models were fitted on
func Flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var taxiSchema = Schema{
	{Name: "trip_distance", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "trip_duration_min", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "cost_per_km", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "peak_hour", Kind: Binary, Min: 0, Max: 1},
}

var wazeSchema = Schema{
	{Name: "sessions_per_day", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "km_per_drive", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "favorite_ratio", Kind: Ratio, Min: 0, Max: 1},
	{Name: "inactive_ratio", Kind: Ratio, Min: 0, Max: 1},
	{Name: "driving_consistency", Kind: Ratio, Min: 0, Max: 1},
	{Name: "device_android", Kind: Binary, Min: 0, Max: 1},
}

var tiktokSchema = Schema{
	{Name: "views_per_second", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "interaction_intensity", Kind: Continuous, Min: 0, Max: math.MaxFloat64},
	{Name: "short_video_flag", Kind: Binary, Min: 0, Max: 1},
	{Name: "verified_flag", Kind: Binary, Min: 0, Max: 1},
	{Name: "ban_flag", Kind: Binary, Min: 0, Max: 1},
}

// TaxiSchema returns a copy of the taxi model schema
func TaxiSchema() Schema { return append(Schema(nil), taxiSchema...) }

// WazeSchema returns a copy of the churn model schema
func WazeSchema() Schema { return append(Schema(nil), wazeSchema...) }

// TikTokSchema returns a copy of the engagement model schema
func TikTokSchema() Schema { return append(Schema(nil), tiktokSchema...) }

// TaxiFeatures is the input row of the taxi satisfaction regressor
type TaxiFeatures struct {
	TripDistance    float64 `json:"trip_distance"`
	TripDurationMin float64 `json:"trip_duration_min"`
	CostPerKm       float64 `json:"cost_per_km"`
	PeakHour        float64 `json:"peak_hour"`
}

func (TaxiFeatures) Schema() Schema { return taxiSchema }

func (f TaxiFeatures) Vector() []float64 {
	return []float64{f.TripDistance, f.TripDurationMin, f.CostPerKm, f.PeakHour}
}

// IsPeak reports whether the trip happened during peak hours
func (f TaxiFeatures) IsPeak() bool { return f.PeakHour == 1 }

// WazeFeatures is the input row of the churn scaler and classifier
type WazeFeatures struct {
	SessionsPerDay     float64 `json:"sessions_per_day"`
	KmPerDrive         float64 `json:"km_per_drive"`
	FavoriteRatio      float64 `json:"favorite_ratio"`
	InactiveRatio      float64 `json:"inactive_ratio"`
	DrivingConsistency float64 `json:"driving_consistency"`
	DeviceAndroid      float64 `json:"device_android"`
}

func (WazeFeatures) Schema() Schema { return wazeSchema }

func (f WazeFeatures) Vector() []float64 {
	return []float64{
		f.SessionsPerDay,
		f.KmPerDrive,
		f.FavoriteRatio,
		f.InactiveRatio,
		f.DrivingConsistency,
		f.DeviceAndroid,
	}
}

// TikTokFeatures is the input row of the engagement classifier
type TikTokFeatures struct {
	ViewsPerSecond       float64 `json:"views_per_second"`
	InteractionIntensity float64 `json:"interaction_intensity"`
	ShortVideoFlag       float64 `json:"short_video_flag"`
	VerifiedFlag         float64 `json:"verified_flag"`
	BanFlag              float64 `json:"ban_flag"`
}

func (TikTokFeatures) Schema() Schema { return tiktokSchema }

func (f TikTokFeatures) Vector() []float64 {
	return []float64{
		f.ViewsPerSecond,
		f.InteractionIntensity,
		f.ShortVideoFlag,
		f.VerifiedFlag,
		f.BanFlag,
	}
}
