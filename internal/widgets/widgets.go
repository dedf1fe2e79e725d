// Package widgets holds the dashboard's control values and their parsing from request parameters
package widgets

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/randytsao24/experienceintel/internal/features"
)

// Select box options
const (
	PeakNo  = "No"
	PeakYes = "Yes"

	DeviceAndroid = "Android"
	DeviceIOS     = "iOS"
)

// State is the value of every control on the page
type State struct {
	Distance    float64 `json:"distance"`
	Duration    int     `json:"duration"`
	CostPerKm   float64 `json:"cost_per_km"`
	Peak        string  `json:"peak"`
	Sessions    float64 `json:"sessions"`
	Favorite    float64 `json:"favorite"`
	Inactive    float64 `json:"inactive"`
	Consistency float64 `json:"driving_consistency"`
	Device      string  `json:"device"`
	Views       float64 `json:"views_per_sec"`
	Interaction float64 `json:"interaction"`
	Short       bool    `json:"short"`
	Verified    bool    `json:"verified"`
	Banned      bool    `json:"banned"`
}

// Kind is the control type
type Kind string

const (
	Slider   Kind = "slider"
	Select   Kind = "select"
	Checkbox Kind = "checkbox"
)

// Section groups controls under an advisor heading
type Section string

const (
	SectionTaxi       Section = "taxi"
	SectionChurn      Section = "churn"
	SectionEngagement Section = "engagement"
)

type slider struct {
	name    string
	label   string
	section Section
	min     float64
	max     float64
	step    float64
	def     float64
	integer bool
}

var sliders = []slider{
	{"distance", "Trip Distance (km)", SectionTaxi, 1, 50, 0.01, 12, false},
	{"duration", "Trip Duration (minutes)", SectionTaxi, 5, 120, 1, 35, true},
	{"cost_per_km", "Cost per KM", SectionTaxi, 5, 50, 0.01, 15, false},
	{"sessions", "Sessions per Day", SectionChurn, 0, 10, 0.01, 1.2, false},
	{"favorite", "Favorite Navigation Ratio", SectionChurn, 0, 1, 0.01, 0.4, false},
	{"inactive", "Inactive Ratio", SectionChurn, 0, 1, 0.01, 0.3, false},
	{"driving_consistency", "Driving Consistency", SectionChurn, 0, 1, 0.01, 0.6, false},
	{"views_per_sec", "Views per Second", SectionEngagement, 0, 500, 0.01, 60, false},
	{"interaction", "Interaction Intensity", SectionEngagement, 0, 10, 0.01, 1.5, false},
}

type selectBox struct {
	name    string
	label   string
	section Section
	options []string
}

var selects = []selectBox{
	{"peak", "Peak Hour?", SectionTaxi, []string{PeakNo, PeakYes}},
	{"device", "Device", SectionChurn, []string{DeviceAndroid, DeviceIOS}},
}

type checkbox struct {
	name    string
	label   string
	section Section
}

var checkboxes = []checkbox{
	{"short", "Short Video (<30s)", SectionEngagement},
	{"verified", "Verified Creator", SectionEngagement},
	{"banned", "Author Banned", SectionEngagement},
}

// Default returns the initial control values
func Default() State {
	return State{
		Distance:    12,
		Duration:    35,
		CostPerKm:   15,
		Peak:        PeakNo,
		Sessions:    1.2,
		Favorite:    0.4,
		Inactive:    0.3,
		Consistency: 0.6,
		Device:      DeviceAndroid,
		Views:       60,
		Interaction: 1.5,
	}
}

// Parse reads control values from query or form parameters.
// Missing or unparseable values fall back to defaults; numbers are clamped to the slider range.
func Parse(v url.Values) State {
	s := Default()
	sliderVals := make(map[string]float64, len(sliders))
	for _, sl := range sliders {
		sliderVals[sl.name] = sl.parse(v.Get(sl.name))
	}

	s.Distance = sliderVals["distance"]
	s.Duration = int(sliderVals["duration"])
	s.CostPerKm = sliderVals["cost_per_km"]
	s.Sessions = sliderVals["sessions"]
	s.Favorite = sliderVals["favorite"]
	s.Inactive = sliderVals["inactive"]
	s.Consistency = sliderVals["driving_consistency"]
	s.Views = sliderVals["views_per_sec"]
	s.Interaction = sliderVals["interaction"]

	s.Peak = selects[0].parse(v.Get("peak"))
	s.Device = selects[1].parse(v.Get("device"))

	s.Short = parseBool(v.Get("short"))
	s.Verified = parseBool(v.Get("verified"))
	s.Banned = parseBool(v.Get("banned"))
	return s
}

func (sl slider) parse(str string) float64 {
	if str == "" {
		return sl.def
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil || math.IsNaN(val) {
		return sl.def
	}
	if sl.integer {
		val = math.Round(val)
	}
	if val < sl.min {
		return sl.min
	}
	if val > sl.max {
		return sl.max
	}
	return val
}

func (sb selectBox) parse(str string) string {
	for _, opt := range sb.options {
		if strings.EqualFold(strings.TrimSpace(str), opt) {
			return opt
		}
	}
	return sb.options[0]
}

func parseBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Key is a canonical encoding of the state, equal for equal control values
func (s State) Key() string {
	return fmt.Sprintf("%g|%d|%g|%s|%g|%g|%g|%g|%s|%g|%g|%t|%t|%t",
		s.Distance, s.Duration, s.CostPerKm, s.Peak,
		s.Sessions, s.Favorite, s.Inactive, s.Consistency, s.Device,
		s.Views, s.Interaction, s.Short, s.Verified, s.Banned)
}

// Query encodes the state as URL parameters accepted by Parse
func (s State) Query() url.Values {
	v := url.Values{}
	v.Set("distance", strconv.FormatFloat(s.Distance, 'g', -1, 64))
	v.Set("duration", strconv.Itoa(s.Duration))
	v.Set("cost_per_km", strconv.FormatFloat(s.CostPerKm, 'g', -1, 64))
	v.Set("peak", s.Peak)
	v.Set("sessions", strconv.FormatFloat(s.Sessions, 'g', -1, 64))
	v.Set("favorite", strconv.FormatFloat(s.Favorite, 'g', -1, 64))
	v.Set("inactive", strconv.FormatFloat(s.Inactive, 'g', -1, 64))
	v.Set("driving_consistency", strconv.FormatFloat(s.Consistency, 'g', -1, 64))
	v.Set("device", s.Device)
	v.Set("views_per_sec", strconv.FormatFloat(s.Views, 'g', -1, 64))
	v.Set("interaction", strconv.FormatFloat(s.Interaction, 'g', -1, 64))
	if s.Short {
		v.Set("short", "on")
	}
	if s.Verified {
		v.Set("verified", "on")
	}
	if s.Banned {
		v.Set("banned", "on")
	}
	return v
}

// TaxiFeatures builds the taxi model row
func (s State) TaxiFeatures() features.TaxiFeatures {
	return features.TaxiFeatures{
		TripDistance:    s.Distance,
		TripDurationMin: float64(s.Duration),
		CostPerKm:       s.CostPerKm,
		PeakHour:        features.Flag(s.Peak == PeakYes),
	}
}

// WazeFeatures builds the churn model row; km_per_drive is always features.KmPerDrivePlaceholder
func (s State) WazeFeatures() features.WazeFeatures {
	return features.WazeFeatures{
		SessionsPerDay:     s.Sessions,
		KmPerDrive:         features.KmPerDrivePlaceholder,
		FavoriteRatio:      s.Favorite,
		InactiveRatio:      s.Inactive,
		DrivingConsistency: s.Consistency,
		DeviceAndroid:      features.Flag(s.Device == DeviceAndroid),
	}
}

// TikTokFeatures builds the engagement model row
func (s State) TikTokFeatures() features.TikTokFeatures {
	return features.TikTokFeatures{
		ViewsPerSecond:       s.Views,
		InteractionIntensity: s.Interaction,
		ShortVideoFlag:       features.Flag(s.Short),
		VerifiedFlag:         features.Flag(s.Verified),
		BanFlag:              features.Flag(s.Banned),
	}
}
