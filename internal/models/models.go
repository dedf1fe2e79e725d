// Package models defines shared data types
package models

import "github.com/randytsao24/experienceintel/internal/features"

// Severity selects how an alert box is styled
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Metric is a labelled headline number
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Delta string `json:"delta,omitempty"`
}

// Alert is a coloured status line
type Alert struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Insight is the content of a collapsible explanation panel
type Insight struct {
	Summary string   `json:"summary"`
	Heading string   `json:"heading"`
	Items   []string `json:"items,omitempty"`
}

// TaxiSection is the taxi satisfaction advisor output
type TaxiSection struct {
	Inputs  features.TaxiFeatures `json:"inputs"`
	Score   float64               `json:"score"`
	Metric  Metric                `json:"metric"`
	Reasons []string              `json:"reasons"`
	Insight Insight               `json:"insight"`
}

// RiskTier is one churn risk bucket
type RiskTier struct {
	Level    string   `json:"level"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// ChurnSection is the churn risk advisor output
type ChurnSection struct {
	Inputs      features.WazeFeatures `json:"inputs"`
	Probability float64               `json:"probability"`
	Metric      Metric                `json:"metric"`
	Risk        RiskTier              `json:"risk"`
	Alert       Alert                 `json:"alert"`
	Actions     []string              `json:"actions"`
	Insight     Insight               `json:"insight"`
	Assumptions []string              `json:"assumptions"`
}

// EngagementSection is the engagement advisor output
type EngagementSection struct {
	Inputs  features.TikTokFeatures `json:"inputs"`
	Label   int                     `json:"label"`
	High    bool                    `json:"high"`
	Alert   Alert                   `json:"alert"`
	Insight Insight                 `json:"insight"`
}

// WhatIfSection is the optimized-trip counterfactual
type WhatIfSection struct {
	Inputs        features.TaxiFeatures `json:"inputs"`
	OriginalScore float64               `json:"original_score"`
	Score         float64               `json:"score"`
	Delta         float64               `json:"delta"`
	Metric        Metric                `json:"metric"`
}

// Dashboard is one full render of the page
type Dashboard struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Status     []Metric          `json:"status"`
	Taxi       TaxiSection       `json:"taxi"`
	Churn      ChurnSection      `json:"churn"`
	Engagement EngagementSection `json:"engagement"`
	WhatIf     WhatIfSection     `json:"what_if"`
}
