package handlers

import (
	"io"
	"time"

	"github.com/randytsao24/experienceintel/internal/model"
	"github.com/randytsao24/experienceintel/internal/models"
	"github.com/randytsao24/experienceintel/internal/widgets"
)

// DashboardRenderer computes a dashboard for one set of control values.
type DashboardRenderer interface {
	Render(s widgets.State) (*models.Dashboard, error)
}

// PageRenderer writes a dashboard as HTML.
type PageRenderer interface {
	Render(w io.Writer, d *models.Dashboard, s widgets.State) error
}

// StylesheetSource supplies the page stylesheet.
type StylesheetSource interface {
	Load() (string, error)
}

// ArtifactSource reports which model artifacts are bound.
type ArtifactSource interface {
	Loaded() bool
	LoadedAt() time.Time
	Artifacts() []model.Info
}
