package tracker

import (
	"github.com/julianstephens/habitrack/internal/logger"
	"github.com/julianstephens/habitrack/internal/models"
)

// Layout returns the saved window geometry and column layout. Missing or
// unreadable keys fall back to defaults and readable ones are kept.
func (r *Repository) Layout() (models.Layout, error) {
	settings, err := r.store.GetSettings()
	if err != nil {
		return models.Layout{}, err
	}

	layout, err := models.MapToLayout(settings)
	if err != nil {
		logger.Warn("Ignoring unreadable layout settings", "error", err)
	}
	models.ApplyDefaultLayout(&layout)
	return layout, nil
}

// SaveLayout persists the window geometry and every column's width and position
func (r *Repository) SaveLayout(layout models.Layout) error {
	return r.store.SaveSettings(models.LayoutToMap(layout))
}
