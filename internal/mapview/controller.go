// internal/mapview/controller.go
package mapview

import (
	"sync"

	"realty-assistant/internal/common/metrics"
	"realty-assistant/internal/models"
)

// Pane selects which half of the panel is shown. The pane toggle is
// independent of panel visibility and resets to the map whenever a new result
// set is displayed.
type Pane string

const (
	PaneMap    Pane = "map"
	PaneDetail Pane = "detail"
)

// Fallback viewport over central Ho Chi Minh City, used when no properties
// are loaded.
const (
	FallbackLat  = 10.776
	FallbackLng  = 106.696
	FallbackZoom = 11
	FittedZoom   = 13
)

// markerColors keys the marker palette by canonical property type.
var markerColors = map[string]string{
	"apartment":  "#0084FF",
	"house":      "#22AA22",
	"land":       "#FFAA00",
	"commercial": "#FF0000",
}

// MarkerFallbackColor is used for unknown property types.
const MarkerFallbackColor = "#FF0000"

// Bounds is the derived viewport for the rendering surface.
type Bounds struct {
	CenterLat float64 `json:"centerLat"`
	CenterLng float64 `json:"centerLng"`
	Zoom      int     `json:"zoom"`
}

// Controller holds the property list and panel visibility state for one
// conversation. All mutation goes through the mutex; controllers are shared
// between the session controller and the HTTP surface.
type Controller struct {
	mu         sync.RWMutex
	properties []models.Property
	visible    bool
	pane       Pane
}

func NewController() *Controller {
	return &Controller{pane: PaneMap}
}

// Show replaces the property list with a new result set and opens the panel.
// Result sets are wholly replaced, never merged across turns.
func (c *Controller) Show(properties []models.Property) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.properties = properties
	c.visible = true
	c.pane = PaneMap
	metrics.MapPanelVisible.Set(1)
}

// Open re-opens the panel without touching the property list, restoring the
// last result set.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = true
	metrics.MapPanelVisible.Set(1)
}

// Close hides the panel. The property list is retained so reopening restores
// the last result set.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
	metrics.MapPanelVisible.Set(0)
}

// IsVisible reports whether the panel is currently shown.
func (c *Controller) IsVisible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

// Properties returns a copy of the current property list.
func (c *Controller) Properties() []models.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Property, len(c.properties))
	copy(out, c.properties)
	return out
}

// Pane returns the current pane mode.
func (c *Controller) Pane() Pane {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pane
}

// SetPane switches between the map and detail panes.
func (c *Controller) SetPane(p Pane) {
	if p != PaneMap && p != PaneDetail {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pane = p
}

// Bounds derives the viewport center and zoom from the current property set.
// With no properties it falls back to a fixed wide view; otherwise it centers
// on the bounding-box midpoint at a fixed closer zoom. This is a midpoint
// heuristic, not a true fit-to-bounds: zoom does not adapt to spread.
func (c *Controller) Bounds() Bounds {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.properties) == 0 {
		return Bounds{CenterLat: FallbackLat, CenterLng: FallbackLng, Zoom: FallbackZoom}
	}

	minLat, maxLat := c.properties[0].Lat, c.properties[0].Lat
	minLng, maxLng := c.properties[0].Lng, c.properties[0].Lng
	for _, p := range c.properties[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lng < minLng {
			minLng = p.Lng
		}
		if p.Lng > maxLng {
			maxLng = p.Lng
		}
	}

	return Bounds{
		CenterLat: (minLat + maxLat) / 2,
		CenterLng: (minLng + maxLng) / 2,
		Zoom:      FittedZoom,
	}
}

// MarkerColor returns the marker color for a canonical property type.
func MarkerColor(propertyType string) string {
	if color, ok := markerColors[propertyType]; ok {
		return color
	}
	return MarkerFallbackColor
}
