// internal/mapview/controller_test.go
package mapview

import (
	"testing"

	"realty-assistant/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func propertyAt(lat, lng float64) models.Property {
	return models.Property{ID: "p", Lat: lat, Lng: lng}
}

// ==========================
// Bounds Derivation Tests
// ==========================

func TestBounds_EmptyFallsBack(t *testing.T) {
	c := NewController()

	b := c.Bounds()
	assert.Equal(t, FallbackLat, b.CenterLat)
	assert.Equal(t, FallbackLng, b.CenterLng)
	assert.Equal(t, FallbackZoom, b.Zoom)
}

func TestBounds_MidpointOfBoundingBox(t *testing.T) {
	tests := []struct {
		name       string
		properties []models.Property
		centerLat  float64
		centerLng  float64
	}{
		{
			name:       "two latitudes",
			properties: []models.Property{propertyAt(10.0, 106.0), propertyAt(12.0, 106.0)},
			centerLat:  11.0,
			centerLng:  106.0,
		},
		{
			name:       "single property",
			properties: []models.Property{propertyAt(10.777, 106.699)},
			centerLat:  10.777,
			centerLng:  106.699,
		},
		{
			name: "midpoint ignores interior points",
			properties: []models.Property{
				propertyAt(10.0, 106.0),
				propertyAt(10.1, 106.9),
				propertyAt(11.0, 107.0),
			},
			centerLat: 10.5,
			centerLng: 106.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.Show(tt.properties)

			b := c.Bounds()
			assert.InDelta(t, tt.centerLat, b.CenterLat, 1e-9)
			assert.InDelta(t, tt.centerLng, b.CenterLng, 1e-9)
			assert.Equal(t, FittedZoom, b.Zoom)
		})
	}
}

// ==========================
// Visibility / Pane Tests
// ==========================

func TestShow_ReplacesAndOpens(t *testing.T) {
	c := NewController()
	assert.False(t, c.IsVisible())

	c.Show([]models.Property{propertyAt(1, 2), propertyAt(3, 4)})
	assert.True(t, c.IsVisible())
	assert.Len(t, c.Properties(), 2)

	// The next result set replaces, never merges.
	c.Show([]models.Property{propertyAt(5, 6)})
	assert.Len(t, c.Properties(), 1)
}

func TestClose_RetainsProperties(t *testing.T) {
	c := NewController()
	c.Show([]models.Property{propertyAt(1, 2)})

	c.Close()
	assert.False(t, c.IsVisible())
	assert.Len(t, c.Properties(), 1)

	c.Open()
	assert.True(t, c.IsVisible())
	assert.Len(t, c.Properties(), 1)
}

func TestPane_DefaultsToMapOnShow(t *testing.T) {
	c := NewController()
	assert.Equal(t, PaneMap, c.Pane())

	c.SetPane(PaneDetail)
	assert.Equal(t, PaneDetail, c.Pane())

	// Close/Open toggles visibility without touching the pane...
	c.Close()
	c.Open()
	assert.Equal(t, PaneDetail, c.Pane())

	// ...but a new result set resets it to the map.
	c.Show([]models.Property{propertyAt(1, 2)})
	assert.Equal(t, PaneMap, c.Pane())
}

func TestSetPane_IgnoresUnknown(t *testing.T) {
	c := NewController()
	c.SetPane(Pane("sidebar"))
	assert.Equal(t, PaneMap, c.Pane())
}

// ==========================
// Marker Palette Tests
// ==========================

func TestMarkerColor(t *testing.T) {
	tests := []struct {
		propertyType string
		color        string
	}{
		{"apartment", "#0084FF"},
		{"house", "#22AA22"},
		{"land", "#FFAA00"},
		{"commercial", "#FF0000"},
		{"castle", MarkerFallbackColor},
		{"", MarkerFallbackColor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.color, MarkerColor(tt.propertyType), tt.propertyType)
	}
}
