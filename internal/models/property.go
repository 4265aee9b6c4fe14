// internal/models/property.go
package models

// Property is the canonical geospatial listing shown on the map panel. Every
// instance handed to the map view controller carries finite coordinates; the
// normalizer guarantees that missing or malformed values degrade to defaults.
type Property struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Location        string   `json:"location"`
	Lat             float64  `json:"lat"`
	Lng             float64  `json:"lng"`
	Price           float64  `json:"price"`
	PriceUnit       string   `json:"priceUnit,omitempty"`
	Type            string   `json:"type"`
	TypeDisplay     string   `json:"typeDisplay"`
	Area            float64  `json:"area"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"imageUrl"`
	Images          []string `json:"images,omitempty"`
	LegalStatus     string   `json:"legalStatus,omitempty"`
	Direction       string   `json:"direction,omitempty"`
	TransactionType string   `json:"transactionType,omitempty"`
}
