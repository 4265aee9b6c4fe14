// internal/normalize/normalizer.go
package normalize

import (
	"encoding/json"
	"math"
	"strings"

	"realty-assistant/internal/models"

	"github.com/google/uuid"
)

const (
	// DefaultName is used when a record carries no title.
	DefaultName = "Bất động sản"
	// DefaultTypeDisplay is used when a record carries no property type.
	DefaultTypeDisplay = "Nhà ở"
	// DefaultImageURL is the fixed placeholder shown when a record has no images.
	DefaultImageURL = "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400"
)

// typeKeys maps known Vietnamese display types to the canonical keys the map
// marker palette is keyed by. Unknown displays keep their lowercased form and
// fall through to the palette's fallback color.
var typeKeys = map[string]string{
	"căn hộ":     "apartment",
	"chung cư":   "apartment",
	"nhà ở":      "house",
	"nhà":        "house",
	"đất":        "land",
	"đất đai":    "land",
	"thương mại": "commercial",
	"văn phòng":  "commercial",
}

// Normalize converts raw backend result records into canonical properties.
// It is pure and never fails: absent or malformed fields degrade to defaults,
// and every returned property has finite coordinates and a fresh unique id.
func Normalize(rawResult []json.RawMessage) []models.Property {
	out := make([]models.Property, 0, len(rawResult))
	for _, raw := range rawResult {
		var rec models.EstateRecord
		// A record that is not even a JSON object still yields a fully
		// defaulted property rather than failing the turn.
		_ = json.Unmarshal(raw, &rec)
		out = append(out, fromRecord(rec))
	}
	return out
}

// FromRecords converts already-decoded records; used by the demo catalog.
func FromRecords(records []models.EstateRecord) []models.Property {
	out := make([]models.Property, 0, len(records))
	for _, rec := range records {
		out = append(out, fromRecord(rec))
	}
	return out
}

func fromRecord(rec models.EstateRecord) models.Property {
	p := models.Property{
		ID:              uuid.NewString(),
		Name:            rec.Title,
		Description:     rec.Description,
		Price:           float64(rec.Price),
		PriceUnit:       rec.PriceUnit,
		Area:            float64(rec.Area),
		LegalStatus:     rec.LegalStatus,
		Direction:       rec.Direction,
		TransactionType: rec.TransactionType,
		Images:          rec.Images,
	}

	if p.Name == "" {
		p.Name = DefaultName
	}

	p.TypeDisplay = rec.PropertyType
	if p.TypeDisplay == "" {
		p.TypeDisplay = DefaultTypeDisplay
	}
	p.Type = typeKey(p.TypeDisplay)

	if len(rec.Address) > 0 {
		addr := rec.Address[0]
		p.Location = joinAddress(addr)
		p.Lat = finite(float64(addr.Coordinates.Lat))
		p.Lng = finite(float64(addr.Coordinates.Lng))
	}

	if len(rec.Images) > 0 && rec.Images[0] != "" {
		p.ImageURL = rec.Images[0]
	} else {
		p.ImageURL = DefaultImageURL
	}

	p.Price = finite(p.Price)
	p.Area = finite(p.Area)

	return p
}

// joinAddress builds the display location from structured address fields,
// dropping empty pieces so no leading or doubled separators appear.
func joinAddress(addr models.RecordAddress) string {
	pieces := make([]string, 0, 4)
	for _, part := range []string{addr.Street, addr.Ward, addr.District, addr.City} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			pieces = append(pieces, trimmed)
		}
	}
	return strings.Join(pieces, ", ")
}

func typeKey(display string) string {
	lower := strings.ToLower(strings.TrimSpace(display))
	if key, ok := typeKeys[lower]; ok {
		return key
	}
	return lower
}

// finite coerces NaN and infinities to zero so the map view never receives a
// coordinate it cannot render.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
