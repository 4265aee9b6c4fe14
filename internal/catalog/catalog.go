// internal/catalog/catalog.go
package catalog

import (
	"strings"

	"realty-assistant/internal/models"
)

// Entry is one demo listing. Entries are stored as raw estate records so the
// demo mode exercises the same normalization path as the live backend.
var entries = []models.EstateRecord{
	{
		Title:        "Căn hộ hiện đại trung tâm",
		PropertyType: "Căn hộ",
		Description:  "Căn hộ 3 phòng ngủ sang trọng với view thành phố",
		Price:        3.5,
		Area:         120,
		Address: []models.RecordAddress{{
			District:    "Quận 1",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.777, Lng: 106.699},
		}},
	},
	{
		Title:        "Nhà ở ngoại ô gia đình",
		PropertyType: "Nhà ở",
		Description:  "Nhà 4 phòng ngủ với sân vườn và hồ bơi",
		Price:        5.2,
		Area:         180,
		Address: []models.RecordAddress{{
			District:    "Quận 2",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.803, Lng: 106.775},
		}},
	},
	{
		Title:        "Không gian thương mại",
		PropertyType: "Thương mại",
		Description:  "Không gian thương mại đắc địa để bán lẻ hoặc văn phòng",
		Price:        2.8,
		Area:         250,
		Address: []models.RecordAddress{{
			District:    "Quận 3",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.789, Lng: 106.691},
		}},
	},
	{
		Title:        "Mảnh đất ven sông",
		PropertyType: "Đất đai",
		Description:  "Mảnh đất đẹp với view sông",
		Price:        4.1,
		Area:         500,
		Address: []models.RecordAddress{{
			District:    "Quận 7",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.783, Lng: 106.73},
		}},
	},
	{
		Title:        "Penthouse cao cấp",
		PropertyType: "Căn hộ",
		Description:  "Penthouse sang trọng với view toàn cảnh thành phố",
		Price:        8.9,
		Area:         350,
		Address: []models.RecordAddress{{
			District:    "Quận 1",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.785, Lng: 106.707},
		}},
	},
	{
		Title:        "Studio tiện nghi",
		PropertyType: "Căn hộ",
		Description:  "Studio hiện đại hoàn hảo cho các chuyên gia trẻ",
		Price:        1.5,
		Area:         45,
		Address: []models.RecordAddress{{
			District:    "Quận 4",
			City:        "TPHCM",
			Coordinates: models.Coordinates{Lat: 10.771, Lng: 106.697},
		}},
	},
}

// PriceRange filters by price in millions; nil bounds are open.
type PriceRange struct {
	Min *float64
	Max *float64
}

// Query selects demo listings. The zero value matches everything.
type Query struct {
	Location string
	Price    *PriceRange
	Type     string // apartment, house, land, commercial or all
}

// displayKeys mirrors the normalizer's canonical type keys for filtering.
var displayKeys = map[string]string{
	"Căn hộ":     "apartment",
	"Nhà ở":      "house",
	"Đất đai":    "land",
	"Thương mại": "commercial",
}

// Filter returns the demo records matching the query.
func Filter(q Query) []models.EstateRecord {
	out := make([]models.EstateRecord, 0, len(entries))
	for _, rec := range entries {
		if q.Location != "" && !matchesLocation(rec, q.Location) {
			continue
		}
		if q.Type != "" && q.Type != "all" && displayKeys[rec.PropertyType] != q.Type {
			continue
		}
		if q.Price != nil {
			if q.Price.Min != nil && float64(rec.Price) < *q.Price.Min {
				continue
			}
			if q.Price.Max != nil && float64(rec.Price) > *q.Price.Max {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func matchesLocation(rec models.EstateRecord, location string) bool {
	needle := strings.ToLower(location)
	for _, addr := range rec.Address {
		haystack := strings.ToLower(strings.Join([]string{addr.Street, addr.Ward, addr.District, addr.City}, ", "))
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
