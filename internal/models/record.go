// internal/models/record.go
package models

import "encoding/json"

// FlexFloat accepts JSON number, numeric string or null. Backend result
// records are loosely typed, so numeric fields are decoded defensively and
// default to zero instead of failing the turn.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = 0
			return nil
		}
		var num json.Number = json.Number(s)
		v, err := num.Float64()
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// Coordinates of an address.
type Coordinates struct {
	Lat FlexFloat `json:"lat"`
	Lng FlexFloat `json:"lng"`
}

// RecordAddress is one structured address entry of a backend record.
type RecordAddress struct {
	Street      string      `json:"street"`
	Ward        string      `json:"ward"`
	District    string      `json:"district"`
	City        string      `json:"city"`
	Coordinates Coordinates `json:"coordinates"`
}

// EstateRecord is a raw backend result record. Every field is optional;
// normalization produces a fully-defaulted Property from whatever is present.
type EstateRecord struct {
	Title           string          `json:"title"`
	Address         []RecordAddress `json:"address"`
	Description     string          `json:"description"`
	PropertyType    string          `json:"propertyType"`
	TransactionType string          `json:"transactionType"`
	LegalStatus     string          `json:"legalStatus"`
	Price           FlexFloat       `json:"price"`
	PriceUnit       string          `json:"priceUnit"`
	Area            FlexFloat       `json:"area"`
	Direction       string          `json:"direction"`
	Images          []string        `json:"images"`
}
