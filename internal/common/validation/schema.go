// internal/common/validation/schema.go
package validation

import (
	"github.com/xeipuuv/gojsonschema"
)

// responseSchema describes the expected shape of the assistant endpoint
// response. Validation is advisory only: the normalizer defaults every
// missing or malformed field, so mismatches are logged, never fatal.
var responseSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"response":   map[string]interface{}{"type": "string"},
		"session_id": map[string]interface{}{"type": "string"},
		"user_id":    map[string]interface{}{"type": "string"},
		"result": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":        map[string]interface{}{"type": "string"},
					"propertyType": map[string]interface{}{"type": "string"},
					"price":        map[string]interface{}{"type": []string{"number", "string"}},
					"area":         map[string]interface{}{"type": []string{"number", "string"}},
					"images": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"address": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"street":   map[string]interface{}{"type": "string"},
								"ward":     map[string]interface{}{"type": "string"},
								"district": map[string]interface{}{"type": "string"},
								"city":     map[string]interface{}{"type": "string"},
								"coordinates": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"lat": map[string]interface{}{"type": "number"},
										"lng": map[string]interface{}{"type": "number"},
									},
								},
							},
						},
					},
				},
			},
		},
	},
	"required": []string{"response"},
}

// CheckResponse validates a decoded assistant response body against the
// expected schema and returns a list of human-readable deviations. An empty
// list means the payload matched.
func CheckResponse(body []byte) []string {
	schemaLoader := gojsonschema.NewGoLoader(responseSchema)
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []string{err.Error()}
	}
	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues
}
