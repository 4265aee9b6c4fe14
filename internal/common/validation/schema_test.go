// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantClean bool
	}{
		{
			name:      "full valid payload",
			body:      `{"response": "ok", "session_id": "s1", "user_id": "u1", "result": [{"title": "A", "price": 3.5, "area": 120}]}`,
			wantClean: true,
		},
		{
			name:      "result omitted",
			body:      `{"response": "Chào bạn!", "session_id": "s1", "user_id": "u1"}`,
			wantClean: true,
		},
		{
			name:      "numeric string price is tolerated",
			body:      `{"response": "ok", "result": [{"price": "3.5"}]}`,
			wantClean: true,
		},
		{
			name:      "missing response field",
			body:      `{"session_id": "s1"}`,
			wantClean: false,
		},
		{
			name:      "result is not an array",
			body:      `{"response": "ok", "result": {"title": "A"}}`,
			wantClean: false,
		},
		{
			name:      "record with wrong field types",
			body:      `{"response": "ok", "result": [{"title": 7, "price": true}]}`,
			wantClean: false,
		},
		{
			name:      "not json at all",
			body:      `{"response": `,
			wantClean: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := CheckResponse([]byte(tt.body))
			if tt.wantClean {
				assert.Empty(t, issues)
			} else {
				assert.NotEmpty(t, issues)
			}
		})
	}
}
