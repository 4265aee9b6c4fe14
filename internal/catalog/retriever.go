// internal/catalog/retriever.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"realty-assistant/internal/assistant"
)

// realEstateKeywords trigger a listing result in demo mode, the same cue the
// original assistant used to decide when the map panel is worth opening.
var realEstateKeywords = []string{"bất động sản", "dự án", "nhà", "đất", "căn hộ"}

// MockRetriever serves turns from the built-in catalog without a backend.
// It implements assistant.Retriever for offline and demo configurations.
type MockRetriever struct{}

func NewMockRetriever() *MockRetriever {
	return &MockRetriever{}
}

func (m *MockRetriever) Retrieve(ctx context.Context, req *assistant.ChatRequest) (*assistant.ChatResponse, error) {
	resp := &assistant.ChatResponse{
		SessionID: req.SessionID,
		UserID:    req.UserID,
	}

	if !mentionsRealEstate(req.UserInput) {
		resp.Response = "Tôi là trợ lý bất động sản. Hãy hỏi tôi về nhà, đất hoặc căn hộ bạn quan tâm."
		return resp, nil
	}

	records := Filter(Query{Type: "all"})
	for _, rec := range records {
		raw, err := json.Marshal(rec)
		if err != nil {
			continue
		}
		resp.Result = append(resp.Result, raw)
	}

	resp.Response = fmt.Sprintf(
		"Tôi đã tìm thấy %d dự án bất động sản cho bạn. Kiểm tra bản đồ ở phía bên phải để xem các dự án với chi tiết, địa điểm và giá cả của chúng.",
		len(records),
	)
	return resp, nil
}

func mentionsRealEstate(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range realEstateKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
