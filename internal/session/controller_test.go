// internal/session/controller_test.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"realty-assistant/internal/assistant"
	stderrors "realty-assistant/internal/common/errors"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/identity"
	"realty-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

// stubRetriever returns a canned response or error and records requests.
type stubRetriever struct {
	mu       sync.Mutex
	response *assistant.ChatResponse
	err      error
	requests []assistant.ChatRequest

	// blockUntil, when set, holds the call open until the channel closes.
	blockUntil chan struct{}
}

func (s *stubRetriever) Retrieve(ctx context.Context, req *assistant.ChatRequest) (*assistant.ChatResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, *req)
	block := s.blockUntil
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func (s *stubRetriever) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func createTestController(t *testing.T, retriever assistant.Retriever) *Controller {
	t.Helper()
	return NewController("chat-1", Deps{
		Retriever:     retriever,
		IdentityStore: identity.NewMemoryStore(),
		Logger:        logger.NewTestLogger(t),
	})
}

func resultRecords(t *testing.T, records ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(records))
	for _, r := range records {
		out = append(out, json.RawMessage(r))
	}
	return out
}

// ==========================
// Turn State Machine Tests
// ==========================

func TestSubmitText_EmptyInputIsNoOp(t *testing.T) {
	retriever := &stubRetriever{}
	c := createTestController(t, retriever)

	for _, input := range []string{"", "   ", "\n\t "} {
		require.NoError(t, c.SubmitText(context.Background(), input))
	}

	assert.Equal(t, StatusReady, c.Status())
	assert.Empty(t, c.Messages())
	assert.Zero(t, retriever.requestCount())
}

func TestSubmitText_SuccessfulTurn(t *testing.T) {
	retriever := &stubRetriever{
		response: &assistant.ChatResponse{
			Response:  "Đây là các dự án phù hợp.",
			SessionID: "s1",
			UserID:    "u1",
			Result:    resultRecords(t, `{"title": "A", "price": 100, "area": 50}`),
		},
	}
	c := createTestController(t, retriever)

	require.NoError(t, c.SubmitText(context.Background(), "Giá nhà ở Quận 1?"))

	// Transcript grows by exactly two: user turn then assistant turn.
	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, "Giá nhà ở Quận 1?", messages[0].Text())
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Equal(t, "Đây là các dự án phù hợp.", messages[1].Text())
	require.NotNil(t, messages[1].Metadata)
	assert.True(t, messages[1].Metadata.ShowMapButton)
	assert.False(t, messages[1].Metadata.CreatedAt.IsZero())

	assert.Equal(t, StatusReady, c.Status())
	assert.Equal(t, "s1", c.SessionID())

	// The result payload reached the map through the normalizer.
	assert.True(t, c.MapView().IsVisible())
	properties := c.MapView().Properties()
	require.Len(t, properties, 1)
	assert.Equal(t, "A", properties[0].Name)
	assert.Equal(t, 100.0, properties[0].Price)
	assert.Equal(t, 50.0, properties[0].Area)
}

func TestSubmitText_TrimsInput(t *testing.T) {
	retriever := &stubRetriever{response: &assistant.ChatResponse{Response: "ok"}}
	c := createTestController(t, retriever)

	require.NoError(t, c.SubmitText(context.Background(), "  nhà đất  "))

	require.Equal(t, 1, retriever.requestCount())
	assert.Equal(t, "nhà đất", retriever.requests[0].UserInput)
	assert.Equal(t, "nhà đất", c.Messages()[0].Text())
}

func TestSubmitText_SessionIDAdoption(t *testing.T) {
	retriever := &stubRetriever{response: &assistant.ChatResponse{Response: "ok", SessionID: "backend-1"}}
	c := createTestController(t, retriever)
	assert.Equal(t, "chat-1", c.SessionID())

	require.NoError(t, c.SubmitText(context.Background(), "xin chào nhà"))
	assert.Equal(t, "backend-1", c.SessionID())

	// Next request carries the adopted id.
	require.NoError(t, c.SubmitText(context.Background(), "tiếp tục nhé"))
	require.Equal(t, 2, retriever.requestCount())
	assert.Equal(t, "backend-1", retriever.requests[1].SessionID)
}

func TestSubmitText_NoResultLeavesMapAlone(t *testing.T) {
	retriever := &stubRetriever{response: &assistant.ChatResponse{Response: "Chào bạn!"}}
	c := createTestController(t, retriever)

	require.NoError(t, c.SubmitText(context.Background(), "xin chào"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	require.NotNil(t, messages[1].Metadata)
	assert.False(t, messages[1].Metadata.ShowMapButton)
	assert.False(t, c.MapView().IsVisible())
	assert.Empty(t, c.MapView().Properties())
}

func TestSubmitText_ResultReplacesPreviousTurn(t *testing.T) {
	retriever := &stubRetriever{
		response: &assistant.ChatResponse{
			Response: "lần một",
			Result:   resultRecords(t, `{"title": "A"}`, `{"title": "B"}`),
		},
	}
	c := createTestController(t, retriever)
	require.NoError(t, c.SubmitText(context.Background(), "nhà quận 1"))
	require.Len(t, c.MapView().Properties(), 2)

	retriever.mu.Lock()
	retriever.response = &assistant.ChatResponse{
		Response: "lần hai",
		Result:   resultRecords(t, `{"title": "C"}`),
	}
	retriever.mu.Unlock()

	require.NoError(t, c.SubmitText(context.Background(), "nhà quận 7"))
	properties := c.MapView().Properties()
	require.Len(t, properties, 1)
	assert.Equal(t, "C", properties[0].Name)
}

// ==========================
// Failure Handling Tests
// ==========================

func TestSubmitText_FailureAppendsApology(t *testing.T) {
	retriever := &stubRetriever{err: stderrors.NewBadStatusError(502, "bad gateway")}
	c := createTestController(t, retriever)

	require.NoError(t, c.SubmitText(context.Background(), "nhà đất quận 2"))

	messages := c.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleUser, messages[0].Role)
	assert.Equal(t, models.RoleAssistant, messages[1].Role)
	assert.Equal(t, ApologyText, messages[1].Text())
	assert.Equal(t, StatusReady, c.Status())
	assert.False(t, c.MapView().IsVisible())
}

func TestSubmitText_FailureLeavesPriorMapState(t *testing.T) {
	retriever := &stubRetriever{
		response: &assistant.ChatResponse{
			Response: "ok",
			Result:   resultRecords(t, `{"title": "A"}`),
		},
	}
	c := createTestController(t, retriever)
	require.NoError(t, c.SubmitText(context.Background(), "nhà quận 1"))
	require.True(t, c.MapView().IsVisible())

	retriever.mu.Lock()
	retriever.response = nil
	retriever.err = stderrors.NewTransportError(assert.AnError)
	retriever.mu.Unlock()

	require.NoError(t, c.SubmitText(context.Background(), "còn gì nữa"))

	// The failed turn does not touch map state.
	assert.True(t, c.MapView().IsVisible())
	require.Len(t, c.MapView().Properties(), 1)
	assert.Equal(t, ApologyText, c.Messages()[3].Text())
}

// ==========================
// Single-Flight Tests
// ==========================

func TestSubmitText_RejectsOverlappingTurn(t *testing.T) {
	block := make(chan struct{})
	retriever := &stubRetriever{
		response:   &assistant.ChatResponse{Response: "ok"},
		blockUntil: block,
	}
	c := createTestController(t, retriever)

	done := make(chan error, 1)
	go func() {
		done <- c.SubmitText(context.Background(), "nhà quận 1")
	}()

	require.Eventually(t, func() bool {
		return c.Status() == StatusSubmitted
	}, time.Second, 5*time.Millisecond)

	err := c.SubmitText(context.Background(), "nhà quận 2")
	assert.ErrorIs(t, err, ErrTurnInFlight)
	require.Len(t, c.Messages(), 1) // the rejected call appended nothing

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, StatusReady, c.Status())
	assert.Len(t, c.Messages(), 2)
}

// ==========================
// Identity Tests
// ==========================

func TestSubmitText_UserIDResolvedOnceAndReused(t *testing.T) {
	retriever := &stubRetriever{response: &assistant.ChatResponse{Response: "ok"}}
	c := createTestController(t, retriever)

	require.NoError(t, c.SubmitText(context.Background(), "nhà một"))
	require.NoError(t, c.SubmitText(context.Background(), "nhà hai"))

	require.Equal(t, 2, retriever.requestCount())
	assert.NotEmpty(t, retriever.requests[0].UserID)
	assert.Equal(t, retriever.requests[0].UserID, retriever.requests[1].UserID)
	assert.Equal(t, retriever.requests[0].UserID, c.UserID())
}

type failingStore struct{}

func (failingStore) GetOrCreate(ctx context.Context, key string) (string, error) {
	return "", stderrors.New(stderrors.ErrCodeIdentityStoreFailed, "down")
}

func TestSubmitText_IdentityFailureDegradesToEphemeralID(t *testing.T) {
	retriever := &stubRetriever{response: &assistant.ChatResponse{Response: "ok"}}
	c := NewController("chat-1", Deps{
		Retriever:     retriever,
		IdentityStore: failingStore{},
		Logger:        logger.NewTestLogger(t),
	})

	require.NoError(t, c.SubmitText(context.Background(), "nhà đất"))
	require.Equal(t, 1, retriever.requestCount())
	assert.NotEmpty(t, retriever.requests[0].UserID)
}

// ==========================
// Protocol Compatibility Tests
// ==========================

func TestRegenerateAndStopAreNoOps(t *testing.T) {
	c := createTestController(t, &stubRetriever{})

	require.NoError(t, c.Regenerate(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
	assert.Empty(t, c.Messages())
	assert.Equal(t, StatusReady, c.Status())
}
