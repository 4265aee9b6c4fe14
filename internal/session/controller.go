// internal/session/controller.go
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"realty-assistant/internal/assistant"
	stderrors "realty-assistant/internal/common/errors"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/common/metrics"
	"realty-assistant/internal/common/observability"
	"realty-assistant/internal/identity"
	"realty-assistant/internal/mapview"
	"realty-assistant/internal/models"
	"realty-assistant/internal/normalize"

	"github.com/google/uuid"
)

// Status is the observable state of the turn state machine.
type Status string

const (
	StatusReady     Status = "ready"
	StatusSubmitted Status = "submitted"
)

// ApologyText is the fixed user-facing message appended when a turn fails.
// Error detail goes to the log, never to the transcript.
const ApologyText = "Xin lỗi, đã có lỗi xảy ra khi xử lý yêu cầu của bạn. Vui lòng thử lại sau."

// ErrTurnInFlight is returned when SubmitText is called while a previous turn
// is still awaiting the remote assistant. The presentation layer normally
// prevents this by disabling input while submitted; the controller enforces
// it anyway so programmatic callers cannot interleave responses.
var ErrTurnInFlight = stderrors.New(stderrors.ErrCodeTurnInFlight, "a turn is already in flight")

// Controller owns one conversation: the turn state machine, the append-only
// transcript, the session identity and the map view it feeds.
type Controller struct {
	mu        sync.Mutex
	status    Status
	messages  []models.Message
	sessionID string
	userID    string

	retriever assistant.Retriever
	ids       identity.Store
	idKey     string
	mapView   *mapview.Controller
	logger    logger.Logger
	obs       *observability.Observability
}

// Deps carries the collaborators injected into every controller.
type Deps struct {
	Retriever     assistant.Retriever
	IdentityStore identity.Store
	IdentityKey   string
	Logger        logger.Logger
	Observability *observability.Observability
}

// NewController creates a controller for the given conversation id. The id
// seeds the session identity; the backend may overwrite it on the first
// response.
func NewController(chatID string, deps Deps) *Controller {
	key := deps.IdentityKey
	if key == "" {
		key = identity.DefaultKey
	}
	return &Controller{
		status:    StatusReady,
		sessionID: chatID,
		retriever: deps.Retriever,
		ids:       deps.IdentityStore,
		idKey:     key,
		mapView:   mapview.NewController(),
		logger:    deps.Logger.WithFields(map[string]interface{}{"chatId": chatID}),
		obs:       deps.Observability,
	}
}

// SubmitText runs one conversation turn: append the user message, issue a
// single request to the remote assistant, then append either the assistant
// message or the fixed apology. Empty input is a no-op. A completed turn
// always returns the controller to ready; remote failures are absorbed here
// and never propagate to the caller.
func (c *Controller) SubmitText(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	c.mu.Lock()
	if c.status == StatusSubmitted {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.status = StatusSubmitted
	c.messages = append(c.messages, models.NewTextMessage(uuid.NewString(), models.RoleUser, trimmed, nil))
	sessionID := c.sessionID
	c.mu.Unlock()

	userID := c.resolveUserID(ctx)

	start := time.Now()
	resp, err := c.retriever.Retrieve(ctx, &assistant.ChatRequest{
		UserInput: trimmed,
		SessionID: sessionID,
		UserID:    userID,
	})
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.recordTurn(ctx, time.Since(start), outcome)

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { c.status = StatusReady }()

	if err != nil {
		c.logger.WithError(err).Error("turn failed", map[string]interface{}{
			"sessionId": sessionID,
		})
		c.messages = append(c.messages, models.NewTextMessage(
			uuid.NewString(), models.RoleAssistant, ApologyText,
			&models.MessageMetadata{CreatedAt: time.Now().UTC()},
		))
		return nil
	}

	if resp.SessionID != "" {
		c.sessionID = resp.SessionID
	}

	hasMapData := false
	if len(resp.Result) > 0 {
		properties := normalize.Normalize(resp.Result)
		metrics.PropertiesNormalized.Add(float64(len(properties)))
		if len(properties) > 0 {
			c.mapView.Show(properties)
			hasMapData = true
		}
	}

	c.messages = append(c.messages, models.NewTextMessage(
		uuid.NewString(), models.RoleAssistant, resp.Response,
		&models.MessageMetadata{CreatedAt: time.Now().UTC(), ShowMapButton: hasMapData},
	))

	c.logger.Info("turn completed", map[string]interface{}{
		"sessionId":  c.sessionID,
		"resultSize": len(resp.Result),
		"mapShown":   hasMapData,
	})

	return nil
}

// Regenerate is a no-op kept for interface compatibility with richer chat
// protocols.
func (c *Controller) Regenerate(ctx context.Context) error { return nil }

// Stop is a no-op kept for interface compatibility with richer chat
// protocols.
func (c *Controller) Stop(ctx context.Context) error { return nil }

// Status returns the current state of the turn state machine.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Messages returns a copy of the transcript.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SessionID returns the current session identifier, which may have been
// assigned by the backend.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// UserID returns the resolved user identifier, or empty before the first turn.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// MapView returns the map view controller fed by this conversation.
func (c *Controller) MapView() *mapview.Controller {
	return c.mapView
}

// resolveUserID fetches the durable user id once and caches it. A failing
// identity store degrades to a fresh non-persisted id; the turn proceeds.
func (c *Controller) resolveUserID(ctx context.Context) string {
	c.mu.Lock()
	if c.userID != "" {
		id := c.userID
		c.mu.Unlock()
		return id
	}
	c.mu.Unlock()

	id, err := c.ids.GetOrCreate(ctx, c.idKey)
	if err != nil {
		c.logger.WithError(err).Warn("identity store unavailable, using ephemeral user id", nil)
		id = identity.NewUserID()
	}

	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
	return id
}

func (c *Controller) recordTurn(ctx context.Context, d time.Duration, outcome string) {
	metrics.TurnsCompleted.WithLabelValues(outcome).Inc()
	metrics.TurnDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if c.obs != nil {
		c.obs.RecordTurnProcessed(ctx, outcome)
		c.obs.RecordTurnDuration(ctx, d, outcome)
	}
}
