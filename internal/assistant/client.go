// internal/assistant/client.go
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	stderrors "realty-assistant/internal/common/errors"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/common/validation"

	"github.com/hashicorp/go-retryablehttp"
)

const retrievePath = "/v1/rest-retrieve"

// maxResponseBytes guards against unbounded assistant payloads.
const maxResponseBytes = 4 << 20

// Retriever issues one request to the remote assistant per conversation turn.
type Retriever interface {
	Retrieve(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// Client is the REST implementation of Retriever. A turn is single-shot: one
// failed attempt ends the turn, so the underlying client never retries.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil
	// Hand every response and error straight back: the default policy would
	// otherwise swallow 5xx responses into a generic give-up error.
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, err
	}

	return &Client{
		baseURL: baseURL,
		http:    rc,
		logger:  log.WithFields(map[string]interface{}{"component": "assistant-client"}),
	}
}

func (c *Client) Retrieve(ctx context.Context, chatReq *ChatRequest) (*ChatResponse, error) {
	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, stderrors.Wrap(stderrors.ErrCodeAssistantUnavailable, "encode request", err)
	}

	url := fmt.Sprintf("%s%s", c.baseURL, retrievePath)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, stderrors.Wrap(stderrors.ErrCodeAssistantUnavailable, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, stderrors.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, stderrors.NewBadStatusError(resp.StatusCode, string(body))
	}

	// Advisory schema check: deviations are logged, the turn proceeds and
	// the normalizer defaults whatever is off.
	if issues := validation.CheckResponse(body); len(issues) > 0 {
		c.logger.Warn("assistant response deviates from expected schema", map[string]interface{}{
			"issues": issues,
		})
	}

	var out ChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, stderrors.Wrap(stderrors.ErrCodeAssistantUnavailable, "decode response", err)
	}

	return &out, nil
}
