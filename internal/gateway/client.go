// Package gateway is the client side of the scoring service protocol: it
// serializes the task collection, performs one POST per operation and
// normalizes the response or failure. No retries, no client-side timeout;
// callers cancel through the context if they need to.
package gateway

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskpilot/internal/task"
)

// fallbackErrorMessage is shown when a failure body has no usable error field.
const fallbackErrorMessage = "API error"

type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New builds a client for the given service base URL, e.g.
// "http://localhost:8000/api/tasks".
func New(baseURL string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: rc, log: log}
}

type analyzeRequest struct {
	Strategy string      `json:"strategy"`
	Tasks    []task.Task `json:"tasks"`
}

type analyzeResponse struct {
	Tasks []task.Result `json:"tasks"`
}

type suggestRequest struct {
	Tasks []task.Task `json:"tasks"`
}

type suggestResponse struct {
	SuggestedTasks []task.Result `json:"suggested_tasks"`
}

// Analyze sends the whole collection plus a strategy identifier. The
// strategy string is passed through opaque; the service validates it.
func (c *Client) Analyze(ctx context.Context, strategy string, tasks []task.Task) ([]task.Result, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyCollection
	}

	var out analyzeResponse
	body := analyzeRequest{Strategy: strategy, Tasks: tasks}
	if err := c.post(ctx, "/analyze/", body, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

// Suggest sends the whole collection and returns the service's curated
// top-N subset.
func (c *Client) Suggest(ctx context.Context, tasks []task.Task) ([]task.Result, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyCollection
	}

	var out suggestResponse
	body := suggestRequest{Tasks: tasks}
	if err := c.post(ctx, "/suggest/", body, &out); err != nil {
		return nil, err
	}
	return out.SuggestedTasks, nil
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	requestID := uuid.NewString()
	log := c.log.With(zap.String("request_id", requestID), zap.String("path", path))
	log.Debug("dispatching scoring request")

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		log.Warn("exchange failed", zap.Error(err))
		return &TransportError{Err: err}
	}
	if resp.IsError() {
		msg := parseErrorBody(resp.Body())
		log.Warn("service rejected request", zap.Int("status", resp.StatusCode()), zap.String("message", msg))
		return &RemoteError{Status: resp.StatusCode(), Message: msg}
	}

	log.Debug("scoring request completed", zap.Int("status", resp.StatusCode()))
	return nil
}

// parseErrorBody pulls the error field out of a failure body, falling back
// to a generic message when the body is absent or unparseable.
func parseErrorBody(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
		return fallbackErrorMessage
	}
	return payload.Error
}
