package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/linuxgeek/simulado/internal/model"
	"github.com/rs/zerolog"
)

// RemoteClient talks to the progress API. A client without a token is
// valid but unauthenticated; every call fails fast and the bridge keeps
// everything local.
type RemoteClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewRemoteClient creates a progress client. baseURL points at the API
// prefix, e.g. "http://localhost:8080/api/v1". token may be empty.
func NewRemoteClient(baseURL, token string, log zerolog.Logger) *RemoteClient {
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With().Str("component", "progress_client").Logger(),
	}
}

// Authenticated reports whether the client carries a bearer token.
func (c *RemoteClient) Authenticated() bool {
	return c.token != ""
}

type remoteEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Save stores one session record remotely.
func (c *RemoteClient) Save(ctx context.Context, rec model.SessionRecord) error {
	if !c.Authenticated() {
		return fmt.Errorf("save session: not authenticated")
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/progress/sessions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer resp.Body.Close()

	var env remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := "request failed"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return fmt.Errorf("save session: %s (status %d)", msg, resp.StatusCode)
	}
	return nil
}

// List fetches the caller's session history, most recent first.
func (c *RemoteClient) List(ctx context.Context) ([]model.SessionRecord, error) {
	if !c.Authenticated() {
		return nil, fmt.Errorf("list sessions: not authenticated")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/progress/sessions", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer resp.Body.Close()

	var env remoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		msg := "request failed"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return nil, fmt.Errorf("list sessions: %s (status %d)", msg, resp.StatusCode)
	}

	var records []model.SessionRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("decode sessions: %w", err)
		}
	}
	return records, nil
}
