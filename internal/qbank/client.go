// Package qbank is the engine's client for the question bank read API. It
// fetches simulados, exam options and question pools, and normalizes the
// bank's heterogeneous answer representations into the canonical form the
// grading logic consumes.
package qbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/linuxgeek/simulado/internal/model"
	"github.com/rs/zerolog"
)

// ErrSimuladoNotFound distinguishes an unknown simulado slug from a known
// simulado with an empty question pool.
var ErrSimuladoNotFound = errors.New("simulado not found")

// Client talks to the catalog API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a catalog client. baseURL points at the API prefix,
// e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log.With().Str("component", "qbank_client").Logger(),
	}
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Simulados returns all active simulados.
func (c *Client) Simulados(ctx context.Context) ([]model.Simulado, error) {
	var sims []model.Simulado
	if err := c.get(ctx, "/simulados", &sims); err != nil {
		return nil, err
	}
	return sims, nil
}

// ExamOptions returns the exam subsets and available question types of a
// simulado, for the configuration step.
func (c *Client) ExamOptions(ctx context.Context, slug string) (*model.ExamOptions, error) {
	var opts model.ExamOptions
	path := "/simulados/" + url.PathEscape(slug) + "/exams"
	if err := c.get(ctx, path, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Questions fetches and normalizes the question pool of a simulado.
// examCode "mixed" (or empty) selects the union of all exam subsets.
// On any fetch or decode failure the pool is nil and the caller must not
// start a session.
func (c *Client) Questions(ctx context.Context, slug, examCode string) ([]model.Question, error) {
	path := "/simulados/" + url.PathEscape(slug) + "/questions"
	if examCode != "" && examCode != model.ExamCodeMixed {
		path += "?exam=" + url.QueryEscape(examCode)
	}

	var rows []model.QuestionRow
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}
	return Normalize(rows), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrSimuladoNotFound
	}
	if !env.Success {
		msg := "request failed"
		if env.Error != nil && env.Error.Message != "" {
			msg = env.Error.Message
		}
		return fmt.Errorf("%s: %s (status %d)", path, msg, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload %s: %w", path, err)
		}
	}
	return nil
}
