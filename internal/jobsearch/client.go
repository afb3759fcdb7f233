package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/jimezsa/hirenova/internal/models"
	"github.com/jimezsa/hirenova/internal/network"
	"github.com/rs/zerolog"
)

const (
	DefaultEndpoint = "https://linkedin-data-api.p.rapidapi.com/search-jobs"
	DefaultHost     = "linkedin-data-api.p.rapidapi.com"

	errorBodyLimit = 4096
)

// Config holds the upstream credential and endpoint.
type Config struct {
	APIKey          string
	Host            string
	Endpoint        string
	DisableFallback bool
	Logger          zerolog.Logger
}

// Searcher is what sessions depend on. Search never fails.
type Searcher interface {
	Search(ctx context.Context, params models.SearchParams) Outcome
}

// Outcome is a renderable result plus what actually happened upstream.
type Outcome struct {
	Result    models.SearchResult
	Err       error
	Fallback  bool
	RequestID string
}

// Degraded reports whether Result is not a genuine upstream answer.
func (o Outcome) Degraded() bool {
	return o.Err != nil
}

type Client struct {
	doer     network.Doer
	apiKey   string
	host     string
	endpoint string
	fallback bool
	logger   zerolog.Logger
}

func NewClient(doer network.Doer, cfg Config) *Client {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		doer:     doer,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		host:     host,
		endpoint: endpoint,
		fallback: !cfg.DisableFallback,
		logger:   cfg.Logger,
	}
}

type searchResponse struct {
	Success *bool         `json:"success"`
	Message string        `json:"message"`
	Data    *[]models.Job `json:"data"`
	Total   int           `json:"total"`
}

// Fetch performs one upstream call. Every error it returns is a
// *FetchError.
func (c *Client) Fetch(ctx context.Context, params models.SearchParams) (models.SearchResult, error) {
	if c.apiKey == "" {
		return models.SearchResult{}, &FetchError{Kind: KindNotConfigured, Err: ErrNotConfigured}
	}
	if c.doer == nil {
		return models.SearchResult{}, &FetchError{Kind: KindTransport, Err: errors.New("no http client")}
	}

	target, err := c.searchURL(params)
	if err != nil {
		return models.SearchResult{}, &FetchError{Kind: KindTransport, Err: err}
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return models.SearchResult{}, &FetchError{Kind: KindTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	applyHeaders(req, map[string]string{
		"x-rapidapi-key":  c.apiKey,
		"x-rapidapi-host": c.host,
	})

	resp, err := c.doer.Do(req)
	if err != nil {
		return models.SearchResult{}, &FetchError{Kind: KindTransport, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return models.SearchResult{}, &FetchError{
			Kind:   KindStatus,
			Status: resp.StatusCode,
			Err:    errors.New(strings.TrimSpace(string(body))),
		}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.SearchResult{}, &FetchError{Kind: KindDecode, Err: err}
	}
	if payload.Success != nil && !*payload.Success {
		message := payload.Message
		if message == "" {
			message = "success=false"
		}
		return models.SearchResult{}, &FetchError{Kind: KindRejected, Err: errors.New(message)}
	}
	if payload.Data == nil {
		return models.SearchResult{}, &FetchError{Kind: KindDecode, Err: errors.New("response has no data array")}
	}

	total := payload.Total
	if total < 0 {
		total = 0
	}
	return models.SearchResult{Jobs: *payload.Data, Total: total}, nil
}

// Search wraps Fetch and turns any failure into the fallback dataset, or
// an empty result when fallback is disabled.
func (c *Client) Search(ctx context.Context, params models.SearchParams) Outcome {
	requestID := uuid.NewString()
	logger := c.logger.With().Str("request_id", requestID).Logger()

	result, err := c.Fetch(ctx, params)
	if err == nil {
		logger.Debug().
			Str("keywords", params.Keywords).
			Int("start", params.Start).
			Int("jobs", len(result.Jobs)).
			Int("total", result.Total).
			Msg("job search ok")
		return Outcome{Result: result, RequestID: requestID}
	}

	var fe *FetchError
	status := 0
	if errors.As(err, &fe) {
		status = fe.Status
	}
	event := logger.Warn()
	if Kind(err) == KindNotConfigured {
		event = logger.Debug()
	}
	event.Err(err).
		Str("kind", string(Kind(err))).
		Int("status", status).
		Bool("fallback", c.fallback).
		Msg("job search failed")

	if c.fallback {
		return Outcome{Result: Fallback(), Err: err, Fallback: true, RequestID: requestID}
	}
	return Outcome{Result: models.SearchResult{Jobs: []models.Job{}}, Err: err, RequestID: requestID}
}

func (c *Client) searchURL(params models.SearchParams) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	u.RawQuery = BuildQuery(params).Encode()
	return u.String(), nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "application/json"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
