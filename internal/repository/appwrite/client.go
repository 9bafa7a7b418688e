package appwrite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dafibh/fortuna/profit-loss-function/internal/config"
	"github.com/dafibh/fortuna/profit-loss-function/internal/domain"
	"github.com/rs/zerolog"
)

// maxErrorBody caps how much of a failed response is read for the error message
const maxErrorBody = 64 << 10

// Client lists documents through the Appwrite Databases REST API
type Client struct {
	endpoint   string
	project    string
	apiKey     string
	databaseID string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Ensure Client implements domain.DocumentSource
var _ domain.DocumentSource = (*Client)(nil)

// NewClient creates a new Appwrite client from configuration
func NewClient(cfg config.AppwriteConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return NewClientWithHTTP(cfg, &http.Client{Timeout: timeout}, logger)
}

// NewClientWithHTTP creates a Client that sends requests through httpClient
func NewClientWithHTTP(cfg config.AppwriteConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		project:    cfg.Project,
		apiKey:     cfg.APIKey,
		databaseID: cfg.DatabaseID,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "appwrite_client").Logger(),
	}
}

// documentList is the listDocuments response body
type documentList struct {
	Total     int                          `json:"total"`
	Documents []map[string]json.RawMessage `json:"documents"`
}

// apiError is the error body returned by Appwrite
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

// query is a single entry of the queries[] parameter
type query struct {
	Method string        `json:"method"`
	Values []interface{} `json:"values"`
}

// FetchPage lists one page of a collection using limit/offset queries
func (c *Client) FetchPage(ctx context.Context, collectionID string, limit, offset int) (domain.DocumentPage, error) {
	reqURL, err := c.documentsURL(collectionID, limit, offset)
	if err != nil {
		return domain.DocumentPage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.DocumentPage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.project)
	req.Header.Set("X-Appwrite-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.DocumentPage{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.DocumentPage{}, c.decodeError(resp)
	}

	var list documentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return domain.DocumentPage{}, fmt.Errorf("%w: %v", domain.ErrMalformedPage, err)
	}

	page := domain.DocumentPage{
		Documents: make([]domain.Document, 0, len(list.Documents)),
		Total:     list.Total,
	}
	for _, fields := range list.Documents {
		var id string
		if raw, ok := fields["$id"]; ok {
			_ = json.Unmarshal(raw, &id)
		}
		page.Documents = append(page.Documents, domain.Document{ID: id, Fields: fields})
	}

	c.logger.Debug().
		Str("collection_id", collectionID).
		Int("offset", offset).
		Int("limit", limit).
		Int("count", len(page.Documents)).
		Msg("Fetched document page")

	return page, nil
}

func (c *Client) documentsURL(collectionID string, limit, offset int) (string, error) {
	base, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid Appwrite endpoint: %w", err)
	}
	base = base.JoinPath("databases", c.databaseID, "collections", collectionID, "documents")

	params := url.Values{}
	for _, q := range []query{
		{Method: "limit", Values: []interface{}{limit}},
		{Method: "offset", Values: []interface{}{offset}},
	} {
		encoded, err := json.Marshal(q)
		if err != nil {
			return "", fmt.Errorf("failed to encode query: %w", err)
		}
		params.Add("queries[]", string(encoded))
	}
	base.RawQuery = params.Encode()

	return base.String(), nil
}

func (c *Client) decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%w: %s (status %d)", domain.ErrUpstream, apiErr.Message, resp.StatusCode)
	}
	return fmt.Errorf("%w: unexpected status code: %d", domain.ErrUpstream, resp.StatusCode)
}
