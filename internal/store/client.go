// Package store provides a client for the hosted property database and
// image bucket, spoken over their REST interface.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the hosted table and storage endpoints.
type Client struct {
	httpClient *http.Client
	apiKey     string

	// Overridable URLs for testing.
	restURL    string
	storageURL string
}

// NewClient creates a store client for the service at baseURL.
// baseURL is the project root, e.g. https://xyz.example.co.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		restURL:    base + "/rest/v1",
		storageURL: base + "/storage/v1",
	}, nil
}

// Query describes a select against a table.
type Query struct {
	Table string

	// Optional equality filter: EqColumn = EqValue.
	EqColumn string
	EqValue  string

	// Optional membership filter: InColumn in InValues.
	InColumn string
	InValues []string

	// Optional ordering.
	OrderBy    string
	Descending bool

	// Single expects exactly one matching row.
	Single bool
}

// Select fetches rows matching q and decodes them into dest.
// With q.Single, dest receives the one matching row; zero rows yield
// ErrNoRows and more than one yields ErrMultipleRows.
func (c *Client) Select(ctx context.Context, q Query, dest interface{}) error {
	reqURL := c.restURL + "/" + q.Table + "?" + q.encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return err
	}

	if !q.Single {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("decoding rows: %w", err)
		}
		return nil
	}

	// Count rows client-side so zero and many stay distinguishable.
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decoding rows: %w", err)
	}
	switch len(rows) {
	case 0:
		return ErrNoRows
	case 1:
		if err := json.Unmarshal(rows[0], dest); err != nil {
			return fmt.Errorf("decoding row: %w", err)
		}
		return nil
	default:
		return ErrMultipleRows
	}
}

// Insert adds one row to table and decodes the stored row into dest.
func (c *Client) Insert(ctx context.Context, table string, row interface{}, dest interface{}) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshaling row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.restURL+"/"+table, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	return decodeFirstRow(body, dest)
}

// Update patches the row with the given id and decodes the updated row
// into dest. Returns ErrNoRows when no row has that id.
func (c *Client) Update(ctx context.Context, table, id string, patch interface{}, dest interface{}) error {
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshaling patch: %w", err)
	}

	reqURL := c.restURL + "/" + table + "?id=eq." + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := c.do(req)
	if err != nil {
		return err
	}

	return decodeFirstRow(body, dest)
}

// Delete removes the row with the given id. Deleting an id that does
// not exist is not an error at this layer.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	reqURL := c.restURL + "/" + table + "?id=eq." + url.QueryEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	_, err = c.do(req)
	return err
}

// Upload stores data under key in the named bucket.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	reqURL := c.storageURL + "/object/" + bucket + "/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	req.Header.Set("Content-Type", contentType)

	_, err = c.do(req)
	return err
}

// PublicURL returns the publicly fetchable URL for an uploaded object.
func (c *Client) PublicURL(bucket, key string) string {
	return c.storageURL + "/object/public/" + bucket + "/" + key
}

// encode builds the query string for a select.
func (q Query) encode() string {
	params := url.Values{"select": {"*"}}
	if q.EqColumn != "" {
		params.Set(q.EqColumn, "eq."+q.EqValue)
	}
	if q.InColumn != "" && len(q.InValues) > 0 {
		params.Set(q.InColumn, "in.("+strings.Join(q.InValues, ",")+")")
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}
	return params.Encode()
}

// do sends the request with auth headers and returns the response body.
// Non-2xx responses become a *Error carrying the service message.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, body)
	}

	return body, nil
}

// decodeFirstRow unwraps a returned row array into dest.
func decodeFirstRow(body []byte, dest interface{}) error {
	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return fmt.Errorf("decoding rows: %w", err)
	}
	if len(rows) == 0 {
		return ErrNoRows
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(rows[0], dest); err != nil {
		return fmt.Errorf("decoding row: %w", err)
	}
	return nil
}
