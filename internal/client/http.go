package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/agritrace/supplytrace/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements TrackerClient over the HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	role       string
	httpClient *http.Client
}

// NewHTTPClient creates a client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an
// Authorization header is set on every request; role is sent as
// X-Actor-Role on mutations that need it.
func NewHTTPClient(baseURL, token, role string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		role:       role,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

func (c *HTTPClient) CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error) {
	var p model.Product
	if err := c.doJSON(ctx, http.MethodPost, "/v1/products", req, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := c.doJSON(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), nil, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	q := url.Values{}
	if req.Name != "" {
		q.Set("name", req.Name)
	}
	if req.Type != "" {
		q.Set("type", req.Type)
	}
	if req.BatchID != "" {
		q.Set("batch_id", req.BatchID)
	}
	if req.OriginFarmID != "" {
		q.Set("origin_farm_id", req.OriginFarmID)
	}
	if req.Status != "" {
		q.Set("status", req.Status)
	}
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Desc {
		q.Set("order", "desc")
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", strconv.Itoa(req.Offset))
	}

	path := "/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListProductsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/products/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) UpdateStatus(ctx context.Context, id, status, location string) (*model.Product, error) {
	body := map[string]string{"status": status}
	if location != "" {
		body["location"] = location
	}
	var p model.Product
	if err := c.doJSON(ctx, http.MethodPost, "/v1/products/"+url.PathEscape(id)+"/status", body, &p, nil); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) AddStage(ctx context.Context, id string, req *AddStageRequest) (*model.Product, error) {
	role := req.Role
	if role == "" {
		role = c.role
	}
	headers := map[string]string{"X-Actor-Role": role}
	var p model.Product
	if err := c.doJSON(ctx, http.MethodPost, "/v1/products/"+url.PathEscape(id)+"/tracking", req, &p, headers); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) GetTracking(ctx context.Context, id string) (*TrackingResponse, error) {
	var resp TrackingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id)+"/tracking", nil, &resp, nil); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) CreateFarm(ctx context.Context, req *CreateFarmRequest) (*model.Farm, error) {
	var f model.Farm
	if err := c.doJSON(ctx, http.MethodPost, "/v1/farms", req, &f, nil); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) GetFarm(ctx context.Context, id string) (*model.Farm, error) {
	var f model.Farm
	if err := c.doJSON(ctx, http.MethodGet, "/v1/farms/"+url.PathEscape(id), nil, &f, nil); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *HTTPClient) ListFarms(ctx context.Context) ([]*model.Farm, error) {
	var resp struct {
		Farms []*model.Farm `json:"farms"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/farms", nil, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Farms, nil
}

// StreamProducts follows the SSE push stream, delivering each data frame
// on the returned channel. The channel closes when the stream ends or ctx
// is cancelled.
func (c *HTTPClient) StreamProducts(ctx context.Context, topics []string) (<-chan json.RawMessage, error) {
	path := "/v1/products/stream"
	if len(topics) > 0 {
		path += "?topics=" + url.QueryEscape(strings.Join(topics, ","))
	}
	return c.stream(ctx, path)
}

// StreamStatus follows the status-change SSE bridge, optionally filtered
// to one product.
func (c *HTTPClient) StreamStatus(ctx context.Context, productID string) (<-chan json.RawMessage, error) {
	path := "/v1/products/status/stream"
	if productID != "" {
		path += "?product_id=" + url.QueryEscape(productID)
	}
	return c.stream(ctx, path)
}

func (c *HTTPClient) stream(ctx context.Context, path string) (<-chan json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("opening stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	ch := make(chan json.RawMessage)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue // heartbeat comments and blank separators
			}
			data := strings.TrimPrefix(line, "data:")
			select {
			case ch <- json.RawMessage(data):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp, nil); err != nil {
		return "", err
	}
	return resp.Status, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, result any, headers map[string]string) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
