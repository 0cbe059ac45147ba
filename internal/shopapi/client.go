package shopapi

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

	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client calls the shop API: catalog, single product and order placement
type Client struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a shop API client. Image paths in responses are prefixed with cdnURL.
func NewClient(baseURL, cdnURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		cdnURL:     cdnURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetLotList fetches the catalog and unwraps the list envelope
func (c *Client) GetLotList(ctx context.Context) ([]domain.Item, error) {
	var envelope domain.ListResponse[domain.Item]
	if err := c.get(ctx, "/product", &envelope); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(envelope.Items))
	for _, it := range envelope.Items {
		items = append(items, c.withCDN(it))
	}
	return items, nil
}

// GetLotItem fetches a single catalog item
func (c *Client) GetLotItem(ctx context.Context, id string) (domain.Item, error) {
	var item domain.Item
	if err := c.get(ctx, "/product/"+url.PathEscape(id), &item); err != nil {
		return domain.Item{}, err
	}
	return c.withCDN(item), nil
}

// OrderLots posts the order and returns the charged total with the order id
func (c *Client) OrderLots(ctx context.Context, order domain.Order) (domain.OrderResult, error) {
	var result domain.OrderResult
	if err := c.post(ctx, "/order", order, &result); err != nil {
		return domain.OrderResult{}, err
	}
	return result, nil
}

func (c *Client) withCDN(item domain.Item) domain.Item {
	item.Image = c.cdnURL + item.Image
	return item
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// errorEnvelope is the shop API error body
type errorEnvelope struct {
	Error string `json:"error"`
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Shop API request failed", zap.Error(err),
			zap.String("method", req.Method), zap.String("path", req.URL.Path))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &errors.ErrAPI{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
		}
		c.logger.Warn("Shop API returned error", zap.Int("status", resp.StatusCode),
			zap.String("path", req.URL.Path), zap.String("message", apiErr.Message))
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	return nil
}
