package roster

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/screening"
)

const (
	userAgent       = "spigell/hr-screener"
	contentType     = "application/json"
	contentEncoding = "gzip"
)

// Client fetches rosters published as JSON documents over HTTP.
type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

func NewClient(logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
	}
}

// Fetch downloads and decodes the roster at url. The body must be a JSON
// object with a "candidates" list.
func (c *Client) Fetch(ctx context.Context, url string) (*screening.Roster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		body = gz
	}

	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding roster response: %w", err)
	}

	roster, err := decode(payload[candidatesKey])
	if err != nil {
		return nil, fmt.Errorf("roster from %s: %w", url, err)
	}

	c.logger.Debug("got roster", zap.String("url", url), zap.Int("candidates", roster.Len()))

	return roster, nil
}
