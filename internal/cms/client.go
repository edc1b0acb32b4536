// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultDeliveryURL is the public Content Delivery API host.
const DefaultDeliveryURL = "https://cdn.contentful.com"

// Config holds the Content Delivery API settings.
type Config struct {
	BaseURL     string
	SpaceID     string
	Environment string
	AccessToken string
	Timeout     time.Duration
}

// EnvelopeCache stores raw successful response bodies keyed by request URL.
// Implementations must treat failures as misses.
type EnvelopeCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// Query selects entries from the delivery API.
type Query struct {
	ContentType string
	// Include is the link depth embedded in the includes side-table (0-10).
	Include int
	// Fields are equality filters on entry fields, e.g. {"slug": "x"}.
	Fields map[string]string
	IDs    []string
	Order  string
	// Limit caps the page size; the API applies its own default of 100
	// when it is zero. Skip offsets the page.
	Limit int
	Skip  int
}

// Values encodes the query as URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.ContentType != "" {
		v.Set("content_type", q.ContentType)
	}
	v.Set("include", strconv.Itoa(q.Include))
	for name, val := range q.Fields {
		v.Set("fields."+name, val)
	}
	if len(q.IDs) > 0 {
		v.Set("sys.id[in]", strings.Join(q.IDs, ","))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	return v
}

// Client is a read-only Content Delivery API client. It is safe for
// concurrent use.
type Client struct {
	config Config
	client *http.Client
	cache  EnvelopeCache
}

// NewClient creates a delivery client. cache may be nil.
func NewClient(cfg Config, cache EnvelopeCache) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultDeliveryURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  cache,
	}
}

// Configured reports whether a space id and access token are set.
func (c *Client) Configured() bool {
	return c.config.SpaceID != "" && c.config.AccessToken != ""
}

// Entries fetches entries matching q.
func (c *Client) Entries(ctx context.Context, q Query) (*Envelope, error) {
	return c.get(ctx, "entries", q.Values())
}

// Assets fetches assets. Only IDs, Order, Limit and Skip of q apply.
func (c *Client) Assets(ctx context.Context, q Query) (*Envelope, error) {
	v := url.Values{}
	if len(q.IDs) > 0 {
		v.Set("sys.id[in]", strings.Join(q.IDs, ","))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	return c.get(ctx, "assets", v)
}

func (c *Client) get(ctx context.Context, resource string, params url.Values) (*Envelope, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/%s?%s",
		c.config.BaseURL,
		url.PathEscape(c.config.SpaceID),
		url.PathEscape(c.config.Environment),
		resource,
		params.Encode(),
	)

	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, endpoint); ok {
			var env Envelope
			if err := json.Unmarshal(body, &env); err == nil {
				return &env, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: cms http: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: cms read body: %w", ErrUnavailable, err)
	}

	slog.Debug("cms fetch",
		"resource", resource,
		"content_type", params.Get("content_type"),
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: cms unmarshal: %w", ErrUnavailable, err)
	}

	if c.cache != nil {
		c.cache.Set(ctx, endpoint, body)
	}
	return &env, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
