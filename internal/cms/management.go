// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultManagementURL is the Content Management API host.
const DefaultManagementURL = "https://api.contentful.com"

const managementContentType = "application/vnd.contentful.management.v1+json"

// FieldItems describes the element type of an Array field.
type FieldItems struct {
	Type     string `json:"type" yaml:"type"`
	LinkType string `json:"linkType,omitempty" yaml:"linkType,omitempty"`
}

// FieldDef is one field of a content type definition.
type FieldDef struct {
	ID       string      `json:"id" yaml:"id"`
	Name     string      `json:"name" yaml:"name"`
	Type     string      `json:"type" yaml:"type"`
	LinkType string      `json:"linkType,omitempty" yaml:"linkType,omitempty"`
	Items    *FieldItems `json:"items,omitempty" yaml:"items,omitempty"`
	Required bool        `json:"required" yaml:"required"`
}

// ContentTypeDef is a content type definition as accepted by the
// management API.
type ContentTypeDef struct {
	ID           string     `json:"-" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	DisplayField string     `json:"displayField" yaml:"displayField"`
	Fields       []FieldDef `json:"fields" yaml:"fields"`
}

// ManagementConfig holds the Content Management API settings.
type ManagementConfig struct {
	BaseURL     string
	SpaceID     string
	Environment string
	Token       string
	Timeout     time.Duration
}

// ManagementClient writes content types and entries. It is only used by
// the provisioning commands, never by the web server.
type ManagementClient struct {
	config ManagementConfig
	client *http.Client
}

// NewManagementClient creates a management client. Returns an error when
// the space id or token is missing.
func NewManagementClient(cfg ManagementConfig) (*ManagementClient, error) {
	if cfg.SpaceID == "" || cfg.Token == "" {
		return nil, fmt.Errorf("cms management: space id and management token are required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultManagementURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ManagementClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// UpsertContentType creates or updates a content type and activates it.
func (m *ManagementClient) UpsertContentType(ctx context.Context, ct ContentTypeDef) error {
	path := "/content_types/" + url.PathEscape(ct.ID)

	version, err := m.currentVersion(ctx, path)
	if err != nil {
		return fmt.Errorf("content type %s: %w", ct.ID, err)
	}

	sys, err := m.do(ctx, http.MethodPut, path, version, nil, ct)
	if err != nil {
		return fmt.Errorf("put content type %s: %w", ct.ID, err)
	}

	if _, err := m.do(ctx, http.MethodPut, path+"/published", sys.Version, nil, nil); err != nil {
		return fmt.Errorf("activate content type %s: %w", ct.ID, err)
	}

	slog.Info("content type provisioned", "id", ct.ID, "version", sys.Version)
	return nil
}

// UpsertEntry creates or updates an entry with the given id and publishes
// it. Field values are wrapped under Locale.
func (m *ManagementClient) UpsertEntry(ctx context.Context, contentType, id string, fields map[string]any) error {
	path := "/entries/" + url.PathEscape(id)

	version, err := m.currentVersion(ctx, path)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}

	localized := make(map[string]any, len(fields))
	for k, v := range fields {
		localized[k] = map[string]any{Locale: v}
	}

	headers := map[string]string{"X-Contentful-Content-Type": contentType}
	sys, err := m.do(ctx, http.MethodPut, path, version, headers, map[string]any{"fields": localized})
	if err != nil {
		return fmt.Errorf("put entry %s: %w", id, err)
	}

	if _, err := m.do(ctx, http.MethodPut, path+"/published", sys.Version, nil, nil); err != nil {
		return fmt.Errorf("publish entry %s: %w", id, err)
	}

	slog.Info("entry provisioned", "content_type", contentType, "id", id)
	return nil
}

// currentVersion returns the version of the resource at path, or 0 when it
// does not exist yet.
func (m *ManagementClient) currentVersion(ctx context.Context, path string) (int, error) {
	sys, err := m.do(ctx, http.MethodGet, path, 0, nil, nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return 0, nil
		}
		return 0, err
	}
	return sys.Version, nil
}

func (m *ManagementClient) do(ctx context.Context, method, path string, version int, headers map[string]string, body any) (*Sys, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("cms marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s%s",
		m.config.BaseURL,
		url.PathEscape(m.config.SpaceID),
		url.PathEscape(m.config.Environment),
		path,
	)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("cms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.config.Token)
	req.Header.Set("Content-Type", managementContentType)
	if version > 0 {
		req.Header.Set("X-Contentful-Version", strconv.Itoa(version))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: cms http: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 512)}
	}

	var result struct {
		Sys Sys `json:"sys"`
	}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return nil, fmt.Errorf("cms unmarshal: %w", err)
		}
	}
	return &result.Sys, nil
}
