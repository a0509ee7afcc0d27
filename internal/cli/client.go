// Package cli holds the HTTP client and local state for the gl terminal
// client.
package cli

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

	"goalline/internal/clubs"
	"goalline/internal/engine"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Academies(ctx context.Context, count int) ([]clubs.Academy, error) {
	var out struct {
		Academies []clubs.Academy `json:"academies"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/academies?count=%d", count), nil, &out)
	return out.Academies, err
}

func (c *Client) StartCareer(ctx context.Context, in engine.StartCareerInput) (engine.CareerView, error) {
	var out engine.CareerView
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/careers", in, &out)
	return out, err
}

func (c *Client) View(ctx context.Context, id string) (engine.CareerView, error) {
	var out engine.CareerView
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/careers/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Act sends one action envelope: a kind plus whatever fields it needs.
func (c *Client) Act(ctx context.Context, id string, action map[string]any) (engine.Effect, error) {
	var out engine.Effect
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/careers/"+url.PathEscape(id)+"/actions", action, &out)
	return out, err
}

func (c *Client) Advance(ctx context.Context, id string) (engine.Effect, error) {
	var out engine.Effect
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/careers/"+url.PathEscape(id)+"/advance", nil, &out)
	return out, err
}

func (c *Client) Export(ctx context.Context, id string) (engine.ExportPayload, error) {
	var out engine.ExportPayload
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/careers/"+url.PathEscape(id)+"/export", nil, &out)
	return out, err
}

func (c *Client) Close(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/careers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
