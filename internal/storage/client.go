// Package storage is a thin client for a Supabase-compatible object store.
// Only the endpoints the job pipeline needs are covered: download, upload,
// signed URLs, and deletion.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/equicharts/race-results-tracker/internal/common"
)

// ObjectStore is the interface the pipeline and handlers depend on.
type ObjectStore interface {
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, paths []string) error
}

// Client talks to the store's REST API at /storage/v1.
type Client struct {
	baseURL string
	bucket  string
	apiKey  string
	http    *http.Client
	log     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(baseURL, bucket, apiKey string, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, strings.TrimPrefix(path, "/"))
}

// Download fetches an object's bytes. A 404 maps to common.ErrNotFound.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(path), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.authorize(req)
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if err := statusError(resp); err != nil {
				return err
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.log.Error("storage download failed", "path", path, "err", err)
		return nil, err
	}
	c.log.Debug("storage download", "path", path, "bytes", len(body))
	return body, nil
}

// Upload stores an object, overwriting any existing one at the same path.
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(path), bytes.NewReader(data))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.authorize(req)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("x-upsert", "true")
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			return statusError(resp)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.log.Error("storage upload failed", "path", path, "err", err)
		return err
	}
	c.log.Info("storage upload", "path", path, "bytes", len(data), "content_type", contentType)
	return nil
}

// SignedURL asks the store for a time-limited download URL.
func (c *Client) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	reqBody, err := json.Marshal(map[string]int{"expiresIn": int(ttl.Seconds())})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/storage/v1/object/sign/%s/%s", c.baseURL, c.bucket, strings.TrimPrefix(path, "/"))

	var signed string
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.authorize(req)
			req.Header.Set("Content-Type", "application/json")
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if err := statusError(resp); err != nil {
				return err
			}
			var out struct {
				SignedURL string `json:"signedURL"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if out.SignedURL == "" {
				return retry.Unrecoverable(fmt.Errorf("sign response missing signedURL"))
			}
			signed = c.baseURL + "/storage/v1" + out.SignedURL
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.log.Error("storage sign failed", "path", path, "err", err)
		return "", err
	}
	return signed, nil
}

// Remove deletes objects from the bucket. Missing objects are not an error.
func (c *Client) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	reqBody, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)

	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, bytes.NewReader(reqBody))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			c.authorize(req)
			req.Header.Set("Content-Type", "application/json")
			resp, err := c.http.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode == http.StatusNotFound {
				return nil
			}
			return statusError(resp)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		c.log.Error("storage remove failed", "paths", paths, "err", err)
		return err
	}
	c.log.Info("storage remove", "paths", paths)
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}
}

// statusError converts a non-2xx response into an error. 404 becomes
// common.ErrNotFound and other 4xx responses are not retried.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode == http.StatusNotFound {
		return retry.Unrecoverable(common.NewAppError("STORAGE_NOT_FOUND",
			"object not found", common.ErrNotFound))
	}
	err := fmt.Errorf("storage: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return retry.Unrecoverable(err)
	}
	return err
}
