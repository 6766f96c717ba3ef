// Package vimeo is a client for the three Vimeo endpoints a video id can be
// resolved through: public oEmbed metadata, the embeddable player
// configuration and the authenticated REST API.
package vimeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vhls-cli/vhls/network"
)

const (
	DefaultOEmbedURL = "https://vimeo.com/api/oembed.json"
	DefaultPlayerURL = "https://player.vimeo.com/video"
	DefaultAPIURL    = "https://api.vimeo.com"
)

// ErrNoStream is returned when a response is valid but carries no HLS link.
var ErrNoStream = errors.New("no hls stream in response")

// StatusError reports a non-2xx answer from one of the endpoints.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

// IsAccessDenied reports whether err is a 401 or 403 answer.
func IsAccessDenied(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 answer.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Stream is what the player configuration and the API can yield.
type Stream struct {
	HLSURL    string
	PosterURL string
}

// Client talks to the Vimeo endpoints. The zero value is not usable; use New.
type Client struct {
	public  *http.Client
	scrape  *http.Client
	oembed  string
	player  string
	api     string
	referer string
	posters *posterCache
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the client used for oEmbed and API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.public = c }
}

// WithScrapeClient sets the client used for the player configuration request.
func WithScrapeClient(c *http.Client) Option {
	return func(cl *Client) { cl.scrape = c }
}

// WithEndpoints overrides the base URLs, mainly for tests.
func WithEndpoints(oembed, player, api string) Option {
	return func(cl *Client) {
		cl.oembed, cl.player, cl.api = oembed, player, api
	}
}

// WithReferer sets the Referer sent to the player configuration endpoint.
// Domain-restricted videos only answer to their allowed embed domains.
func WithReferer(referer string) Option {
	return func(cl *Client) { cl.referer = referer }
}

// WithPosterCache caches oEmbed posters on disk for lifetime.
func WithPosterCache(path string, lifetime time.Duration) Option {
	return func(cl *Client) { cl.posters = newPosterCache(path, lifetime) }
}

// New returns a Client using the shared network clients by default.
func New(opts ...Option) *Client {
	c := &Client{
		public: network.Client,
		scrape: network.Client,
		oembed: DefaultOEmbedURL,
		player: DefaultPlayerURL,
		api:    DefaultAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) getJSON(ctx context.Context, client *http.Client, endpoint, rawURL string, header http.Header, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", endpoint, err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}
