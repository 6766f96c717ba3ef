// Package network provides the HTTP clients used to talk to the hosting service.
package network

import (
	"net/http"
	"time"

	"github.com/vhls-cli/vhls/constant"
)

// Client is the shared HTTP client for the public and authenticated tiers.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: userAgent{next: newTransport()},
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// userAgent sets the application User-Agent on requests that do not carry one.
type userAgent struct {
	next http.RoundTripper
}

func (u userAgent) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", constant.UserAgent)
	return u.next.RoundTrip(r)
}

// WithTimeout returns a copy of c with a different overall timeout.
func WithTimeout(c *http.Client, timeout time.Duration) *http.Client {
	cp := *c
	cp.Timeout = timeout
	return &cp
}
