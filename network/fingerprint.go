package network

// The embeddable player configuration endpoint sits behind bot protection
// that rejects the Go TLS ClientHello. FingerprintClient dials with a
// Chrome 120 fingerprint through uTLS, preferring HTTP/2 and falling back
// to HTTP/1.1 when the server does not negotiate h2.

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"github.com/vhls-cli/vhls/constant"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

var (
	fingerprintOnce   sync.Once
	fingerprintClient *http.Client
)

// FingerprintClient returns the shared client with browser TLS fingerprinting.
func FingerprintClient() *http.Client {
	fingerprintOnce.Do(func() {
		fingerprintClient = &http.Client{
			Timeout:   time.Minute,
			Transport: NewFingerprintTransport(),
		}
	})
	return fingerprintClient
}

// FingerprintTransport is an http.RoundTripper presenting a browser ClientHello.
type FingerprintTransport struct {
	h2 *http2.Transport
	h1 *http.Transport
}

// NewFingerprintTransport builds a transport with its own connection pools.
func NewFingerprintTransport() *FingerprintTransport {
	return &FingerprintTransport{
		h2: &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialFingerprinted(ctx, network, addr, nil)
			},
		},
		h1: &http.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialFingerprinted(ctx, network, addr, []string{"http/1.1"})
			},
		},
	}
}

// RoundTrip sends the request over h2 first. Body-less requests are retried
// once over HTTP/1.1 when the h2 attempt fails.
func (t *FingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", constant.UserAgent)
	}
	if r.Header.Get("Accept-Language") == "" {
		r.Header.Set("Accept-Language", "en-US,en;q=0.5")
	}

	resp, err := t.h2.RoundTrip(r)
	if err == nil {
		return resp, nil
	}
	if r.Body != nil && r.Body != http.NoBody {
		return nil, err
	}
	return t.h1.RoundTrip(r.Clone(r.Context()))
}

// CloseIdleConnections releases pooled connections of both transports.
func (t *FingerprintTransport) CloseIdleConnections() {
	t.h2.CloseIdleConnections()
	t.h1.CloseIdleConnections()
}

func dialFingerprinted(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	cfg := &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}
	tlsConn := utls.UClient(conn, cfg, utls.HelloChrome_120)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
