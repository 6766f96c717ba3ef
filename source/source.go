// Package source defines the inputs and outputs of stream resolution.
package source

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/mo"
	"github.com/vhls-cli/vhls/vimeo"
)

// StreamSource is what a caller asks to play. It is either a Direct stream
// URL or an Identifier on the hosting service; no other implementations exist.
type StreamSource interface {
	fmt.Stringer
	isStreamSource()
}

// Direct is a stream URL that needs no resolution.
type Direct struct {
	URL string `json:"url"`
}

func (Direct) isStreamSource() {}

func (d Direct) String() string {
	return d.URL
}

// Identifier is an opaque video id on the hosting service, optionally
// accompanied by a credential for the authenticated tier.
type Identifier struct {
	ID         string
	Credential mo.Option[string]
}

func (Identifier) isStreamSource() {}

func (i Identifier) String() string {
	return "vimeo:" + i.ID
}

// HasCredential reports whether a non-empty credential was supplied.
func (i Identifier) HasCredential() bool {
	c, ok := i.Credential.Get()
	return ok && c != ""
}

// Parse turns user input into a StreamSource. Hosting-service URLs and bare
// numeric ids become an Identifier; any other http(s) URL becomes Direct.
// An empty credential is treated as absent.
func Parse(input string, credential string) (StreamSource, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return nil, fmt.Errorf("empty stream input")
	}

	if id, ok := vimeo.ExtractVideoID(in); ok {
		ident := Identifier{ID: id, Credential: mo.None[string]()}
		if c := strings.TrimSpace(credential); c != "" {
			ident.Credential = mo.Some(c)
		}
		return ident, nil
	}

	u, err := url.Parse(in)
	if err != nil {
		return nil, fmt.Errorf("invalid stream input: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return nil, fmt.Errorf("stream url %q has no host", in)
		}
		return Direct{URL: in}, nil
	default:
		return nil, fmt.Errorf("unsupported stream input %q", in)
	}
}
