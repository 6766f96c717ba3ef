package source

import "github.com/samber/mo"

// ResolvedMedia is the outcome of one resolution. It is a value type and is
// never mutated after the resolver returns it.
type ResolvedMedia struct {
	StreamURL string            `json:"streamUrl"`
	PosterURL mo.Option[string] `json:"posterUrl"`
}

// Poster returns the poster URL or an empty string.
func (m ResolvedMedia) Poster() string {
	return m.PosterURL.OrEmpty()
}

// WithPoster returns a copy carrying poster when it is non-empty.
func (m ResolvedMedia) WithPoster(poster string) ResolvedMedia {
	if poster != "" {
		m.PosterURL = mo.Some(poster)
	}
	return m
}
