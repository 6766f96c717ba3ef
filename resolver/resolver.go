// Package resolver turns a source.StreamSource into a playable stream by
// walking the hosting service's access tiers from least to most privileged.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/network"
	"github.com/vhls-cli/vhls/source"
	"github.com/vhls-cli/vhls/vimeo"
	"github.com/vhls-cli/vhls/where"
)

// Service is the fetch surface the tiers run against. *vimeo.Client
// implements it.
type Service interface {
	OEmbedPoster(ctx context.Context, id string) (string, error)
	PlayerConfig(ctx context.Context, id string) (vimeo.Stream, error)
	Video(ctx context.Context, id, token string) (vimeo.Stream, error)
}

// Resolver runs the tiers sequentially; a tier is attempted at most once per
// call.
type Resolver struct {
	service Service
	timeout time.Duration
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout bounds a whole resolution. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// New returns a Resolver backed by service.
func New(service Service, opts ...Option) *Resolver {
	r := &Resolver{service: service}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig builds a Resolver over the real hosting service using the
// resolver.* settings.
func NewFromConfig() *Resolver {
	timeout := time.Duration(viper.GetInt(key.ResolverTimeoutSeconds)) * time.Second

	opts := []vimeo.Option{
		vimeo.WithHTTPClient(network.WithTimeout(network.Client, timeout)),
		vimeo.WithScrapeClient(network.WithTimeout(network.Client, timeout)),
		vimeo.WithReferer(viper.GetString(key.ResolverReferer)),
	}
	if viper.GetBool(key.ResolverFingerprint) {
		opts = append(opts, vimeo.WithScrapeClient(network.WithTimeout(network.FingerprintClient(), timeout)))
	}
	if viper.GetBool(key.ResolverPosterCache) {
		opts = append(opts, vimeo.WithPosterCache(where.Posters(), 24*time.Hour))
	}

	return New(vimeo.New(opts...), WithTimeout(timeout))
}

type resolveOptions struct {
	poster string
}

// ResolveOption customizes a single Resolve call.
type ResolveOption func(*resolveOptions)

// WithPoster supplies a caller poster. It is returned unchanged and the
// public-metadata tier is skipped.
func WithPoster(poster string) ResolveOption {
	return func(o *resolveOptions) { o.poster = poster }
}

// Resolve returns the stream (and poster when known) for src. Identifier
// failures are *source.ResolutionError values; a canceled ctx is returned
// as is.
func (r *Resolver) Resolve(ctx context.Context, src source.StreamSource, opts ...ResolveOption) (source.ResolvedMedia, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch s := src.(type) {
	case source.Direct:
		return source.ResolvedMedia{StreamURL: s.URL}.WithPoster(o.poster), nil
	case source.Identifier:
		if r.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		return r.resolveIdentifier(ctx, s, o)
	case nil:
		return source.ResolvedMedia{}, errors.New("no stream source")
	default:
		return source.ResolvedMedia{}, fmt.Errorf("unsupported stream source %T", src)
	}
}

// scrapeOutcome records how the player config tier ended when it did not
// produce a stream.
type scrapeOutcome int

const (
	scrapeFailed scrapeOutcome = iota
	scrapeBlocked
	scrapeNotFound
	scrapeNoStream
)

func (r *Resolver) resolveIdentifier(ctx context.Context, ident source.Identifier, o resolveOptions) (source.ResolvedMedia, error) {
	logger := log.With(logrus.Fields{"video": ident.ID})
	callerPoster := o.poster != ""
	media := source.ResolvedMedia{}.WithPoster(o.poster)

	// Public metadata: poster only, never fatal.
	if !callerPoster {
		poster, err := r.service.OEmbedPoster(ctx, ident.ID)
		if err != nil {
			logger.Warnf("oembed poster: %v", err)
		} else {
			media = media.WithPoster(poster)
		}
	}
	if err := ctx.Err(); err != nil {
		return source.ResolvedMedia{}, err
	}

	// Player config scrape.
	outcome := scrapeFailed
	stream, err := r.service.PlayerConfig(ctx, ident.ID)
	switch {
	case err == nil:
		if !callerPoster {
			media = media.WithPoster(stream.PosterURL)
		}
		if stream.HLSURL != "" {
			media.StreamURL = stream.HLSURL
			return media, nil
		}
		outcome = scrapeNoStream
	case vimeo.IsAccessDenied(err):
		outcome = scrapeBlocked
		logger.Infof("player config: %v", source.NewResolutionError(source.CorsBlocked, ident.ID, err))
	case vimeo.IsNotFound(err):
		outcome = scrapeNotFound
		logger.Warnf("player config: %v", err)
	case errors.Is(err, vimeo.ErrNoStream):
		outcome = scrapeNoStream
	default:
		logger.Warnf("player config: %v", err)
	}
	if err := ctx.Err(); err != nil {
		return source.ResolvedMedia{}, err
	}

	// Authenticated API.
	token, ok := ident.Credential.Get()
	if !ok || token == "" {
		if outcome == scrapeNotFound {
			return source.ResolvedMedia{}, source.NewResolutionError(source.NotFound, ident.ID, nil)
		}
		return source.ResolvedMedia{}, source.NewResolutionError(source.MissingCredential, ident.ID, nil)
	}

	stream, err = r.service.Video(ctx, ident.ID, token)
	switch {
	case err == nil:
		if !callerPoster {
			media = media.WithPoster(stream.PosterURL)
		}
		media.StreamURL = stream.HLSURL
		return media, nil
	case errors.Is(err, vimeo.ErrNoStream):
		return source.ResolvedMedia{}, source.NewResolutionError(source.NoStreamAvailable, ident.ID, nil)
	case vimeo.IsNotFound(err):
		return source.ResolvedMedia{}, source.NewResolutionError(source.NotFound, ident.ID, err)
	case vimeo.IsAccessDenied(err):
		return source.ResolvedMedia{}, source.NewResolutionError(source.MissingCredential, ident.ID, err)
	case ctx.Err() != nil:
		return source.ResolvedMedia{}, ctx.Err()
	default:
		return source.ResolvedMedia{}, source.NewResolutionError(source.NoStreamAvailable, ident.ID, err)
	}
}
