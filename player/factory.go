package player

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/spf13/viper"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/key"
	"github.com/vhls-cli/vhls/resolver"
	"github.com/vhls-cli/vhls/source"
)

// Resolver resolves a StreamSource; *resolver.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, src source.StreamSource, opts ...resolver.ResolveOption) (source.ResolvedMedia, error)
}

// EngineFunc builds the engine for one player from its options.
type EngineFunc func(opts Options) engine.Engine

// Factory builds players. Hosts create one explicitly and call New for each
// mount; nothing is registered globally.
type Factory struct {
	engine   EngineFunc
	resolver Resolver
	clock    clock.Clock
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithEngine overrides how engines are built.
func WithEngine(fn EngineFunc) FactoryOption {
	return func(f *Factory) { f.engine = fn }
}

// WithResolver overrides the source resolver.
func WithResolver(r Resolver) FactoryOption {
	return func(f *Factory) { f.resolver = r }
}

// WithClock sets the clock behind control timers.
func WithClock(c clock.Clock) FactoryOption {
	return func(f *Factory) { f.clock = c }
}

// NewFactory returns a Factory using mpv and the configured resolver unless
// overridden.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	if f.engine == nil {
		f.engine = MPVEngine
	}
	if f.resolver == nil {
		f.resolver = resolver.NewFromConfig()
	}
	if f.clock == nil {
		f.clock = clock.New()
	}
	return f
}

// MPVEngine starts mpv paused unless autoplaying, and muted when asked.
func MPVEngine(opts Options) engine.Engine {
	args := []string{"--pause=" + yesNo(!opts.Autoplay)}
	if opts.Muted {
		args = append(args, "--mute=yes")
	}
	mpvOpts := []engine.MPVOption{engine.WithArgs(args...)}
	if bin := viper.GetString(key.PlayerEngine); bin != "" {
		mpvOpts = append(mpvOpts, engine.WithBinary(bin))
	}
	return engine.NewMPV(mpvOpts...)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
