// Package player assembles one playable instance: source resolution, the
// playback controller, the control surface and the visibility gate, attached
// to a host Mount.
package player

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/vhls-cli/vhls/controls"
	"github.com/vhls-cli/vhls/engine"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/playback"
	"github.com/vhls-cli/vhls/resolver"
	"github.com/vhls-cli/vhls/source"
	"github.com/vhls-cli/vhls/visibility"
)

// Player is one instance attached to a Mount.
type Player struct {
	id       string
	opts     Options
	layout   Layout
	mount    Mount
	resolver Resolver
	logger   *logrus.Entry

	engine  engine.Engine
	ctrl    *playback.Controller
	surface *controls.Surface
	gate    *visibility.Gate

	mu        sync.Mutex
	media     source.ResolvedMedia
	cancel    context.CancelFunc
	loads     sync.WaitGroup
	destroyed bool
}

// New builds a player on mount and starts loading opts.StreamInput in the
// background. Problems that make the instance unusable are returned as a
// *ConstructionError; load failures surface later through the error event.
func (f *Factory) New(mount Mount, opts Options) (*Player, error) {
	if mount == nil {
		return nil, &ConstructionError{Reason: "missing mount target"}
	}

	layout, err := ParseAspectRatio(opts.AspectRatio)
	if err != nil {
		return nil, &ConstructionError{Reason: "invalid aspect ratio", Err: err}
	}

	p := &Player{
		id:       uuid.NewString(),
		opts:     opts,
		layout:   layout,
		mount:    mount,
		resolver: f.resolver,
	}
	p.logger = log.With(logrus.Fields{"player": p.id})

	p.engine = f.engine(opts)
	if p.engine == nil {
		return nil, &ConstructionError{Reason: "no media engine"}
	}
	p.ctrl = playback.NewController(p.engine, playback.WithLogger(p.logger))

	cfg := controls.ConfigFromViper()
	cfg.ShowControls = opts.ShowControls
	cfg.Clock = f.clock
	cfg.Input = mount.Input()
	cfg.Renderer = mount.Render
	cfg.Logger = p.logger
	p.surface = controls.New(p.ctrl, cfg)

	p.ctrl.On(playback.EventError, func(ev playback.Event) {
		if ev.Err == nil {
			return
		}
		title := "Failed to load video"
		var le *loadError
		if errors.As(ev.Err, &le) {
			title = le.title
		}
		p.mount.ShowError(title, ev.Err.Message)
	})

	if opts.PauseWhenOutOfView {
		if obs := mount.Observer(); obs != nil {
			gate, err := visibility.NewGate(obs, p.ctrl, opts.VisibilityThreshold)
			if err != nil {
				p.logger.Warnf("visibility gate disabled: %v", err)
			} else {
				p.gate = gate
			}
		}
	}

	if opts.Poster != "" {
		mount.SetPoster(opts.Poster)
	}

	if opts.StreamInput != "" {
		p.Load(opts.StreamInput)
	}

	return p, nil
}

// New builds a player with a default Factory.
func New(mount Mount, opts Options) (*Player, error) {
	return NewFactory().New(mount, opts)
}

// Load starts a new load cycle for input, canceling one in flight.
func (p *Player) Load(input string) {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.loads.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.loads.Done()
		p.load(ctx, input)
	}()
}

func (p *Player) load(ctx context.Context, input string) {
	p.ctrl.MarkLoading()

	src, err := source.Parse(input, p.opts.Credential)
	if err != nil {
		p.fail(ctx, "Failed to load video", err)
		return
	}

	title := "Failed to load HLS stream"
	if _, ok := src.(source.Identifier); ok {
		title = "Failed to load Vimeo video"
	}

	var ropts []resolver.ResolveOption
	if p.opts.Poster != "" {
		ropts = append(ropts, resolver.WithPoster(p.opts.Poster))
	}

	media, err := p.resolver.Resolve(ctx, src, ropts...)
	if err != nil {
		p.fail(ctx, title, err)
		return
	}

	p.mu.Lock()
	if ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	p.media = media
	p.mu.Unlock()

	if poster := media.Poster(); poster != "" && p.opts.Poster == "" {
		p.mount.SetPoster(poster)
	}

	p.logger.WithField("source", src.String()).Infof("loading stream %s", media.StreamURL)
	if err := p.ctrl.Load(ctx, media.StreamURL); err != nil {
		return
	}

	if p.opts.Muted {
		_ = p.ctrl.SetMuted(true)
	}
	if p.opts.Autoplay {
		_ = p.ctrl.Play()
	}
}

// loadError tags a load failure with the title of its notice.
type loadError struct {
	title string
	err   error
}

func (e *loadError) Error() string { return e.err.Error() }

func (e *loadError) Unwrap() error { return e.err }

// fail reports a load failure unless the load was superseded.
func (p *Player) fail(ctx context.Context, title string, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return
	}
	p.logger.Errorf("%s: %v", title, err)
	p.ctrl.Fail(&loadError{title: title, err: err})
}

// WaitLoad blocks until every started load cycle has finished.
func (p *Player) WaitLoad() {
	p.loads.Wait()
}

func (p *Player) ID() string { return p.id }

func (p *Player) Layout() Layout { return p.layout }

// Media returns the last resolved media.
func (p *Player) Media() source.ResolvedMedia {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.media
}

// Surface exposes the control surface for the host's input mapping.
func (p *Player) Surface() *controls.Surface { return p.surface }

// State returns the playback state.
func (p *Player) State() playback.State { return p.ctrl.State() }

func (p *Player) Play() error { return p.ctrl.Play() }

func (p *Player) Pause() error { return p.ctrl.Pause() }

func (p *Player) TogglePlay() error { return p.ctrl.Toggle() }

func (p *Player) Seek(t float64) error { return p.ctrl.Seek(t) }

func (p *Player) SetVolume(v float64) error { return p.ctrl.SetVolume(v) }

func (p *Player) Volume() float64 { return p.ctrl.Volume() }

func (p *Player) ToggleMute() error { return p.ctrl.ToggleMute() }

func (p *Player) CurrentTime() float64 { return p.ctrl.CurrentTime() }

func (p *Player) Duration() float64 { return p.ctrl.Duration() }

// On subscribes to a normalized playback event.
func (p *Player) On(kind playback.EventKind, h playback.Handler) playback.ListenerID {
	return p.ctrl.On(kind, h)
}

// Off removes a subscription made with On.
func (p *Player) Off(kind playback.EventKind, id playback.ListenerID) {
	p.ctrl.Off(kind, id)
}

// Destroy cancels loading, stops the visibility gate, tears down the
// control surface and closes the engine. After it returns no handler or
// renderer call is made. Later calls return nil.
func (p *Player) Destroy() error {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return nil
	}
	p.destroyed = true
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	p.loads.Wait()

	if p.gate != nil {
		p.gate.Close()
	}
	p.surface.Destroy()
	p.ctrl.Close()

	var result *multierror.Error
	if err := p.engine.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
