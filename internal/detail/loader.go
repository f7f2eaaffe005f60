// Package detail loads the product shown on the detail screen.
package detail

import (
	"context"
	"log/slog"
	"time"

	"prodsearch/internal/clock"
	"prodsearch/internal/domain"
)

// Loaded is posted when a detail fetch finishes.
type Loaded struct {
	ID       int64
	Sequence uint64
	Item     *domain.Item
	Err      error
	Duration time.Duration
}

// State is what the detail screen renders. Item is nil until the first
// successful load; check Loading and Err before using it.
type State struct {
	ID      int64
	Item    *domain.Item
	Loading bool
	Err     error
}

// Ready reports whether Item can be rendered.
func (s State) Ready() bool { return !s.Loading && s.Err == nil && s.Item != nil }

// Options configures a Loader.
type Options struct {
	Clock  clock.Clock
	Post   func(msg any)
	Notify func(domain.DomainEvent)
	Logger *slog.Logger
}

// Loader fetches one item per route id. Like the search controller it
// only mutates state from its owner's loop.
type Loader struct {
	getter domain.Getter
	clock  clock.Clock
	post   func(any)
	notify func(domain.DomainEvent)
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	active   bool
	sequence uint64
	state    State
}

// New returns a Loader reading from g.
func New(g domain.Getter, opts Options) *Loader {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Post == nil {
		opts.Post = func(any) {}
	}
	if opts.Notify == nil {
		opts.Notify = func(domain.DomainEvent) {}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		getter: g,
		clock:  opts.Clock,
		post:   opts.Post,
		notify: opts.Notify,
		logger: opts.Logger.With("component", "detail"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// State returns the current detail state.
func (l *Loader) State() State { return l.state }

// Load shows id. It fetches again only when id differs from the one
// already loaded or loading; use Reload to force a fetch.
func (l *Loader) Load(id int64) {
	if l.active && l.state.ID == id && (l.state.Loading || l.state.Item != nil) {
		return
	}
	l.start(id)
}

// Reload fetches the current id again, typically after a failure.
func (l *Loader) Reload() bool {
	if !l.active {
		return false
	}
	l.start(l.state.ID)
	return true
}

// Reset forgets the current record. Fetches still in flight are ignored
// when they complete.
func (l *Loader) Reset() {
	l.active = false
	l.sequence++
	l.state = State{}
}

func (l *Loader) start(id int64) {
	l.active = true
	l.sequence++
	seq := l.sequence
	l.state = State{ID: id, Loading: true}

	ctx := l.ctx
	go func() {
		started := l.clock.Now()
		item, err := l.getter.Get(ctx, id)
		l.post(Loaded{
			ID:       id,
			Sequence: seq,
			Item:     item,
			Err:      err,
			Duration: l.clock.Now().Sub(started),
		})
	}()
}

// Handle applies a Loaded message. It reports whether msg belonged to
// the loader.
func (l *Loader) Handle(msg any) bool {
	loaded, ok := msg.(Loaded)
	if !ok {
		return false
	}
	l.OnLoaded(loaded)
	return true
}

// OnLoaded applies the outcome of the fetch for the current id. Results
// for an id the user already navigated away from are dropped.
func (l *Loader) OnLoaded(m Loaded) {
	l.notify(domain.DetailLoadedEvent{ID: m.ID, Duration: m.Duration, Err: m.Err})

	if !l.active || m.Sequence != l.sequence {
		return
	}
	l.state.Loading = false
	if m.Err != nil {
		l.logger.Warn("failed to load product detail", "id", m.ID, "error", m.Err)
		l.state.Err = m.Err
		return
	}
	if m.Item == nil {
		l.state.Err = domain.ErrNotFound
		return
	}
	l.state.Item = m.Item
	l.state.Err = nil
}

// Close cancels a fetch in flight.
func (l *Loader) Close() {
	l.cancel()
}
