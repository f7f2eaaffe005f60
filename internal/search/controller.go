package search

import (
	"context"
	"log/slog"
	"time"

	"prodsearch/internal/catalog"
	"prodsearch/internal/clock"
	"prodsearch/internal/debounce"
	"prodsearch/internal/domain"
)

// DefaultDebounce is the typing pause before a search is sent.
const DefaultDebounce = 500 * time.Millisecond

// idSearcher is implemented by catalog.Client and lets the controller
// report request ids for successful fetches too.
type idSearcher interface {
	SearchWithID(ctx context.Context, query string) ([]domain.Item, string, error)
}

// Options configures a Controller.
type Options struct {
	Clock    clock.Clock
	Debounce time.Duration

	// FetchOnEmpty keeps searching when the query is cleared, so the
	// result list falls back to the whole catalog. The suggestion list
	// stays empty either way.
	FetchOnEmpty bool

	// Post delivers Due and Settled messages to the owner's loop. It is
	// called from timer and fetch goroutines.
	Post func(msg any)

	// Notify receives diagnostics events, including the terminal
	// FetchCompletedEvent of every fetch. Optional.
	Notify func(domain.DomainEvent)

	Logger *slog.Logger
}

// Controller owns the query, the suggestion and result lists and the
// request epoch.
type Controller struct {
	searcher  domain.Searcher
	clock     clock.Clock
	debouncer *debounce.Debouncer[Request]
	post      func(any)
	notify    func(domain.DomainEvent)
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	fetchOnEmpty bool
	state        State
	epoch        uint64
	sequence     uint64 // last dispatched fetch
	resultsSeq   uint64 // fetch that last wrote Results
	lastFailed   *Request
}

// New creates a Controller searching through s.
func New(s domain.Searcher, opts Options) *Controller {
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
	c := &Controller{
		searcher:     s,
		clock:        opts.Clock,
		post:         opts.Post,
		notify:       opts.Notify,
		logger:       opts.Logger.With("component", "search"),
		ctx:          ctx,
		cancel:       cancel,
		fetchOnEmpty: opts.FetchOnEmpty,
	}
	c.debouncer = debounce.New(opts.Clock, opts.Debounce, func(req Request) {
		c.post(Due{Request: req})
	})
	return c
}

// Start schedules the initial fetch for the current (empty) query when
// FetchOnEmpty is set, mirroring the first render of the search page.
func (c *Controller) Start() {
	if c.state.Query == "" && !c.fetchOnEmpty {
		return
	}
	c.schedule()
}

// State returns a snapshot of the controller state. The slices are
// shared and must not be modified.
func (c *Controller) State() State {
	s := c.state
	s.Epoch = c.epoch
	return s
}

// Query returns the current query.
func (c *Controller) Query() string { return c.state.Query }

// Epoch returns the current request epoch.
func (c *Controller) Epoch() uint64 { return c.epoch }

// SetQuery replaces the query. An empty query clears the suggestions
// immediately; anything else schedules a debounced search.
func (c *Controller) SetQuery(text string) {
	if text == c.state.Query {
		return
	}
	c.state.Query = text
	c.state.Err = nil
	c.lastFailed = nil
	c.epoch++

	if text == "" {
		c.state.Suggestions = nil
		if !c.fetchOnEmpty {
			c.debouncer.Stop()
			c.state.Phase = PhaseIdle
			return
		}
	}
	c.schedule()
}

func (c *Controller) schedule() {
	req := Request{
		Query:   c.state.Query,
		Epoch:   c.epoch,
		Kind:    domain.FetchDebounced,
		Suggest: true,
	}
	c.debouncer.Trigger(req)
	c.state.Phase = PhasePendingDebounce
	c.notify(domain.SearchScheduledEvent{Query: req.Query, Epoch: req.Epoch})
}

// SelectSuggestion pins item: the query becomes its name, the suggestion
// list is cleared right away and the result list is refreshed by an
// immediate search that never touches the suggestions.
func (c *Controller) SelectSuggestion(item domain.Item) {
	c.debouncer.Stop()
	c.state.Query = item.Name
	c.state.Suggestions = nil
	c.state.Err = nil
	c.lastFailed = nil
	c.epoch++

	c.dispatch(Request{
		Query: item.Name,
		Epoch: c.epoch,
		Kind:  domain.FetchSelection,
	})
}

// Retry re-issues the last failed search immediately under a new epoch.
// It reports false when there is nothing to retry.
func (c *Controller) Retry() bool {
	if c.lastFailed == nil || c.lastFailed.Query != c.state.Query {
		return false
	}
	req := *c.lastFailed
	c.lastFailed = nil
	c.state.Err = nil
	c.debouncer.Stop()
	c.epoch++

	req.Epoch = c.epoch
	req.Kind = domain.FetchRetry
	c.dispatch(req)
	return true
}

// Handle applies a message posted by the controller's own goroutines.
// It reports whether msg belonged to the controller.
func (c *Controller) Handle(msg any) bool {
	switch msg := msg.(type) {
	case Due:
		c.onDue(msg.Request)
		return true
	case Settled:
		c.OnSettle(msg)
		return true
	}
	return false
}

// onDue sends the debounced request unless the query changed while the
// Due message was queued.
func (c *Controller) onDue(req Request) {
	if req.Epoch != c.epoch {
		c.logger.Debug("skipping superseded search", "query", req.Query, "epoch", req.Epoch, "current", c.epoch)
		return
	}
	c.dispatch(req)
}

func (c *Controller) dispatch(req Request) {
	c.sequence++
	seq := c.sequence
	c.state.InFlight++
	if req.Epoch == c.epoch {
		c.state.Phase = PhaseInFlight
	}
	c.notify(domain.SearchDispatchedEvent{Query: req.Query, Epoch: req.Epoch, Sequence: seq, Kind: req.Kind})
	c.logger.Debug("search dispatched", "query", req.Query, "epoch", req.Epoch, "seq", seq, "kind", req.Kind)

	ctx := c.ctx
	go func() {
		started := c.clock.Now()
		var (
			items []domain.Item
			reqID string
			err   error
		)
		if s, ok := c.searcher.(idSearcher); ok {
			items, reqID, err = s.SearchWithID(ctx, req.Query)
		} else {
			items, err = c.searcher.Search(ctx, req.Query)
			reqID = catalog.RequestIDFrom(err)
		}
		c.post(Settled{
			Request:   req,
			Sequence:  seq,
			Items:     items,
			Err:       err,
			RequestID: reqID,
			Duration:  c.clock.Now().Sub(started),
		})
	}()
}

// OnSettle reconciles a completed fetch with the current state.
func (c *Controller) OnSettle(s Settled) {
	if c.state.InFlight > 0 {
		c.state.InFlight--
	}
	current := s.Epoch == c.epoch
	if current {
		c.state.Phase = PhaseSettled
	}
	c.state.LastDuration = s.Duration

	// Terminal notification runs for every outcome and never mutates
	// state.
	defer c.notify(domain.FetchCompletedEvent{
		Query:     s.Query,
		Epoch:     s.Epoch,
		Sequence:  s.Sequence,
		Kind:      s.Kind,
		RequestID: s.RequestID,
		Results:   len(s.Items),
		Duration:  s.Duration,
		Err:       s.Err,
	})

	if s.Err != nil {
		c.logger.Warn("failed to load products", "query", s.Query, "kind", s.Kind, "request_id", s.RequestID, "error", s.Err)
		if current {
			req := s.Request
			c.lastFailed = &req
			c.state.Err = s.Err
		}
		return
	}

	if s.Suggest {
		if current && c.state.Query != "" {
			c.state.Suggestions = s.Items
		} else if !current {
			c.notify(domain.StaleDiscardedEvent{Query: s.Query, Epoch: s.Epoch, CurrentEpoch: c.epoch})
			c.logger.Debug("discarding stale suggestions", "query", s.Query, "epoch", s.Epoch, "current", c.epoch)
		}
	}

	if s.Sequence > c.resultsSeq {
		c.resultsSeq = s.Sequence
		c.state.Results = s.Items
	}
	if current {
		c.state.Err = nil
	}
}

// Close stops the debounce timer and cancels fetches still in flight.
// Their Settled messages are still posted.
func (c *Controller) Close() {
	c.debouncer.Stop()
	c.cancel()
}
