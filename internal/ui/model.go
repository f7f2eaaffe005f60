package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"prodsearch/internal/clock"
	"prodsearch/internal/config"
	"prodsearch/internal/detail"
	"prodsearch/internal/domain"
	"prodsearch/internal/eventbus"
	"prodsearch/internal/search"
	"prodsearch/internal/ui/input"
	inputtypes "prodsearch/internal/ui/input/types"
	"prodsearch/internal/ui/state"
	"prodsearch/internal/ui/views"
)

// Options wires the model to its collaborators
type Options struct {
	Catalog  domain.Catalog
	ImageURL func(domain.Item) string
	Config   *config.Config
	Bus      eventbus.EventBus // optional diagnostics sink
	Clock    clock.Clock
	Logger   *slog.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	logger *slog.Logger

	search   *search.Controller
	detail   *detail.Loader
	imageURL func(domain.Item) string

	// inbox receives what timer and fetch goroutines post; done unblocks
	// them once the model is closed
	inbox chan any
	done  chan struct{}

	help     help.Model
	spinner  spinner.Model
	spinning bool

	renderer     *views.Renderer
	prices       *views.PriceFormatter
	inputHandler *input.Handler
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	imageURL := opts.ImageURL
	if imageURL == nil {
		imageURL = func(it domain.Item) string { return it.Image }
	}

	prices := views.NewPriceFormatter(cfg.UI.Locale, cfg.UI.Currency)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		state:        state.NewAppState(),
		logger:       logger.With("component", "ui"),
		imageURL:     imageURL,
		inbox:        make(chan any, 256),
		done:         make(chan struct{}),
		help:         help.New(),
		spinner:      sp,
		renderer:     views.NewRenderer(prices, cfg.UI.Highlight),
		prices:       prices,
		inputHandler: input.New(),
	}

	m.search = search.New(opts.Catalog, search.Options{
		Clock:        opts.Clock,
		Debounce:     cfg.Search.Debounce.Duration,
		FetchOnEmpty: cfg.Search.FetchOnEmpty,
		Post:         m.post,
		Notify:       m.notify,
		Logger:       logger,
	})
	m.detail = detail.New(opts.Catalog, detail.Options{
		Clock:  opts.Clock,
		Post:   m.post,
		Notify: m.notify,
		Logger: logger,
	})
	return m
}

func (m *Model) post(msg any) {
	select {
	case m.inbox <- msg:
	case <-m.done:
	}
}

func (m *Model) notify(e domain.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// waitForAsync delivers the next posted message to Update
func (m *Model) waitForAsync() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.inbox:
			return asyncMsg{msg: msg}
		case <-m.done:
			return nil
		}
	}
}

// Close stops pending timers and in-flight fetches
func (m *Model) Close() {
	select {
	case <-m.done:
		return
	default:
	}
	close(m.done)
	m.search.Close()
	m.detail.Close()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.search.Start()
	return tea.Batch(m.inputHandler.Init(), m.waitForAsync(), m.spin())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		actions, cmd := m.inputHandler.HandleKey(msg, m.context())

		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		m.syncCursors()
		cmds = append(cmds, m.spin())
		return m, tea.Batch(cmds...)

	case asyncMsg:
		if !m.search.Handle(msg.msg) && !m.detail.Handle(msg.msg) {
			m.logger.Warn("unhandled async message", "type", fmt.Sprintf("%T", msg.msg))
		}
		m.syncCursors()
		return m, tea.Batch(m.waitForAsync(), m.spin())

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerExitMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", "error", msg.err)
			m.state.StatusMessage = fmt.Sprintf("pager failed: %v", msg.err)
			return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
		}
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		// cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.QuitAction:
		return tea.Quit

	case inputtypes.UpdateTextAction:
		m.search.SetQuery(a.Text)
		m.state.SuggestionIndex = 0

	case inputtypes.ClearQueryAction:
		m.inputHandler.SetText("")
		m.search.SetQuery("")
		m.state.SuggestionIndex = 0

	case inputtypes.ChangeModeAction:
		switch a.Mode {
		case inputtypes.ModeSuggestions:
			m.state.SuggestionIndex = 0
		case inputtypes.ModeResults:
			m.state.EnsureResultVisible()
		}

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ChooseSuggestionAction:
		suggestions, _ := m.visibleSuggestions()
		if m.state.SuggestionIndex >= len(suggestions) {
			return nil
		}
		item := suggestions[m.state.SuggestionIndex]
		m.inputHandler.SetText(item.Name)
		m.search.SelectSuggestion(item)
		m.state.SuggestionIndex = 0
		m.state.ResultIndex = 0
		m.state.ResultOffset = 0

	case inputtypes.RetryAction:
		m.search.Retry()

	case inputtypes.OpenDetailAction:
		results := m.search.State().Results
		if m.state.ResultIndex >= len(results) {
			return nil
		}
		id := results[m.state.ResultIndex].ID
		m.state.OpenDetail(id)
		m.detail.Load(id)

	case inputtypes.BackAction:
		m.detail.Reset()
		m.state.CloseDetail()

	case inputtypes.ReloadDetailAction:
		m.detail.Reload()

	case inputtypes.OpenPagerAction:
		st := m.detail.State()
		if !st.Ready() {
			return nil
		}
		return openPager(views.DetailText(*st.Item, m.imageURL(*st.Item), m.prices))

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.help.ShowAll = m.state.ShowHelp
		m.updateViewportHeight()
	}
	return nil
}

func (m *Model) navigate(direction string) {
	var delta int
	switch direction {
	case "up":
		delta = -1
	case "down":
		delta = 1
	case "pageup":
		delta = -m.state.ViewportHeight
	case "pagedown":
		delta = m.state.ViewportHeight
	case "home":
		delta = -1 << 30
	case "end":
		delta = 1 << 30
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSuggestions:
		suggestions, _ := m.visibleSuggestions()
		m.state.MoveSuggestion(delta, len(suggestions))
	case inputtypes.ModeResults:
		m.state.MoveResult(delta, len(m.search.State().Results))
	}
}

// syncCursors keeps cursors and mode valid after the lists changed
// underneath them
func (m *Model) syncCursors() {
	suggestions, _ := m.visibleSuggestions()
	st := m.search.State()
	m.state.ClampCursors(len(suggestions), len(st.Results))

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSuggestions:
		if len(suggestions) == 0 || st.Query == "" {
			m.inputHandler.ChangeMode(inputtypes.ModeTyping)
		}
	case inputtypes.ModeResults:
		if len(st.Results) == 0 {
			m.inputHandler.ChangeMode(inputtypes.ModeTyping)
		}
	}
	m.updateViewportHeight()
}

// visibleSuggestions applies the display cap. The second value is the
// number of rows left out.
func (m *Model) visibleSuggestions() ([]domain.Item, int) {
	st := m.search.State()
	if st.Query == "" {
		return nil, 0
	}
	list := st.Suggestions
	limit := m.config.UI.MaxSuggestions
	if limit > 0 && len(list) > limit {
		return list[:limit], len(list) - limit
	}
	return list, 0
}

func (m *Model) busy() bool {
	return m.search.State().InFlight > 0 || m.detail.State().Loading
}

// spin starts the spinner when something is loading and it is not
// already ticking
func (m *Model) spin() tea.Cmd {
	if m.spinning || !m.busy() {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// updateViewportHeight sizes the result list to what is left after the
// title, search box, dropdown, status and help
func (m *Model) updateViewportHeight() {
	if m.state.Height == 0 {
		return
	}
	reserved := 10
	if suggestions, more := m.visibleSuggestions(); len(suggestions) > 0 {
		reserved += len(suggestions) + 3
		if more > 0 {
			reserved++
		}
	}
	if m.state.ShowHelp {
		reserved += 4
	}
	m.state.ViewportHeight = m.state.Height - reserved
	if m.state.ViewportHeight < 3 {
		m.state.ViewportHeight = 3
	}
	m.state.EnsureResultVisible()
}

func (m *Model) context() *input.ModelContext {
	return &input.ModelContext{
		Search: m.search.State(),
		Detail: m.detail.State(),
		UI:     m.state,
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	st := m.search.State()
	suggestions, more := m.visibleSuggestions()
	mode := m.inputHandler.CurrentMode()

	vs := views.ViewState{
		Width:            m.state.Width,
		Height:           m.state.Height,
		Route:            m.state.Route(),
		InputView:        m.inputHandler.TextInput().View(),
		Query:            st.Query,
		Suggestions:      suggestions,
		MoreSuggestions:  more,
		SuggestionIndex:  m.state.SuggestionIndex,
		SuggestionsFocus: mode == inputtypes.ModeSuggestions,
		Results:          st.Results,
		ResultIndex:      m.state.ResultIndex,
		ResultOffset:     m.state.ResultOffset,
		ResultsFocus:     mode == inputtypes.ModeResults,
		ViewportHeight:   m.state.ViewportHeight,
		Phase:            st.Phase,
		InFlight:         st.InFlight,
		Err:              st.Err,
		LastDuration:     st.LastDuration,
		Spinner:          m.spinner.View(),
		StatusMessage:    m.state.StatusMessage,
		HelpView:         m.help.View(keysFor(mode)),
		HelpKey:          helpKeyFor(mode),
	}
	if m.state.Screen == state.ScreenDetail {
		vs.ShowDetail = true
		vs.Detail = m.detail.State()
		if vs.Detail.Item != nil {
			vs.ImageURL = m.imageURL(*vs.Detail.Item)
		}
	}
	return vs
}
