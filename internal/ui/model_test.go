package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodsearch/internal/clock"
	"prodsearch/internal/config"
	"prodsearch/internal/domain"
	inputtypes "prodsearch/internal/ui/input/types"
	"prodsearch/internal/ui/state"
	"prodsearch/internal/ui/views"
)

var catalogItems = []domain.Item{
	{ID: 1, Name: "Smartphone X", Brand: "Acme", Price: 799},
	{ID: 2, Name: "Headphones", Brand: "Sonic", Price: 129},
	{ID: 3, Name: "Phone Case", Brand: "Acme", Price: 19},
	{ID: 4, Name: "Laptop", Brand: "Acme", Price: 1299},
}

type fakeCatalog struct {
	mu       sync.Mutex
	fail     error
	searched []string
}

func (f *fakeCatalog) Search(_ context.Context, q string) ([]domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, q)
	if f.fail != nil {
		return nil, f.fail
	}
	out := []domain.Item{}
	for _, it := range catalogItems {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(q)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (*domain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for _, it := range catalogItems {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCatalog) setFail(err error) {
	f.mu.Lock()
	f.fail = err
	f.mu.Unlock()
}

func (f *fakeCatalog) searches() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searched...)
}

type testModel struct {
	*Model
	t   *testing.T
	clk *clock.FakeClock
	cat *fakeCatalog
}

func newTestModel(t *testing.T, mutate func(*config.Config)) *testModel {
	cfg := config.DefaultConfig()
	cfg.Search.FetchOnEmpty = false
	cfg.UI.Highlight = false
	if mutate != nil {
		mutate(cfg)
	}
	clk := clock.NewFake(time.Unix(0, 0))
	cat := &fakeCatalog{}
	m := NewModel(Options{
		Catalog: cat,
		Config:  cfg,
		Clock:   clk,
		ImageURL: func(it domain.Item) string {
			return "http://catalog.test/products/" + it.Image
		},
	})
	t.Cleanup(m.Close)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &testModel{Model: m, t: t, clk: clk, cat: cat}
}

func (tm *testModel) typeText(s string) {
	for _, r := range s {
		tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (tm *testModel) press(k tea.KeyType) {
	tm.Update(tea.KeyMsg{Type: k})
}

func (tm *testModel) pressRune(r rune) {
	tm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// settle advances the clock past the debounce and feeds posted messages
// to Update until nothing is in flight.
func (tm *testModel) settle() {
	tm.t.Helper()
	tm.clk.Advance(config.DefaultDebounce)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-tm.inbox:
			tm.Update(asyncMsg{msg: msg})
		case <-deadline:
			tm.t.Fatal("model never settled")
		}
		if len(tm.inbox) == 0 && !tm.busy() {
			return
		}
	}
}

func (tm *testModel) screen() string {
	return ansi.Strip(tm.View())
}

// assertNoDropdown checks the dropdown box is gone; the help bar still
// names the suggestions key.
func (tm *testModel) assertNoDropdown() {
	tm.t.Helper()
	visible, more := tm.visibleSuggestions()
	assert.Empty(tm.t, visible)
	assert.Zero(tm.t, more)
	assert.NotContains(tm.t, tm.screen(), views.SuggestionsHeader)
}

func TestTypingSearchesAfterPause(t *testing.T) {
	tm := newTestModel(t, nil)

	tm.typeText("pho")
	assert.Equal(t, "pho", tm.search.State().Query)
	assert.Empty(t, tm.cat.searches(), "nothing is sent while typing")

	tm.settle()
	assert.Equal(t, []string{"pho"}, tm.cat.searches())

	st := tm.search.State()
	require.Len(t, st.Suggestions, 3)
	assert.Len(t, st.Results, 3)
	assert.Contains(t, tm.screen(), views.SuggestionsHeader)
	assert.Contains(t, tm.screen(), "Phone Case")
}

func TestChoosingSuggestionPinsQuery(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.typeText("pho")
	tm.settle()

	tm.press(tea.KeyDown)
	assert.Equal(t, inputtypes.ModeSuggestions, tm.inputHandler.CurrentMode())
	tm.press(tea.KeyDown)
	tm.press(tea.KeyEnter)

	// Headphones is the second suggestion
	assert.Equal(t, "Headphones", tm.inputHandler.TextInput().Value())
	st := tm.search.State()
	assert.Equal(t, "Headphones", st.Query)
	assert.Empty(t, st.Suggestions, "dropdown closes at once")
	assert.Equal(t, inputtypes.ModeTyping, tm.inputHandler.CurrentMode())

	tm.settle()
	assert.Equal(t, []string{"pho", "Headphones"}, tm.cat.searches())
	st = tm.search.State()
	assert.Empty(t, st.Suggestions)
	require.Len(t, st.Results, 1)
	tm.assertNoDropdown()
}

func TestEscClearsQueryAndDropdown(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.typeText("pho")
	tm.settle()

	tm.press(tea.KeyEsc)
	assert.Equal(t, "", tm.inputHandler.TextInput().Value())
	st := tm.search.State()
	assert.Equal(t, "", st.Query)
	assert.Empty(t, st.Suggestions)
	tm.assertNoDropdown()
}

func TestOpenDetailAndBack(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.typeText("laptop")
	tm.settle()

	tm.press(tea.KeyEnter)
	assert.Equal(t, inputtypes.ModeResults, tm.inputHandler.CurrentMode())
	tm.press(tea.KeyEnter)
	assert.Equal(t, inputtypes.ModeDetail, tm.inputHandler.CurrentMode())
	assert.Equal(t, state.ScreenDetail, tm.state.Screen)
	assert.Equal(t, "/product-detail/4", tm.state.Route())
	assert.True(t, tm.detail.State().Loading)
	assert.Contains(t, tm.screen(), "loading product")

	tm.settle()
	require.True(t, tm.detail.State().Ready())
	assert.Contains(t, tm.screen(), "Laptop")
	assert.Contains(t, tm.screen(), "http://catalog.test/products/")

	tm.press(tea.KeyEsc)
	assert.Equal(t, inputtypes.ModeResults, tm.inputHandler.CurrentMode())
	assert.Equal(t, state.ScreenSearch, tm.state.Screen)
	assert.False(t, tm.detail.State().Ready())
}

func TestDetailFailureCanReload(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.typeText("laptop")
	tm.settle()

	tm.cat.setFail(errors.New("503 unavailable"))
	tm.press(tea.KeyEnter)
	tm.press(tea.KeyEnter)
	tm.settle()

	st := tm.detail.State()
	assert.False(t, st.Loading)
	assert.Error(t, st.Err)
	assert.Contains(t, tm.screen(), "503 unavailable")

	tm.cat.setFail(nil)
	tm.pressRune('r')
	tm.settle()
	assert.True(t, tm.detail.State().Ready())
}

func TestSearchFailureShowsRetry(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.typeText("lap")
	tm.settle()
	require.Len(t, tm.search.State().Results, 1)

	tm.cat.setFail(errors.New("connection refused"))
	tm.typeText("t")
	tm.settle()

	st := tm.search.State()
	require.Error(t, st.Err)
	assert.Len(t, st.Results, 1, "last good results stay")
	assert.Contains(t, tm.screen(), "ctrl+r to retry")

	tm.cat.setFail(nil)
	tm.press(tea.KeyCtrlR)
	tm.settle()
	st = tm.search.State()
	assert.NoError(t, st.Err)
	assert.Equal(t, []string{"lap", "lapt", "lapt"}, tm.cat.searches())
}

func TestSuggestionCap(t *testing.T) {
	tm := newTestModel(t, func(c *config.Config) { c.UI.MaxSuggestions = 1 })
	tm.typeText("pho")
	tm.settle()

	suggestions, more := tm.visibleSuggestions()
	assert.Len(t, suggestions, 1)
	assert.Equal(t, 2, more)
	assert.Len(t, tm.search.State().Suggestions, 3, "the cap is display only")
	assert.Contains(t, tm.screen(), "+2 more")
}

func TestFetchOnEmptyLoadsCatalogOnStart(t *testing.T) {
	tm := newTestModel(t, func(c *config.Config) { c.Search.FetchOnEmpty = true })
	tm.settle()

	assert.Equal(t, []string{""}, tm.cat.searches())
	st := tm.search.State()
	assert.Len(t, st.Results, len(catalogItems))
	assert.Empty(t, st.Suggestions)
	tm.assertNoDropdown()
}

func TestIdleHintNamesTypingHelpKey(t *testing.T) {
	tm := newTestModel(t, nil)
	assert.Contains(t, tm.screen(), "Press f1 for help")
	assert.NotContains(t, tm.screen(), "Press ? for help")
}

func TestHelpToggle(t *testing.T) {
	tm := newTestModel(t, nil)
	tm.press(tea.KeyF1)
	assert.True(t, tm.state.ShowHelp)
	assert.Contains(t, tm.screen(), "retry")
	tm.press(tea.KeyF1)
	assert.False(t, tm.state.ShowHelp)
}

func TestCtrlCQuits(t *testing.T) {
	tm := newTestModel(t, nil)
	_, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		found := false
		for _, c := range batch {
			if c == nil {
				continue
			}
			if _, ok := c().(tea.QuitMsg); ok {
				found = true
			}
		}
		assert.True(t, found)
		return
	}
	assert.IsType(t, tea.QuitMsg{}, msg)
}
