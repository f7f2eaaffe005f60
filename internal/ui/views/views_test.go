package views

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"prodsearch/internal/catalog"
	"prodsearch/internal/detail"
	"prodsearch/internal/domain"
	"prodsearch/internal/search"
)

var items = []domain.Item{
	{ID: 1, Name: "Smartphone X", Brand: "Acme", Price: 799},
	{ID: 2, Name: "Headphones", Brand: "Sonic", Price: 1299.5},
}

func plain(s string) string { return ansi.Strip(s) }

func TestDropdownOnlyWithQueryAndSuggestions(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)

	out := plain(r.Render(ViewState{Width: 80, Query: "ph", Suggestions: items, Results: items}))
	assert.Contains(t, out, SuggestionsHeader)

	out = plain(r.Render(ViewState{Width: 80, Query: "", Suggestions: items, Results: items}))
	assert.NotContains(t, out, SuggestionsHeader)

	out = plain(r.Render(ViewState{Width: 80, Query: "ph", Results: items}))
	assert.NotContains(t, out, SuggestionsHeader)
}

func TestMoreSuggestionsHint(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	out := plain(r.Render(ViewState{Width: 80, Query: "ph", Suggestions: items[:1], MoreSuggestions: 3}))
	assert.Contains(t, out, "+3 more")
}

func TestStatusShowsErrorAndRetryHint(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	out := plain(r.Render(ViewState{
		Width:   120,
		Query:   "pho",
		Results: items,
		Phase:   search.PhaseSettled,
		Err:     errors.New("catalog search \"pho\": status 502"),
	}))
	assert.Contains(t, out, "status 502")
	assert.Contains(t, out, "ctrl+r to retry")
	assert.Contains(t, out, "Smartphone X", "last good results stay on screen")
}

func TestRetryHintSurvivesLongNetworkError(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	err := &catalog.FetchError{
		Op:     "search",
		Target: "phone",
		Err: &url.Error{
			Op:  "Get",
			URL: "http://127.0.0.1:1/products?search=phone",
			Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
		},
	}
	out := plain(r.Render(ViewState{Width: 80, Query: "phone", Phase: search.PhaseSettled, Err: err}))
	assert.Contains(t, out, "ctrl+r to retry")
	assert.Contains(t, out, "catalog search")

	detailErr := plain(r.Render(ViewState{Width: 80, ShowDetail: true, Detail: detail.State{ID: 7, Err: err}}))
	assert.Contains(t, detailErr, "r to reload")
}

func TestIdleHintNamesHelpKey(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	assert.Contains(t, plain(r.Render(ViewState{Width: 80, HelpKey: "f1"})), "Press f1 for help")
	assert.Contains(t, plain(r.Render(ViewState{Width: 80, HelpKey: "?"})), "Press ? for help")
}

func TestStatusShowsCompletionLatency(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	out := plain(r.Render(ViewState{
		Width:        120,
		Results:      items,
		Phase:        search.PhaseSettled,
		LastDuration: 42 * time.Millisecond,
	}))
	assert.Contains(t, out, "2 results in 42ms")
}

func TestResultViewportScrolls(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)
	out := plain(r.Render(ViewState{Width: 80, Results: items, ResultOffset: 1, ViewportHeight: 1}))
	assert.Contains(t, out, "↑ 1 more")
	assert.Contains(t, out, "Headphones")
	assert.NotContains(t, out, "Smartphone X")
}

func TestDetailStates(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), false)

	out := plain(r.Render(ViewState{Width: 80, ShowDetail: true, Detail: detail.State{ID: 1, Loading: true}}))
	assert.Contains(t, out, "loading product")

	out = plain(r.Render(ViewState{Width: 80, ShowDetail: true, Detail: detail.State{ID: 7, Err: domain.ErrNotFound}}))
	assert.Contains(t, out, "Could not load product 7")
	assert.Contains(t, out, "r to reload")

	item := domain.Item{ID: 1, Name: "Smartphone X", Brand: "Acme", Price: 799, Rating: 4.2, Wireless: true, Connectivity: "5G"}
	out = plain(r.Render(ViewState{
		Width:      100,
		ShowDetail: true,
		Detail:     detail.State{ID: 1, Item: &item},
		ImageURL:   "http://localhost:3333/products/img/x.png",
		Route:      "/product-detail/1",
	}))
	assert.Contains(t, out, "Smartphone X")
	assert.Contains(t, out, "5G")
	assert.Contains(t, out, "/product-detail/1")
	assert.Contains(t, out, "http://localhost:3333/products/img/x.png")
}

func TestDetailWithoutRecordNeverPanics(t *testing.T) {
	r := NewRenderer(NewPriceFormatter("en-US", "USD"), true)
	assert.NotPanics(t, func() {
		r.Render(ViewState{ShowDetail: true})
	})
}

func TestPriceFormatter(t *testing.T) {
	assert.Contains(t, NewPriceFormatter("en-US", "USD").Format(1299.5), "1,299.50")
	assert.Contains(t, NewPriceFormatter("en-US", "USD").Format(10), "$")
	// unparseable settings fall back instead of failing
	assert.Contains(t, NewPriceFormatter("??", "???").Format(3), "3.00")
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "unrated", FormatRating(0))
	assert.Equal(t, "★★★★☆ 4.2", FormatRating(4.2))
	assert.Equal(t, "★★★★★ 5.0", FormatRating(5))
}

func TestHighlighterPositions(t *testing.T) {
	h := NewHighlighter(NewStyles().Highlight)

	pos := h.Positions("Smartphone", "pho")
	assert.ElementsMatch(t, []int{5, 6, 7}, pos)

	assert.Nil(t, h.Positions("Laptop", "xyz"))
	assert.Nil(t, h.Positions("Laptop", ""))
	assert.Equal(t, "Smartphone", plain(h.Render("Smartphone", "pho", NewStyles().Name)))
}

func TestDetailText(t *testing.T) {
	text := DetailText(domain.Item{ID: 3, Name: "Mouse", Brand: "Clicky", Description: "Small."}, "http://x/products/m.png", NewPriceFormatter("en-US", "USD"))
	assert.Contains(t, text, "Mouse\n=====")
	assert.Contains(t, text, "brand:        Clicky")
	assert.Contains(t, text, "Small.")
}
