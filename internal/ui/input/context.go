package input

import (
	"prodsearch/internal/detail"
	"prodsearch/internal/search"
	"prodsearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Search search.State
	Detail detail.State
	UI     *state.AppState
}

func (c *ModelContext) Query() string {
	return c.Search.Query
}

// SuggestionsVisible mirrors the dropdown rule: a non-empty query with
// at least one suggestion.
func (c *ModelContext) SuggestionsVisible() bool {
	return c.Search.Query != "" && len(c.Search.Suggestions) > 0
}

func (c *ModelContext) SuggestionCursor() int {
	return c.UI.SuggestionIndex
}

func (c *ModelContext) ResultCount() int {
	return len(c.Search.Results)
}

func (c *ModelContext) ResultCursor() int {
	return c.UI.ResultIndex
}

func (c *ModelContext) CanRetry() bool {
	return c.Search.CanRetry()
}

func (c *ModelContext) DetailReady() bool {
	return c.Detail.Ready()
}
