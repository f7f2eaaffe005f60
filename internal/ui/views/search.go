package views

import (
	"fmt"
	"strings"

	"prodsearch/internal/domain"
)

func (r *Renderer) renderSearch(state ViewState) string {
	var b strings.Builder
	width := state.Width - 4

	b.WriteString(r.styles.Prompt.Render("Search: "))
	b.WriteString(state.InputView)
	b.WriteString("\n")

	// the dropdown only exists while there is text to complete
	if state.Query != "" && len(state.Suggestions) > 0 {
		b.WriteString(r.renderSuggestions(state, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.renderResults(state, width))
	return b.String()
}

// SuggestionsHeader titles the dropdown box.
const SuggestionsHeader = "Suggestions"

func (r *Renderer) renderSuggestions(state ViewState, width int) string {
	lines := []string{r.styles.DropdownTitle.Render(SuggestionsHeader)}
	for i, item := range state.Suggestions {
		name := r.renderName(item.Name, state.Query)
		line := "  " + name
		if state.SuggestionsFocus && i == state.SuggestionIndex {
			line = r.styles.SelectionBg.Render("> " + name)
		}
		lines = append(lines, truncate(line, width-4))
	}
	if state.MoreSuggestions > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  +%d more", state.MoreSuggestions)))
	}
	return r.styles.Dropdown.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderName(name, query string) string {
	if r.highlighter == nil {
		return r.styles.Name.Render(name)
	}
	return r.highlighter.Render(name, query, r.styles.Name)
}

func (r *Renderer) renderResults(state ViewState, width int) string {
	if len(state.Results) == 0 {
		if state.Err != nil {
			return r.styles.Dim.Render("Could not load products.")
		}
		if state.Query == "" && state.InFlight > 0 {
			return r.styles.Dim.Render("Loading catalog...")
		}
		return r.styles.Dim.Render("No products found.")
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(state.Results)
	}
	start := state.ResultOffset
	if start > len(state.Results) {
		start = len(state.Results)
	}
	end := start + height
	if end > len(state.Results) {
		end = len(state.Results)
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		line := r.renderResult(state.Results[i])
		if state.ResultsFocus && i == state.ResultIndex {
			line = r.styles.SelectionBg.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, truncate(line, width))
	}
	if end < len(state.Results) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more", len(state.Results)-end)))
	}
	return strings.Join(lines, "\n")
}

// renderResult is the one-line card: name, brand and price.
func (r *Renderer) renderResult(item domain.Item) string {
	return fmt.Sprintf("%s  %s  %s",
		r.styles.Name.Render(item.Name),
		r.styles.Brand.Render(item.Brand),
		r.styles.Price.Render(r.prices.Format(item.Price)))
}
