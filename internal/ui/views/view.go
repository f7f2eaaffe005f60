package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"prodsearch/internal/detail"
	"prodsearch/internal/domain"
	"prodsearch/internal/search"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Route  string

	// Search screen
	InputView        string
	Query            string
	Suggestions      []domain.Item // already capped for display
	MoreSuggestions  int           // rows hidden by the cap
	SuggestionIndex  int
	SuggestionsFocus bool
	Results          []domain.Item
	ResultIndex      int
	ResultOffset     int
	ResultsFocus     bool
	ViewportHeight   int
	Phase            search.Phase
	InFlight         int
	Err              error
	LastDuration     time.Duration

	// Detail screen
	ShowDetail bool
	Detail     detail.State
	ImageURL   string

	Spinner       string
	HelpView      string
	HelpKey       string // key that toggles help in the focused mode
	StatusMessage string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	prices      *PriceFormatter
	highlighter *Highlighter // nil disables match highlighting
}

// NewRenderer creates a new renderer
func NewRenderer(prices *PriceFormatter, highlight bool) *Renderer {
	styles := NewStyles()
	r := &Renderer{styles: styles, prices: prices}
	if highlight {
		r.highlighter = NewHighlighter(styles.Highlight)
	}
	return r
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	if state.ShowDetail {
		content.WriteString(r.renderDetail(state))
	} else {
		content.WriteString(r.renderSearch(state))
	}

	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))
	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(state.HelpView)
	}
	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("prodsearch")
	route := r.styles.Route.Render(state.Route)

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(route)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + route
}

// renderStatus shows the phase of the latest query, the number of
// requests still in flight and the last error with its retry hint.
func (r *Renderer) renderStatus(state ViewState) string {
	parts := []string{}

	if state.ShowDetail {
		switch {
		case state.Detail.Loading:
			parts = append(parts, r.styles.StatusLoading.Render(state.Spinner+" loading product"))
		case state.Detail.Err != nil:
			parts = append(parts, r.styles.Dim.Render("r to reload"))
			parts = append(parts, r.styles.StatusError.Render("✗ "+state.Detail.Err.Error()))
		case state.Detail.Item != nil:
			parts = append(parts, r.styles.StatusSuccess.Render("✓ loaded"))
		}
	} else {
		switch state.Phase {
		case search.PhasePendingDebounce:
			parts = append(parts, r.styles.StatusPending.Render("… typing"))
		case search.PhaseInFlight:
			parts = append(parts, r.styles.StatusLoading.Render(state.Spinner+" searching"))
		case search.PhaseSettled:
			if state.Err == nil {
				msg := fmt.Sprintf("✓ %d results", len(state.Results))
				if state.LastDuration > 0 {
					msg += " in " + state.LastDuration.Round(time.Millisecond).String()
				}
				parts = append(parts, r.styles.StatusSuccess.Render(msg))
			}
		}
		if state.InFlight > 1 || (state.InFlight == 1 && state.Phase != search.PhaseInFlight) {
			parts = append(parts, r.styles.Dim.Render(fmt.Sprintf("%d in flight", state.InFlight)))
		}
		// the hint goes before the error so truncation only ever eats
		// the error text
		if state.Err != nil {
			parts = append(parts, r.styles.Dim.Render("ctrl+r to retry"))
			parts = append(parts, r.styles.StatusError.Render("✗ "+state.Err.Error()))
		}
	}

	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}
	if len(parts) == 0 {
		helpKey := state.HelpKey
		if helpKey == "" {
			helpKey = "?"
		}
		return r.styles.Help.Render("Press " + helpKey + " for help")
	}
	line := strings.Join(parts, r.styles.Dim.Render(" | "))
	if state.Width > 4 {
		line = ansi.Truncate(line, state.Width-4, "…")
	}
	return r.styles.Status.Render(line)
}

// truncate cuts a styled line to the content width.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
