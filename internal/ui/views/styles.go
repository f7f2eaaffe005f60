package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Dropdown      lipgloss.Style
	DropdownTitle lipgloss.Style
	Name          lipgloss.Style
	Brand         lipgloss.Style
	Price         lipgloss.Style
	Label         lipgloss.Style
	DetailBox     lipgloss.Style
	Route         lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		DropdownTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Name:          lipgloss.NewStyle().Bold(true),
		Brand:         lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Price:         lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Label:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14),
		DetailBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		Route:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
	}
}

// RatingColor returns the color used for a product rating
func RatingColor(rating float64) string {
	switch {
	case rating >= 4:
		return "78" // green
	case rating >= 2.5:
		return "214" // yellow
	case rating > 0:
		return "203" // red
	default:
		return "241" // unrated
	}
}
