package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"prodsearch/internal/domain"
)

func (r *Renderer) renderDetail(state ViewState) string {
	d := state.Detail
	switch {
	case d.Loading:
		return r.styles.Dim.Render(state.Spinner + " loading product...")
	case d.Err != nil:
		return r.styles.StatusError.Render(fmt.Sprintf("Could not load product %d: %v", d.ID, d.Err))
	case d.Item == nil:
		return r.styles.Dim.Render("No product selected.")
	}

	item := d.Item
	rows := []string{
		r.styles.Title.Render(item.Name),
		"",
		r.field("brand", r.styles.Brand.Render(item.Brand)),
		r.field("price", r.styles.Price.Render(r.prices.Format(item.Price))),
		r.field("rating", lipgloss.NewStyle().Foreground(lipgloss.Color(RatingColor(item.Rating))).Render(FormatRating(item.Rating))),
		r.field("connectivity", item.Connectivity),
		r.field("wireless", FormatBool(item.Wireless)),
		r.field("image", r.styles.Dim.Render(state.ImageURL)),
	}
	if item.Description != "" {
		width := state.Width - 12
		if width < 20 {
			width = 20
		}
		rows = append(rows, "", lipgloss.NewStyle().Width(width).Render(item.Description))
	}
	return r.styles.DetailBox.Render(strings.Join(rows, "\n"))
}

func (r *Renderer) field(label, value string) string {
	return r.styles.Label.Render(label) + value
}

// DetailText renders a product as plain text for the pager.
func DetailText(item domain.Item, imageURL string, prices *PriceFormatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", item.Name, strings.Repeat("=", len([]rune(item.Name))))
	fmt.Fprintf(&b, "id:           %d\n", item.ID)
	fmt.Fprintf(&b, "brand:        %s\n", item.Brand)
	fmt.Fprintf(&b, "price:        %s\n", prices.Format(item.Price))
	fmt.Fprintf(&b, "rating:       %s\n", FormatRating(item.Rating))
	fmt.Fprintf(&b, "connectivity: %s\n", item.Connectivity)
	fmt.Fprintf(&b, "wireless:     %s\n", FormatBool(item.Wireless))
	fmt.Fprintf(&b, "image:        %s\n", imageURL)
	if item.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", item.Description)
	}
	return b.String()
}
