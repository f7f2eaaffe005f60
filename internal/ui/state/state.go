package state

import "fmt"

// Screen is the route currently shown
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenDetail
)

// AppState holds the UI-only state. Search and detail data live in their
// controllers; this is cursors, layout and popups.
type AppState struct {
	Screen   Screen
	DetailID int64

	// Cursors
	SuggestionIndex int
	ResultIndex     int
	ResultOffset    int // first visible result row

	// Layout
	Width          int
	Height         int
	ViewportHeight int // rows available for results

	ShowHelp      bool
	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		ViewportHeight: 10, // Default
	}
}

// Route is the path the screen corresponds to.
func (s *AppState) Route() string {
	if s.Screen == ScreenDetail {
		return fmt.Sprintf("/product-detail/%d", s.DetailID)
	}
	return "/"
}

// OpenDetail switches to the detail screen for id.
func (s *AppState) OpenDetail(id int64) {
	s.Screen = ScreenDetail
	s.DetailID = id
}

// CloseDetail goes back to the search screen.
func (s *AppState) CloseDetail() {
	s.Screen = ScreenSearch
	s.DetailID = 0
}

// MoveSuggestion moves the dropdown cursor by delta, clamped to n rows.
func (s *AppState) MoveSuggestion(delta, n int) {
	s.SuggestionIndex = clamp(s.SuggestionIndex+delta, n)
}

// MoveResult moves the result cursor by delta, clamped to n rows, and
// scrolls so it stays visible.
func (s *AppState) MoveResult(delta, n int) {
	s.ResultIndex = clamp(s.ResultIndex+delta, n)
	s.EnsureResultVisible()
}

// ClampCursors keeps both cursors inside lists that just changed length.
func (s *AppState) ClampCursors(suggestions, results int) {
	s.SuggestionIndex = clamp(s.SuggestionIndex, suggestions)
	s.ResultIndex = clamp(s.ResultIndex, results)
	s.EnsureResultVisible()
}

// EnsureResultVisible scrolls the result viewport to the cursor.
func (s *AppState) EnsureResultVisible() {
	h := s.ViewportHeight
	if h < 1 {
		h = 1
	}
	if s.ResultIndex < s.ResultOffset {
		s.ResultOffset = s.ResultIndex
	}
	if s.ResultIndex >= s.ResultOffset+h {
		s.ResultOffset = s.ResultIndex - h + 1
	}
	if s.ResultOffset < 0 {
		s.ResultOffset = 0
	}
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
