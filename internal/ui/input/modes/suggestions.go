package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"prodsearch/internal/ui/input/types"
)

// SuggestionsMode moves a cursor through the dropdown.
type SuggestionsMode struct{}

func NewSuggestionsMode() *SuggestionsMode {
	return &SuggestionsMode{}
}

func (m *SuggestionsMode) Name() string {
	return "suggestions"
}

func (m *SuggestionsMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SuggestionsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SuggestionsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	// The dropdown can vanish under the cursor when a newer search settles
	if !ctx.SuggestionsVisible() {
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
	}

	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "up", "k", "shift+tab":
		if ctx.SuggestionCursor() == 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j", "tab":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "home", "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "end", "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "enter":
		return []types.Action{
			types.ChooseSuggestionAction{},
			types.ChangeModeAction{Mode: types.ModeTyping},
		}, true
	case "esc":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}
	return nil, false
}
