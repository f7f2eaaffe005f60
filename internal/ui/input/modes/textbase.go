package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"prodsearch/internal/ui/input/types"
)

// TypingMode edits the query. Keys it does not claim go to the text input.
type TypingMode struct{}

func NewTypingMode() *TypingMode {
	return &TypingMode{}
}

func (m *TypingMode) Name() string {
	return "typing"
}

func (m *TypingMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *TypingMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TypingMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc":
		if ctx.Query() == "" {
			return nil, true
		}
		return []types.Action{types.ClearQueryAction{}}, true
	case "down", "tab":
		if ctx.SuggestionsVisible() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSuggestions}}, true
		}
		if ctx.ResultCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeResults}}, true
		}
		return nil, true
	case "enter":
		if ctx.ResultCount() > 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeResults}}, true
		}
		return nil, true
	case "ctrl+r":
		if ctx.CanRetry() {
			return []types.Action{types.RetryAction{}}, true
		}
		return nil, true
	case "f1":
		return []types.Action{types.ToggleHelpAction{}}, true
	default:
		// Returning false lets the handler feed the key to the text input
		return nil, false
	}
}
