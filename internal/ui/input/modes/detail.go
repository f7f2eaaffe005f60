package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"prodsearch/internal/ui/input/types"
)

// DetailMode is active while the product detail screen is shown.
type DetailMode struct{}

func NewDetailMode() *DetailMode {
	return &DetailMode{}
}

func (m *DetailMode) Name() string {
	return "detail"
}

func (m *DetailMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DetailMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.BackAction{}}
}

func (m *DetailMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{}}, true
	case "esc", "backspace", "h", "left":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeResults}}, true
	case "ctrl+r", "r":
		return []types.Action{types.ReloadDetailAction{}}, true
	case "o", "enter":
		if ctx.DetailReady() {
			return []types.Action{types.OpenPagerAction{}}, true
		}
		return nil, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}
