package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"prodsearch/internal/ui/input/types"
)

// ResultsMode browses the result list.
type ResultsMode struct{}

func NewResultsMode() *ResultsMode {
	return &ResultsMode{}
}

func (m *ResultsMode) Name() string {
	return "results"
}

func (m *ResultsMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ResultsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ResultsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{}}, true
	case tea.KeyUp:
		if ctx.ResultCursor() == 0 {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case tea.KeyEnter:
		if ctx.ResultCount() == 0 {
			return nil, true
		}
		return []types.Action{
			types.OpenDetailAction{},
			types.ChangeModeAction{Mode: types.ModeDetail},
		}, true
	case tea.KeyEsc, tea.KeyShiftTab:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
	case tea.KeyCtrlR:
		if ctx.CanRetry() {
			return []types.Action{types.RetryAction{}}, true
		}
		return nil, true
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "k":
		if ctx.ResultCursor() == 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeTyping}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}
	return nil, false
}
