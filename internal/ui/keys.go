package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"prodsearch/internal/ui/input/types"
)

// keyMap documents the bindings of one input mode for the help view.
// Dispatch itself happens in the input modes.
type keyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k keyMap) ShortHelp() []key.Binding  { return k.short }
func (k keyMap) FullHelp() [][]key.Binding { return k.full }

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	keyQuitQ   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	keyClear   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear"))
	keyDown    = key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓/tab", "suggestions"))
	keyResults = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "results"))
	keyRetry   = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry"))
	keyHelpF1  = key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help"))
	keyHelp    = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	keyMove    = key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move"))
	keyEnds    = key.NewBinding(key.WithKeys("home", "end", "g", "G"), key.WithHelp("g/G", "top/bottom"))
	keyPick    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick"))
	keyOpen    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	keyBack    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	keyEdit    = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "edit query"))
	keyReload  = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload"))
	keyPager   = key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in pager"))
)

func keysFor(mode types.Mode) keyMap {
	switch mode {
	case types.ModeSuggestions:
		return keyMap{
			short: []key.Binding{keyMove, keyPick, keyBack, keyHelp},
			full:  [][]key.Binding{{keyMove, keyEnds}, {keyPick, keyBack}, {keyHelp, keyQuit}},
		}
	case types.ModeResults:
		return keyMap{
			short: []key.Binding{keyMove, keyOpen, keyEdit, keyHelp},
			full:  [][]key.Binding{{keyMove, keyEnds}, {keyOpen, keyEdit, keyRetry}, {keyHelp, keyQuitQ}},
		}
	case types.ModeDetail:
		return keyMap{
			short: []key.Binding{keyBack, keyReload, keyPager, keyHelp},
			full:  [][]key.Binding{{keyBack, keyReload}, {keyPager}, {keyHelp, keyQuitQ}},
		}
	default:
		return keyMap{
			short: []key.Binding{keyDown, keyResults, keyClear, keyHelpF1},
			full:  [][]key.Binding{{keyDown, keyResults}, {keyClear, keyRetry}, {keyHelpF1, keyQuit}},
		}
	}
}

// helpKeyFor names the help toggle; while typing "?" is query text.
func helpKeyFor(mode types.Mode) string {
	if mode == types.ModeTyping {
		return "f1"
	}
	return "?"
}
