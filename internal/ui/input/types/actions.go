package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

// Search actions
type ChooseSuggestionAction struct{}

func (a ChooseSuggestionAction) Type() string { return "choose_suggestion" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

// Detail actions
type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

type ReloadDetailAction struct{}

func (a ReloadDetailAction) Type() string { return "reload_detail" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// UI actions
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct{}

func (a QuitAction) Type() string { return "quit" }
