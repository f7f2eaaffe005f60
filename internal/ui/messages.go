package ui

// asyncMsg carries a message posted by a timer or fetch goroutine back
// into the update loop
type asyncMsg struct {
	msg any
}

// clearStatusMsg clears the transient status message
type clearStatusMsg struct{}
