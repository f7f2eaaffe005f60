package search

import (
	"time"

	"prodsearch/internal/domain"
)

// Phase is the lifecycle of the latest query.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePendingDebounce
	PhaseInFlight
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePendingDebounce:
		return "typing"
	case PhaseInFlight:
		return "searching"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Request identifies one search at the moment it was issued.
type Request struct {
	Query string
	Epoch uint64
	Kind  domain.FetchKind

	// Suggest is true when the response may fill the suggestion list.
	// Selection fetches only ever write the result list.
	Suggest bool
}

// Due is posted by the debounce timer when the typing pause is over.
type Due struct {
	Request
}

// Settled is posted when a dispatched search completes, successfully or
// not.
type Settled struct {
	Request
	Sequence  uint64
	Items     []domain.Item
	Err       error
	RequestID string
	Duration  time.Duration
}

// OK reports whether the fetch succeeded.
func (s Settled) OK() bool { return s.Err == nil }

// State is a snapshot of everything the view renders.
type State struct {
	Query       string
	Suggestions []domain.Item
	Results     []domain.Item
	Epoch       uint64
	Phase       Phase
	InFlight    int

	// Err is the failure of the latest query, cleared by the next query
	// change or a successful settle.
	Err error

	// LastDuration is the round trip of the most recent completion.
	LastDuration time.Duration
}

// CanRetry reports whether Retry has something to re-issue.
func (s State) CanRetry() bool { return s.Err != nil }
