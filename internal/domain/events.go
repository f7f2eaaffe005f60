package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchScheduled  EventType = "SearchScheduled"
	EventSearchDispatched EventType = "SearchDispatched"
	EventFetchCompleted   EventType = "FetchCompleted"
	EventStaleDiscarded   EventType = "StaleDiscarded"
	EventDetailLoaded     EventType = "DetailLoaded"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventCatalogReloaded  EventType = "CatalogReloaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FetchKind tells which flow started a fetch
type FetchKind int

const (
	// FetchDebounced is a search issued after the typing quiet period.
	FetchDebounced FetchKind = iota
	// FetchSelection is the immediate search issued for a picked suggestion.
	FetchSelection
	// FetchRetry is a search re-issued by the user after a failure.
	FetchRetry
)

func (k FetchKind) String() string {
	switch k {
	case FetchDebounced:
		return "debounced"
	case FetchSelection:
		return "selection"
	case FetchRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// SearchScheduledEvent is emitted when a keystroke (re)starts the debounce timer
type SearchScheduledEvent struct {
	Query string
	Epoch uint64
}

func (e SearchScheduledEvent) Type() EventType { return EventSearchScheduled }

// SearchDispatchedEvent is emitted when a search request leaves the client
type SearchDispatchedEvent struct {
	Query    string
	Epoch    uint64
	Sequence uint64
	Kind     FetchKind
}

func (e SearchDispatchedEvent) Type() EventType { return EventSearchDispatched }

// FetchCompletedEvent is the terminal notification for every search,
// whatever its outcome
type FetchCompletedEvent struct {
	Query     string
	Epoch     uint64
	Sequence  uint64
	Kind      FetchKind
	RequestID string
	Results   int
	Duration  time.Duration
	Err       error
}

func (e FetchCompletedEvent) Type() EventType { return EventFetchCompleted }

// StaleDiscardedEvent is emitted when a settled search was superseded and
// its results were kept out of the suggestion list
type StaleDiscardedEvent struct {
	Query        string
	Epoch        uint64
	CurrentEpoch uint64
}

func (e StaleDiscardedEvent) Type() EventType { return EventStaleDiscarded }

// DetailLoadedEvent is emitted when a detail fetch finishes
type DetailLoadedEvent struct {
	ID       int64
	Duration time.Duration
	Err      error
}

func (e DetailLoadedEvent) Type() EventType { return EventDetailLoaded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	BaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// CatalogReloadedEvent is emitted by the fixture server after the seed
// file was re-read
type CatalogReloadedEvent struct {
	Path  string
	Items int
	Err   error
}

func (e CatalogReloadedEvent) Type() EventType { return EventCatalogReloaded }
