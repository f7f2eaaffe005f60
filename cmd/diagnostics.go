package cmd

import (
	"log/slog"

	"prodsearch/internal/eventbus"
)

// logDiagnostics subscribes logger to the events worth keeping in the
// log. Completions and failures are logged at Info, the rest at Debug.
func logDiagnostics(bus eventbus.EventBus, logger *slog.Logger) {
	logger = logger.With("component", "diagnostics")

	bus.Subscribe(eventbus.EventSearchDispatched, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SearchDispatchedEvent)
		logger.Debug("search dispatched", "query", ev.Query, "epoch", ev.Epoch, "seq", ev.Sequence, "kind", ev.Kind)
	})

	bus.Subscribe(eventbus.EventFetchCompleted, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.FetchCompletedEvent)
		attrs := []any{
			"query", ev.Query,
			"epoch", ev.Epoch,
			"seq", ev.Sequence,
			"kind", ev.Kind,
			"request_id", ev.RequestID,
			"duration", ev.Duration,
		}
		if ev.Err != nil {
			logger.Info("search failed", append(attrs, "error", ev.Err)...)
			return
		}
		logger.Info("search completed", append(attrs, "results", ev.Results)...)
	})

	bus.Subscribe(eventbus.EventStaleDiscarded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.StaleDiscardedEvent)
		logger.Debug("stale response discarded", "query", ev.Query, "epoch", ev.Epoch, "current_epoch", ev.CurrentEpoch)
	})

	bus.Subscribe(eventbus.EventDetailLoaded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.DetailLoadedEvent)
		if ev.Err != nil {
			logger.Info("detail failed", "id", ev.ID, "duration", ev.Duration, "error", ev.Err)
			return
		}
		logger.Debug("detail loaded", "id", ev.ID, "duration", ev.Duration)
	})

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ConfigLoadedEvent)
		logger.Info("config loaded", "path", ev.Path, "base_url", ev.BaseURL)
	})

	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		logger.Info("config saved", "path", e.(eventbus.ConfigSavedEvent).Path)
	})

	bus.Subscribe(eventbus.EventCatalogReloaded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.CatalogReloadedEvent)
		if ev.Err != nil {
			logger.Error("catalog reload failed", "path", ev.Path, "error", ev.Err)
			return
		}
		logger.Info("catalog loaded", "path", ev.Path, "items", ev.Items)
	})
}
