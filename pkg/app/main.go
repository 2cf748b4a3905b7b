package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/gildedstock/pkg/analytics"
	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/pkg/config"
	"github.com/ghuser/gildedstock/pkg/database"
	"github.com/ghuser/gildedstock/pkg/events"
	"github.com/ghuser/gildedstock/pkg/logger"
	"github.com/ghuser/gildedstock/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to the route-registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's
// context methods and trace_id, span_id, and request_id are injected
// automatically:
//
//	app.Logger.InfoContext(ctx, "updating stock", "elapsed_days", days)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Analytics      analytics.Analytics
	TemporalClient *workflows.TemporalClient // nil when TEMPORAL_HOST_PORT is unset
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
