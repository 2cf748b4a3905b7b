package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/gildedstock/pkg/analytics"
	"github.com/ghuser/gildedstock/pkg/app"
	"github.com/ghuser/gildedstock/pkg/cache"
	"github.com/ghuser/gildedstock/pkg/config"
	"github.com/ghuser/gildedstock/pkg/database"
	"github.com/ghuser/gildedstock/pkg/events"
	"github.com/ghuser/gildedstock/pkg/logger"
	"github.com/ghuser/gildedstock/pkg/telemetry"
	"github.com/ghuser/gildedstock/pkg/workflows"
	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
	stockEvents "github.com/ghuser/gildedstock/services/stock/domain/events"
	stockWorkflows "github.com/ghuser/gildedstock/services/stock/workflows"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:       cfg,
		Db:        pool,
		Logger:    log,
		EventBus:  eventBus,
		Redis:     redisClient,
		Analytics: analytics.NewLogging(log),
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	var temporalWorker worker.Worker
	if cfg.TemporalHostPort != "" {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		temporalWorker, err = startStockMaintenance(ctx, appConfig)
		if err != nil {
			log.Error("failed to start stock maintenance", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalWorker.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, stockEvents.TopicStockUpdated, handleStockUpdated(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", stockEvents.TopicStockUpdated,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{stockEvents.TopicStockUpdated})
	return nil
}

// handleStockUpdated returns a handler for stock.updated events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis summary read model so GET /stock/summary never hits the store.
func handleStockUpdated(a *app.Application) func(context.Context, *message.Message) error {
	summaries := cache.NewStockSummaryCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt stockEvents.StockUpdatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		// Out-of-order delivery: never move the summary backwards.
		if current, err := summaries.Get(ctx); err == nil && current.LastModified.After(evt.LastModified) {
			a.Logger.InfoContext(ctx, "skipping stale stock.updated event",
				"event_id", evt.EventID, "last_modified", evt.LastModified)
			return nil
		}

		if err := summaries.Set(ctx, &cache.StockSummary{
			LastModified: evt.LastModified,
			ItemCount:    evt.ItemCount,
		}); err != nil {
			// Summary warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "summary warm failed for stock.updated",
				"event_id", evt.EventID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "stock summary warmed",
				"event_id", evt.EventID, "item_count", evt.ItemCount)
		}

		return nil
	}
}

// startStockMaintenance registers the nightly aging workflow on the stock
// maintenance task queue and ensures its schedule exists. The schedule fires
// shortly after midnight in the store zone so quality is aged before the
// first read of the day.
func startStockMaintenance(ctx context.Context, a *app.Application) (worker.Worker, error) {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return nil, err
	}

	w := worker.New(a.TemporalClient.Client, stockWorkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(stockWorkflows.StockUpdateWorkflow)
	w.RegisterActivity(&stockWorkflows.Activities{Stock: svcs.Stock})
	if err := w.Start(); err != nil {
		return nil, err
	}

	_, err = a.TemporalClient.Client.ScheduleClient().Create(ctx, client.ScheduleOptions{
		ID: "stock-update-nightly",
		Spec: client.ScheduleSpec{
			CronExpressions: []string{"5 0 * * *"},
			TimeZoneName:    a.Cfg.StoreTimezone,
		},
		Action: &client.ScheduleWorkflowAction{
			ID:        "stock-update",
			Workflow:  stockWorkflows.StockUpdateWorkflow,
			TaskQueue: stockWorkflows.TaskQueue,
		},
	})
	if err != nil && !isAlreadyScheduled(err) {
		w.Stop()
		return nil, err
	}

	a.Logger.Info("stock maintenance started", "task_queue", stockWorkflows.TaskQueue)
	return w, nil
}

func isAlreadyScheduled(err error) bool {
	return errors.Is(err, temporal.ErrScheduleAlreadyRunning)
}
