// Package workflows holds the scheduled stock maintenance workflow. The
// worker process registers it and the nightly schedule triggers it shortly
// after midnight in the store zone, so quality is already aged before the
// first customer-facing read of the day.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/ghuser/gildedstock/services/stock/application/services"
)

// TaskQueue is the Temporal task queue for stock maintenance.
const TaskQueue = "stock-maintenance"

// StockUpdateWorkflowName identifies the workflow for schedule registration.
const StockUpdateWorkflowName = "StockUpdateWorkflow"

// UpdateResult reports what the aging run did.
type UpdateResult struct {
	LastModified time.Time `json:"last_modified"`
	ItemCount    int       `json:"item_count"`
}

// Activities carries the dependencies of the stock maintenance activities.
type Activities struct {
	Stock *appsvcs.StockService
}

// UpdateStock runs the aging catch-up in a single store transaction. Safe to
// retry: a repeat run on the same calendar day is a no-op.
func (a *Activities) UpdateStock(ctx context.Context) (UpdateResult, error) {
	list, err := a.Stock.UpdateStock(ctx)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{LastModified: list.LastModified, ItemCount: len(list.Items)}, nil
}

// StockUpdateWorkflow ages the stock list up to the current day.
func StockUpdateWorkflow(ctx workflow.Context) (UpdateResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	})

	var a *Activities
	var result UpdateResult
	if err := workflow.ExecuteActivity(ctx, a.UpdateStock).Get(ctx, &result); err != nil {
		return UpdateResult{}, err
	}

	workflow.GetLogger(ctx).Info("stock update complete",
		"last_modified", result.LastModified, "item_count", result.ItemCount)
	return result, nil
}
