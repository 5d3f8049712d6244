package gateway

import (
	"context"

	"github.com/storewave/payrecon/internal/core/domain"
	"github.com/storewave/payrecon/internal/core/port"
)

// RecallOrders requeues every still-open order for a sync. Run at startup so
// orders caught mid-reconciliation by a restart converge again.
func RecallOrders(ctx context.Context, repo port.Repository, scheduler port.SyncScheduler) error {
	orders, err := repo.ListOpenOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		// Manually-settled channels have no gateway truth to pull.
		if tx := order.LatestTransaction(); tx != nil &&
			(tx.Provider == domain.ProviderOffline || tx.PaymentType == domain.PaymentTypeCOD) {
			continue
		}
		scheduler.ScheduleSync(order.Number)
	}

	return nil
}
