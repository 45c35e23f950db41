package merchants

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
	"github.com/rahulvarma/bazaarly-backend/pkg/metrics"
)

const counterOp = "merchant_product_count"

// counter write should never hold a request open
const counterTimeout = 5 * time.Second

type countAdjuster interface {
	AdjustProductCount(ctx context.Context, merchantID uuid.UUID, delta int) error
}

// Counters applies product-count deltas off the request path. The counter is
// approximate: a failed write is logged and dropped, never retried and never
// surfaced to the caller.
type Counters struct {
	repo    countAdjuster
	logg    *logger.Logger
	metrics *metrics.SideWriteMetrics
}

// NewCounters builds the best-effort counter writer.
func NewCounters(repo countAdjuster, logg *logger.Logger, m *metrics.SideWriteMetrics) (*Counters, error) {
	if repo == nil {
		return nil, fmt.Errorf("merchant repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Counters{repo: repo, logg: logg, metrics: m}, nil
}

// ProductAdded bumps the merchant's counter after a successful create.
func (c *Counters) ProductAdded(ctx context.Context, merchantID uuid.UUID) {
	c.apply(ctx, merchantID, 1)
}

// ProductRemoved drops the merchant's counter after a successful delete.
func (c *Counters) ProductRemoved(ctx context.Context, merchantID uuid.UUID) {
	c.apply(ctx, merchantID, -1)
}

func (c *Counters) apply(ctx context.Context, merchantID uuid.UUID, delta int) {
	// detach from the request so a client disconnect cannot cancel the write
	base := context.WithoutCancel(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(base, counterTimeout)
		defer cancel()

		start := time.Now()
		err := c.repo.AdjustProductCount(writeCtx, merchantID, delta)
		c.metrics.ObserveDuration(counterOp, time.Since(start))

		if err != nil {
			c.metrics.IncFailure(counterOp)
			logCtx := c.logg.WithFields(writeCtx, map[string]any{
				"merchant_id": merchantID.String(),
				"delta":       delta,
			})
			c.logg.Error(logCtx, "merchant product count write failed", err)
			return
		}
		c.metrics.IncSuccess(counterOp)
	}()
}
