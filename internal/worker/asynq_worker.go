package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/provider"
	"github.com/venue-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	now func() time.Time
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
		now:       time.Now,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPricingRuleStatus, c.handleRuleStatusSync)
	mux.HandleFunc(queue.TaskPricingCacheRefresh, c.handlePricingCacheRefresh)
}

// handleRuleStatusSync 规则到达 valid_from / valid_until 边界时触发全量状态同步
func (c *Consumer) handleRuleStatusSync(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_rule_status_sync_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RuleStatusSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_rule_status_sync_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.RuleLifecycleService == nil {
		logger.Warnw("worker_rule_status_sync_skip_service_nil", "rule_id", payload.RuleID)
		return nil
	}
	result, err := c.RuleLifecycleService.SyncStatuses(ctx, c.clock())
	if err != nil {
		logger.Warnw("worker_rule_status_sync_failed",
			"venue_id", payload.VenueID,
			"rule_id", payload.RuleID,
			"boundary", payload.Boundary,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_rule_status_sync_done",
		"venue_id", payload.VenueID,
		"rule_id", payload.RuleID,
		"boundary", payload.Boundary,
		"affected_venues", result.AffectedVenues(),
	)
	return nil
}

// handlePricingCacheRefresh 清除并预热场馆规则缓存
func (c *Consumer) handlePricingCacheRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_pricing_cache_refresh_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PricingCacheRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_pricing_cache_refresh_unmarshal_failed", "error", err)
		return err
	}
	if len(payload.VenueIDs) == 0 {
		logger.Debugw("worker_pricing_cache_refresh_skip_empty_payload")
		return nil
	}
	if c.Container == nil || c.PricingService == nil {
		logger.Warnw("worker_pricing_cache_refresh_skip_service_nil", "venue_ids", payload.VenueIDs)
		return nil
	}
	c.PricingService.InvalidateVenue(ctx, payload.VenueIDs...)
	for _, venueID := range payload.VenueIDs {
		if venueID == 0 {
			continue
		}
		if _, err := c.PricingService.LoadActiveRules(ctx, venueID); err != nil {
			logger.Warnw("worker_pricing_cache_refresh_warm_failed", "venue_id", venueID, "error", err)
			return err
		}
	}
	return nil
}

// syncRuleStatuses 周期性兜底同步，队列任务丢失时仍能推进规则状态
func (c *Consumer) syncRuleStatuses(ctx context.Context) {
	if c == nil || c.Container == nil || c.RuleLifecycleService == nil {
		return
	}
	if _, err := c.RuleLifecycleService.SyncStatuses(ctx, c.clock()); err != nil {
		logger.Warnw("worker_rule_status_sync_tick_failed", "error", err)
	}
}

func (c *Consumer) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
