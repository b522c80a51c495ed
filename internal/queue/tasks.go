package queue

import (
	"encoding/json"

	"github.com/venue-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPricingRuleStatus 规则状态同步任务
	TaskPricingRuleStatus = constants.TaskPricingRuleStatus
	// TaskPricingCacheRefresh 规则缓存刷新任务
	TaskPricingCacheRefresh = constants.TaskPricingCacheRefresh
)

// 规则状态同步触发边界
const (
	BoundaryValidFrom  = "valid_from"
	BoundaryValidUntil = "valid_until"
)

// RuleStatusSyncPayload 规则状态同步任务载荷
type RuleStatusSyncPayload struct {
	VenueID  uint   `json:"venue_id"`
	RuleID   uint   `json:"rule_id"`
	Boundary string `json:"boundary"`
}

// PricingCacheRefreshPayload 规则缓存刷新任务载荷
type PricingCacheRefreshPayload struct {
	VenueIDs []uint `json:"venue_ids"`
}

// NewRuleStatusSyncTask 创建规则状态同步任务
func NewRuleStatusSyncTask(payload RuleStatusSyncPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPricingRuleStatus, body), nil
}

// NewPricingCacheRefreshTask 创建规则缓存刷新任务
func NewPricingCacheRefreshTask(payload PricingCacheRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPricingCacheRefresh, body), nil
}
