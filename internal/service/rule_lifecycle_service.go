package service

import (
	"context"
	"sort"
	"time"

	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/metrics"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/repository"
)

// RuleLifecycleService 按有效期推进规则状态
type RuleLifecycleService struct {
	ruleRepo repository.PricingRuleRepository
	pricing  *PricingService
}

// NewRuleLifecycleService 创建规则生命周期服务
func NewRuleLifecycleService(ruleRepo repository.PricingRuleRepository, pricingService *PricingService) *RuleLifecycleService {
	return &RuleLifecycleService{ruleRepo: ruleRepo, pricing: pricingService}
}

// RuleStatusSyncResult 状态同步结果
type RuleStatusSyncResult struct {
	ActivatedVenues []uint
	ExpiredVenues   []uint
}

// AffectedVenues 返回去重后的受影响场馆
func (r RuleStatusSyncResult) AffectedVenues() []uint {
	seen := make(map[uint]struct{}, len(r.ActivatedVenues)+len(r.ExpiredVenues))
	result := make([]uint, 0, len(seen))
	for _, ids := range [][]uint{r.ActivatedVenues, r.ExpiredVenues} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// SyncStatuses 先过期再激活：
// active/scheduled 且 valid_until < now 置为 expired；
// scheduled 且 valid_from <= now 置为 active。
// 受影响场馆的规则缓存会被失效
func (s *RuleLifecycleService) SyncStatuses(ctx context.Context, now time.Time) (RuleStatusSyncResult, error) {
	var result RuleStatusSyncResult
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	expired, err := s.ruleRepo.ExpireDue(now)
	if err != nil {
		return result, err
	}
	result.ExpiredVenues = expired

	activated, err := s.ruleRepo.ActivateDue(now)
	if err != nil {
		s.invalidate(ctx, result)
		return result, err
	}
	result.ActivatedVenues = activated

	metrics.RecordRuleStatusTransition(string(pricing.RuleStatusExpired), len(expired))
	metrics.RecordRuleStatusTransition(string(pricing.RuleStatusActive), len(activated))
	s.invalidate(ctx, result)

	if len(expired) > 0 || len(activated) > 0 {
		logger.Ctx(ctx).Infow("pricing_rule_status_synced",
			"expired_venues", len(expired),
			"activated_venues", len(activated),
		)
	}
	return result, nil
}

func (s *RuleLifecycleService) invalidate(ctx context.Context, result RuleStatusSyncResult) {
	if s.pricing == nil {
		return
	}
	if venues := result.AffectedVenues(); len(venues) > 0 {
		s.pricing.InvalidateVenue(ctx, venues...)
	}
}
