package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/venue-next/internal/pricing"

	"github.com/redis/go-redis/v9"
)

// PricingRuleSnapshot 场馆 active 规则快照
// Version 为写入时读到的场馆快照版本，失效操作会递增版本
type PricingRuleSnapshot struct {
	VenueID  uint           `json:"venue_id"`
	Version  int64          `json:"version"`
	Rules    []pricing.Rule `json:"rules"`
	LoadedAt int64          `json:"loaded_at"`
}

func pricingRulesVersionKey(venueID uint) string {
	return fmt.Sprintf("pricing:rules:venue:%d:version", venueID)
}

func pricingRulesKey(venueID uint, version int64) string {
	return fmt.Sprintf("pricing:rules:venue:%d:v%d", venueID, version)
}

// PricingRulesVersion 读取场馆快照版本，从未失效过时为 0
// 回源前先取版本：回源期间发生的失效会让本次写入落到旧版本键上，读路径不再命中
func PricingRulesVersion(ctx context.Context, venueID uint) (int64, error) {
	if !Enabled() || venueID == 0 {
		return 0, nil
	}
	version, err := redisClient.Get(ctx, buildKey(pricingRulesVersionKey(venueID))).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

// GetPricingRules 读取指定版本的场馆规则快照
func GetPricingRules(ctx context.Context, venueID uint, version int64) (*PricingRuleSnapshot, bool, error) {
	if venueID == 0 {
		return nil, false, nil
	}
	var snapshot PricingRuleSnapshot
	hit, err := GetJSON(ctx, pricingRulesKey(venueID, version), &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// SetPricingRules 按快照自带的版本写入
func SetPricingRules(ctx context.Context, snapshot *PricingRuleSnapshot, ttl time.Duration) error {
	if snapshot == nil || snapshot.VenueID == 0 {
		return nil
	}
	if snapshot.Rules == nil {
		snapshot.Rules = []pricing.Rule{}
	}
	return SetJSON(ctx, pricingRulesKey(snapshot.VenueID, snapshot.Version), snapshot, ttl)
}

// DelPricingRules 递增场馆快照版本并删除当前版本快照
func DelPricingRules(ctx context.Context, venueIDs ...uint) error {
	if !Enabled() {
		return nil
	}
	ids := make([]uint, 0, len(venueIDs))
	for _, id := range venueIDs {
		if id != 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	pipe := redisClient.TxPipeline()
	cmds := make([]*redis.IntCmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, pipe.Incr(ctx, buildKey(pricingRulesVersionKey(id))))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	stale := make([]string, 0, len(ids))
	for i, id := range ids {
		stale = append(stale, pricingRulesKey(id, cmds[i].Val()-1))
	}
	return Del(ctx, stale...)
}
