package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/venue-next/internal/cache"
	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/metrics"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/repository"

	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// PricingService 报价服务：加载场馆 active 规则并计算最终价格
type PricingService struct {
	cfg       *config.Config
	venueRepo repository.VenueRepository
	assetRepo repository.AssetRepository
	ruleRepo  repository.PricingRuleRepository
}

// NewPricingService 创建报价服务
func NewPricingService(cfg *config.Config, venueRepo repository.VenueRepository, assetRepo repository.AssetRepository, ruleRepo repository.PricingRuleRepository) *PricingService {
	return &PricingService{
		cfg:       cfg,
		venueRepo: venueRepo,
		assetRepo: assetRepo,
		ruleRepo:  ruleRepo,
	}
}

// QuoteInput 报价输入
type QuoteInput struct {
	VenueID uint
	AssetID uint
	StartAt time.Time
	EndAt   time.Time
	Now     time.Time
}

// QuoteResult 报价结果
type QuoteResult struct {
	VenueID       uint                 `json:"venue_id"`
	AssetID       uint                 `json:"asset_id"`
	AssetCode     string               `json:"asset_code"`
	StartAt       time.Time            `json:"start_at"`
	EndAt         time.Time            `json:"end_at"`
	DurationHours decimal.Decimal      `json:"duration_hours"`
	HourlyRate    models.Money         `json:"hourly_rate"`
	Timezone      string               `json:"timezone"`
	Preview       pricing.PricePreview `json:"preview"`
}

// PreviewInput 管理端价格试算输入
type PreviewInput struct {
	VenueID      uint
	AssetCode    string
	BasePrice    decimal.Decimal
	BookingStart *time.Time
	Now          time.Time
}

// Quote 计算场地在指定时段的价格
func (s *PricingService) Quote(ctx context.Context, input QuoteInput) (result *QuoteResult, err error) {
	started := time.Now()
	defer func() {
		applied := 0
		if result != nil {
			applied = len(result.Preview.AppliedRules)
		}
		metrics.RecordQuote(metrics.QuoteSourcePublic, err, applied, time.Since(started))
	}()

	if input.VenueID == 0 || input.AssetID == 0 || input.StartAt.IsZero() || input.EndAt.IsZero() {
		return nil, ErrQuoteInvalid
	}
	if !input.EndAt.After(input.StartAt) {
		return nil, ErrQuoteRangeInvalid
	}
	duration := input.EndAt.Sub(input.StartAt)
	if duration > s.cfg.Pricing.MaxQuoteDuration() {
		return nil, ErrQuoteTooLong
	}

	venue, err := s.loadVenue(input.VenueID, true)
	if err != nil {
		return nil, err
	}
	asset, err := s.assetRepo.GetByID(venue.ID, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	if !asset.IsActive {
		return nil, ErrAssetInactive
	}

	rules, err := s.LoadActiveRules(ctx, venue.ID)
	if err != nil {
		return nil, err
	}

	hours := durationHours(duration)
	base := asset.HourlyRate.Decimal.Mul(hours).Round(pricing.AmountPlaces)
	start := input.StartAt
	preview := pricing.Preview(base, rules, pricing.Context{
		AssetID:             asset.Code,
		EvaluationInstant:   nowOr(input.Now),
		BookingStartInstant: &start,
		Location:            venue.Location(),
	}, venue.Currency)

	logger.Ctx(ctx).Debugw("pricing_quote_computed",
		"venue_id", venue.ID,
		"asset_id", asset.ID,
		"base_price", preview.BasePrice.String(),
		"final_price", preview.FinalPrice.String(),
		"applied_rules", len(preview.AppliedRules),
	)

	return &QuoteResult{
		VenueID:       venue.ID,
		AssetID:       asset.ID,
		AssetCode:     asset.Code,
		StartAt:       input.StartAt,
		EndAt:         input.EndAt,
		DurationHours: hours.Round(4),
		HourlyRate:    asset.HourlyRate,
		Timezone:      venue.Location().String(),
		Preview:       preview,
	}, nil
}

// PreviewPrice 以给定基础价试算场馆当前 active 规则的效果
func (s *PricingService) PreviewPrice(ctx context.Context, input PreviewInput) (result *pricing.PricePreview, err error) {
	started := time.Now()
	defer func() {
		applied := 0
		if result != nil {
			applied = len(result.AppliedRules)
		}
		metrics.RecordQuote(metrics.QuoteSourcePreview, err, applied, time.Since(started))
	}()

	if input.BasePrice.IsNegative() {
		return nil, ErrQuoteInvalid
	}
	venue, err := s.loadVenue(input.VenueID, false)
	if err != nil {
		return nil, err
	}

	assetCode := strings.ToLower(strings.TrimSpace(input.AssetCode))
	if assetCode != "" {
		asset, err := s.assetRepo.GetByCode(venue.ID, assetCode)
		if err != nil {
			return nil, err
		}
		if asset == nil {
			return nil, ErrAssetNotFound
		}
	}

	rules, err := s.LoadActiveRules(ctx, venue.ID)
	if err != nil {
		return nil, err
	}
	preview := pricing.Preview(input.BasePrice, rules, pricing.Context{
		AssetID:             assetCode,
		EvaluationInstant:   nowOr(input.Now),
		BookingStartInstant: input.BookingStart,
		Location:            venue.Location(),
	}, venue.Currency)
	return &preview, nil
}

// LoadActiveRules 加载场馆 active 规则快照，优先读缓存
// 规则按优先级降序、ID 升序排列
func (s *PricingService) LoadActiveRules(ctx context.Context, venueID uint) ([]pricing.Rule, error) {
	useCache := cache.Enabled()
	var version int64
	if useCache {
		var err error
		version, err = cache.PricingRulesVersion(ctx, venueID)
		if err != nil {
			logger.Ctx(ctx).Warnw("pricing_rule_cache_version_failed", "venue_id", venueID, "error", err)
			useCache = false
		}
	}
	if useCache {
		snapshot, hit, err := cache.GetPricingRules(ctx, venueID, version)
		if err != nil {
			logger.Ctx(ctx).Warnw("pricing_rule_cache_read_failed", "venue_id", venueID, "error", err)
		}
		metrics.RecordRuleCache(hit && snapshot != nil)
		if hit && snapshot != nil {
			return snapshot.Rules, nil
		}
		logger.Ctx(ctx).Debugw("pricing_quote_cache_miss", "venue_id", venueID, "version", version)
	}

	rows, err := s.ruleRepo.ListActiveByVenue(venueID)
	if err != nil {
		return nil, err
	}
	rules := models.ToPricingRules(rows)

	if useCache {
		snapshot := &cache.PricingRuleSnapshot{
			VenueID:  venueID,
			Version:  version,
			Rules:    rules,
			LoadedAt: time.Now().Unix(),
		}
		if err := cache.SetPricingRules(ctx, snapshot, s.cfg.Pricing.RuleCacheTTL()); err != nil {
			logger.Ctx(ctx).Warnw("pricing_rule_cache_write_failed", "venue_id", venueID, "error", err)
		}
	}
	return rules, nil
}

// InvalidateVenue 失效场馆规则快照（递增快照版本）
func (s *PricingService) InvalidateVenue(ctx context.Context, venueIDs ...uint) {
	if len(venueIDs) == 0 {
		return
	}
	if err := cache.DelPricingRules(ctx, venueIDs...); err != nil {
		ids := make([]string, 0, len(venueIDs))
		for _, id := range venueIDs {
			ids = append(ids, strconv.FormatUint(uint64(id), 10))
		}
		logger.Ctx(ctx).Warnw("pricing_rule_cache_invalidate_failed", "venue_ids", strings.Join(ids, ","), "error", err)
	}
}

func (s *PricingService) loadVenue(venueID uint, requireActive bool) (*models.Venue, error) {
	if venueID == 0 {
		return nil, ErrVenueNotFound
	}
	venue, err := s.venueRepo.GetByID(venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	if requireActive && !venue.IsActive {
		return nil, ErrVenueInactive
	}
	return venue, nil
}

// durationHours 以分钟精度换算小时数
func durationHours(d time.Duration) decimal.Decimal {
	minutes := int64(d / time.Minute)
	return decimal.NewFromInt(minutes).Div(minutesPerHour)
}

func nowOr(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now()
	}
	return now
}
