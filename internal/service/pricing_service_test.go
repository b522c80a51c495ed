package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/venue-next/internal/cache"
	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/queue"
	"github.com/venue-next/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 2026-10-15 10:00 UTC，周四
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

type pricingFixture struct {
	db        *gorm.DB
	cfg       *config.Config
	venueRepo *repository.GormVenueRepository
	assetRepo *repository.GormAssetRepository
	ruleRepo  *repository.GormPricingRuleRepository
	pricing   *PricingService
	rules     *PricingRuleAdminService
	lifecycle *RuleLifecycleService
	venue     *models.Venue
	court     *models.Asset
}

func setupPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:pricing_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Venue{}, &models.Asset{}, &models.PricingRule{}, &models.Admin{}, &models.AuthzAuditLog{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	venueRepo := repository.NewVenueRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	ruleRepo := repository.NewPricingRuleRepository(db)
	queueClient, _ := queue.NewClient(&config.QueueConfig{Enabled: false})
	pricingService := NewPricingService(cfg, venueRepo, assetRepo, ruleRepo)
	ruleService := NewPricingRuleAdminService(venueRepo, assetRepo, ruleRepo, pricingService, queueClient)
	ruleService.now = func() time.Time { return testNow }

	venue := &models.Venue{Code: "downtown", Name: "Downtown Sports", Currency: "CNY", Timezone: "UTC", IsActive: true}
	if err := venueRepo.Create(venue); err != nil {
		t.Fatalf("create venue failed: %v", err)
	}
	court := &models.Asset{
		VenueID:    venue.ID,
		Code:       "court-1",
		Name:       "Court 1",
		Kind:       "court",
		HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		IsActive:   true,
	}
	if err := assetRepo.Create(court); err != nil {
		t.Fatalf("create asset failed: %v", err)
	}

	return &pricingFixture{
		db:        db,
		cfg:       cfg,
		venueRepo: venueRepo,
		assetRepo: assetRepo,
		ruleRepo:  ruleRepo,
		pricing:   pricingService,
		rules:     ruleService,
		lifecycle: NewRuleLifecycleService(ruleRepo, pricingService),
		venue:     venue,
		court:     court,
	}
}

func setupServiceRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.Use(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return mr
}

func (f *pricingFixture) createRule(t *testing.T, input PricingRuleInput) *models.PricingRule {
	t.Helper()
	rule, err := f.rules.Create(context.Background(), f.venue.ID, 1, input)
	if err != nil {
		t.Fatalf("create rule %q failed: %v", input.Name, err)
	}
	return rule
}

func peakHoursInput() PricingRuleInput {
	return PricingRuleInput{
		Name:            "Evening peak",
		Type:            string(pricing.RuleTypePeakHours),
		Priority:        50,
		Conditions:      pricing.Conditions{TimeSlots: []pricing.TimeSlot{{StartTime: "18:00", EndTime: "22:00"}}},
		AdjustmentType:  string(pricing.AdjustmentPercentageIncrease),
		AdjustmentValue: decimal.NewFromInt(20),
	}
}

func weekendInput() PricingRuleInput {
	return PricingRuleInput{
		Name:            "Weekend",
		Type:            string(pricing.RuleTypeDayOfWeek),
		Priority:        40,
		Conditions:      pricing.Conditions{DaysOfWeek: []int{0, 6}},
		AdjustmentType:  string(pricing.AdjustmentPercentageIncrease),
		AdjustmentValue: decimal.NewFromInt(10),
	}
}

func saturdayBooking() (time.Time, time.Time) {
	start := time.Date(2026, 10, 17, 19, 0, 0, 0, time.UTC)
	return start, start.Add(2 * time.Hour)
}

func TestQuoteAppliesRulesInPriorityOrder(t *testing.T) {
	f := setupPricingFixture(t)
	f.createRule(t, weekendInput())
	f.createRule(t, peakHoursInput())

	start, end := saturdayBooking()
	result, err := f.pricing.Quote(context.Background(), QuoteInput{
		VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: end, Now: testNow,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	preview := result.Preview
	if !preview.BasePrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("base want 200 got %s", preview.BasePrice)
	}
	if len(preview.AppliedRules) != 2 || preview.AppliedRules[0].RuleName != "Evening peak" {
		t.Fatalf("unexpected applied rules: %+v", preview.AppliedRules)
	}
	// 200 * 1.2 = 240, 240 * 1.1 = 264
	if !preview.FinalPrice.Equal(decimal.NewFromInt(264)) {
		t.Fatalf("final want 264 got %s", preview.FinalPrice)
	}
	if preview.Currency != "CNY" || result.AssetCode != "court-1" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.DurationHours.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("duration want 2 got %s", result.DurationHours)
	}
}

func TestQuoteProratesPartialHours(t *testing.T) {
	f := setupPricingFixture(t)
	start := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	result, err := f.pricing.Quote(context.Background(), QuoteInput{
		VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: start.Add(90 * time.Minute), Now: testNow,
	})
	if err != nil {
		t.Fatalf("quote failed: %v", err)
	}
	if !result.Preview.BasePrice.Equal(decimal.NewFromInt(150)) || !result.Preview.FinalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected preview: %+v", result.Preview)
	}
	if len(result.Preview.AppliedRules) != 0 {
		t.Fatalf("no rule should apply")
	}
}

func TestQuoteValidation(t *testing.T) {
	f := setupPricingFixture(t)
	start, end := saturdayBooking()

	inactive := &models.Asset{VenueID: f.venue.ID, Code: "court-2", Name: "Court 2", Kind: "court", IsActive: true}
	if err := f.assetRepo.Create(inactive); err != nil {
		t.Fatalf("create asset failed: %v", err)
	}
	if err := f.db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate asset failed: %v", err)
	}

	cases := []struct {
		name  string
		input QuoteInput
		want  error
	}{
		{name: "missing_asset_id", input: QuoteInput{VenueID: f.venue.ID, StartAt: start, EndAt: end}, want: ErrQuoteInvalid},
		{name: "missing_times", input: QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID}, want: ErrQuoteInvalid},
		{name: "end_before_start", input: QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: end, EndAt: start}, want: ErrQuoteRangeInvalid},
		{name: "empty_range", input: QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: start}, want: ErrQuoteRangeInvalid},
		{name: "too_long", input: QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: start.Add(25 * time.Hour)}, want: ErrQuoteTooLong},
		{name: "unknown_venue", input: QuoteInput{VenueID: 999, AssetID: f.court.ID, StartAt: start, EndAt: end}, want: ErrVenueNotFound},
		{name: "unknown_asset", input: QuoteInput{VenueID: f.venue.ID, AssetID: 999, StartAt: start, EndAt: end}, want: ErrAssetNotFound},
		{name: "inactive_asset", input: QuoteInput{VenueID: f.venue.ID, AssetID: inactive.ID, StartAt: start, EndAt: end}, want: ErrAssetInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.pricing.Quote(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}

	if err := f.db.Model(f.venue).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate venue failed: %v", err)
	}
	if _, err := f.pricing.Quote(context.Background(), QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: end}); !errors.Is(err, ErrVenueInactive) {
		t.Fatalf("want ErrVenueInactive got %v", err)
	}
}

func TestQuoteRespectsTargetAssets(t *testing.T) {
	f := setupPricingFixture(t)
	other := &models.Asset{VenueID: f.venue.ID, Code: "room-a", Name: "Room A", Kind: "room", HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), IsActive: true}
	if err := f.assetRepo.Create(other); err != nil {
		t.Fatalf("create asset failed: %v", err)
	}
	input := peakHoursInput()
	input.TargetAssets = []string{" ROOM-A "}
	rule := f.createRule(t, input)
	if len(rule.TargetAssets) != 1 || rule.TargetAssets[0] != "room-a" {
		t.Fatalf("targets should be normalized, got %v", rule.TargetAssets)
	}

	start, end := saturdayBooking()
	courtQuote, err := f.pricing.Quote(context.Background(), QuoteInput{VenueID: f.venue.ID, AssetID: f.court.ID, StartAt: start, EndAt: end, Now: testNow})
	if err != nil {
		t.Fatalf("quote court failed: %v", err)
	}
	if len(courtQuote.Preview.AppliedRules) != 0 {
		t.Fatalf("rule targeting room-a should not apply to court-1")
	}
	roomQuote, err := f.pricing.Quote(context.Background(), QuoteInput{VenueID: f.venue.ID, AssetID: other.ID, StartAt: start, EndAt: end, Now: testNow})
	if err != nil {
		t.Fatalf("quote room failed: %v", err)
	}
	if !roomQuote.Preview.FinalPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("room final want 120 got %s", roomQuote.Preview.FinalPrice)
	}
}

func TestLoadActiveRulesUsesCache(t *testing.T) {
	mr := setupServiceRedis(t)
	f := setupPricingFixture(t)
	rule := f.createRule(t, peakHoursInput())

	rules, err := f.pricing.LoadActiveRules(context.Background(), f.venue.ID)
	if err != nil || len(rules) != 1 {
		t.Fatalf("load rules failed: %v %d", err, len(rules))
	}
	if !cachedSnapshotExists(t, mr, f.venue.ID) {
		t.Fatalf("snapshot should be cached, keys=%v", mr.Keys())
	}

	// 绕过服务直接改库，缓存仍返回旧快照
	if err := f.db.Model(&models.PricingRule{}).Where("id = ?", rule.ID).Update("status", "inactive").Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	rules, err = f.pricing.LoadActiveRules(context.Background(), f.venue.ID)
	if err != nil || len(rules) != 1 {
		t.Fatalf("cached rules expected, got %d err=%v", len(rules), err)
	}

	f.pricing.InvalidateVenue(context.Background(), f.venue.ID)
	if cachedSnapshotExists(t, mr, f.venue.ID) {
		t.Fatalf("snapshot should be invalidated")
	}
	rules, err = f.pricing.LoadActiveRules(context.Background(), f.venue.ID)
	if err != nil || len(rules) != 0 {
		t.Fatalf("reload should see no active rules, got %d err=%v", len(rules), err)
	}
}

func TestStaleSnapshotWriteIgnoredAfterInvalidate(t *testing.T) {
	setupServiceRedis(t)
	f := setupPricingFixture(t)
	rule := f.createRule(t, peakHoursInput())
	ctx := context.Background()

	// 报价回源时取到的版本与规则
	version, err := cache.PricingRulesVersion(ctx, f.venue.ID)
	if err != nil {
		t.Fatalf("read version failed: %v", err)
	}
	staleRules, err := f.pricing.LoadActiveRules(ctx, f.venue.ID)
	if err != nil || len(staleRules) != 1 {
		t.Fatalf("load rules failed: %d err=%v", len(staleRules), err)
	}

	// 回源期间规则被停用并失效缓存
	if err := f.db.Model(&models.PricingRule{}).Where("id = ?", rule.ID).Update("status", "inactive").Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	f.pricing.InvalidateVenue(ctx, f.venue.ID)

	// 迟到的旧快照写回
	if err := cache.SetPricingRules(ctx, &cache.PricingRuleSnapshot{
		VenueID: f.venue.ID,
		Version: version,
		Rules:   staleRules,
	}, time.Hour); err != nil {
		t.Fatalf("write stale snapshot failed: %v", err)
	}

	rules, err := f.pricing.LoadActiveRules(ctx, f.venue.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(rules) != 0 {
		t.Fatalf("stale snapshot must not be served, got %d rules", len(rules))
	}
}

func cachedSnapshotExists(t *testing.T, mr *miniredis.Miniredis, venueID uint) bool {
	t.Helper()
	version, err := cache.PricingRulesVersion(context.Background(), venueID)
	if err != nil {
		t.Fatalf("read snapshot version failed: %v", err)
	}
	return mr.Exists(cache.BuildKey(fmt.Sprintf("pricing:rules:venue:%d:v%d", venueID, version)))
}

func TestPreviewPrice(t *testing.T) {
	f := setupPricingFixture(t)
	f.createRule(t, weekendInput())
	bookingStart := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	preview, err := f.pricing.PreviewPrice(context.Background(), PreviewInput{
		VenueID:      f.venue.ID,
		AssetCode:    "court-1",
		BasePrice:    decimal.NewFromInt(80),
		BookingStart: &bookingStart,
		Now:          testNow,
	})
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	if !preview.FinalPrice.Equal(decimal.NewFromInt(88)) {
		t.Fatalf("final want 88 got %s", preview.FinalPrice)
	}

	if _, err := f.pricing.PreviewPrice(context.Background(), PreviewInput{VenueID: f.venue.ID, AssetCode: "nope", BasePrice: decimal.NewFromInt(1)}); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("want ErrAssetNotFound got %v", err)
	}
	if _, err := f.pricing.PreviewPrice(context.Background(), PreviewInput{VenueID: f.venue.ID, BasePrice: decimal.NewFromInt(-1)}); !errors.Is(err, ErrQuoteInvalid) {
		t.Fatalf("want ErrQuoteInvalid got %v", err)
	}
}
