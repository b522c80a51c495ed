package main

import (
	"context"
	"errors"
	"time"

	"github.com/venue-next/internal/config"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/provider"
	"github.com/venue-next/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Log.SQL); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}
	if err := models.InitDefaultAdmin(cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	c := provider.NewContainer(cfg)
	ctx := context.Background()

	// 场馆
	venue, err := c.VenueService.Create(service.VenueInput{
		Code:     "demo-arena",
		Name:     "Demo Arena",
		Currency: cfg.Pricing.Currency(),
		Timezone: cfg.Pricing.Timezone(),
		Address:  "1 Stadium Road",
	})
	if err != nil {
		if errors.Is(err, service.ErrVenueCodeExists) {
			stdLog.Printf("Venue already exists: demo-arena, skip seeding")
			return
		}
		stdLog.Fatalf("Failed to create venue: %v", err)
	}
	stdLog.Printf("Created venue: %s (id=%d)", venue.Code, venue.ID)

	// 场地
	assets := []service.AssetInput{
		{Code: "court-1", Name: "Badminton Court 1", Kind: "court", HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(80)), Capacity: 4, SortOrder: 1},
		{Code: "court-2", Name: "Badminton Court 2", Kind: "court", HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(80)), Capacity: 4, SortOrder: 2},
		{Code: "pitch-a", Name: "Five-a-side Pitch", Kind: "field", HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(300)), Capacity: 10, SortOrder: 3},
		{Code: "room-101", Name: "Meeting Room 101", Kind: "room", HourlyRate: models.NewMoneyFromDecimal(decimal.RequireFromString("45.50")), Capacity: 12, SortOrder: 4},
	}
	for _, input := range assets {
		asset, err := c.AssetService.Create(ctx, venue.ID, input)
		if err != nil {
			stdLog.Printf("Failed to create asset %s: %v", input.Code, err)
			continue
		}
		stdLog.Printf("Created asset: %s (id=%d)", asset.Code, asset.ID)
	}

	// 每种规则类型各一条
	twoHours := 2.0
	oneWeek := 168.0
	holidayPrice := decimal.NewFromInt(500)
	now := time.Now()
	promoUntil := now.AddDate(0, 1, 0)
	holiday := now.AddDate(0, 0, 30).Format("2006-01-02")

	rules := []service.PricingRuleInput{
		{
			Name:            "Evening peak",
			Type:            string(pricing.RuleTypePeakHours),
			Priority:        80,
			Conditions:      pricing.Conditions{TimeSlots: []pricing.TimeSlot{{StartTime: "18:00", EndTime: "22:00"}}},
			AdjustmentType:  string(pricing.AdjustmentPercentageIncrease),
			AdjustmentValue: decimal.NewFromInt(20),
			Status:          string(pricing.RuleStatusActive),
		},
		{
			Name:            "Weekend surcharge",
			Type:            string(pricing.RuleTypeDayOfWeek),
			Priority:        70,
			Conditions:      pricing.Conditions{DaysOfWeek: []int{0, 6}},
			AdjustmentType:  string(pricing.AdjustmentFixedIncrease),
			AdjustmentValue: decimal.NewFromInt(30),
			Status:          string(pricing.RuleStatusActive),
		},
		{
			Name:           "Holiday flat rate",
			Type:           string(pricing.RuleTypeSpecialDate),
			Priority:       100,
			TargetAssets:   []string{"pitch-a"},
			Conditions:     pricing.Conditions{DateRange: &pricing.DateRange{Start: holiday, End: holiday}},
			AdjustmentType: string(pricing.AdjustmentOverride),
			OverridePrice:  &holidayPrice,
			Status:         string(pricing.RuleStatusActive),
		},
		{
			Name:            "Last minute deal",
			Type:            string(pricing.RuleTypeLastMinute),
			Priority:        50,
			Conditions:      pricing.Conditions{BookingWindow: &pricing.BookingWindow{MaxHoursBefore: &twoHours}},
			AdjustmentType:  string(pricing.AdjustmentPercentageDecrease),
			AdjustmentValue: decimal.NewFromInt(15),
			Status:          string(pricing.RuleStatusActive),
		},
		{
			Name:            "Opening month promo",
			Type:            string(pricing.RuleTypePromotional),
			Priority:        40,
			AdjustmentType:  string(pricing.AdjustmentFixedDecrease),
			AdjustmentValue: decimal.NewFromInt(10),
			ValidFrom:       &now,
			ValidUntil:      &promoUntil,
			Status:          string(pricing.RuleStatusActive),
		},
		{
			Name:            "Early bird",
			Type:            string(pricing.RuleTypeEarlyBird),
			Priority:        30,
			TargetAssets:    []string{"court-1", "court-2"},
			Conditions:      pricing.Conditions{BookingWindow: &pricing.BookingWindow{MinHoursBefore: &oneWeek}},
			AdjustmentType:  string(pricing.AdjustmentPercentageDecrease),
			AdjustmentValue: decimal.NewFromInt(10),
			Status:          string(pricing.RuleStatusActive),
		},
	}
	for _, input := range rules {
		rule, err := c.PricingRuleAdminService.Create(ctx, venue.ID, 0, input)
		if err != nil {
			stdLog.Printf("Failed to create pricing rule %s: %v", input.Name, err)
			continue
		}
		stdLog.Printf("Created pricing rule: %s (type=%s status=%s)", rule.Name, rule.Type, rule.Status)
	}

	stdLog.Printf("Seed completed")
}
