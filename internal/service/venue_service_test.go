package service

import (
	"context"
	"errors"
	"testing"

	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/repository"

	"github.com/shopspring/decimal"
)

func TestVenueServiceCreateAndUpdate(t *testing.T) {
	f := setupPricingFixture(t)
	svc := NewVenueService(f.cfg, f.venueRepo)

	inactive := false
	venue, err := svc.Create(VenueInput{Code: " Uptown ", Name: "Uptown Arena", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create venue failed: %v", err)
	}
	if venue.Code != "uptown" || venue.Currency != "CNY" || venue.Timezone != "UTC" {
		t.Fatalf("defaults not applied: %+v", venue)
	}
	stored, err := svc.Get(venue.ID)
	if err != nil || stored.IsActive {
		t.Fatalf("inactive flag should persist, got %+v err=%v", stored, err)
	}
	if _, err := svc.GetActive(venue.ID); !errors.Is(err, ErrVenueInactive) {
		t.Fatalf("want ErrVenueInactive got %v", err)
	}

	if _, err := svc.Create(VenueInput{Code: "downtown", Name: "Dup"}); !errors.Is(err, ErrVenueCodeExists) {
		t.Fatalf("want ErrVenueCodeExists got %v", err)
	}
	if _, err := svc.Create(VenueInput{Code: "bad code", Name: "Bad"}); !errors.Is(err, ErrVenueInvalid) {
		t.Fatalf("want ErrVenueInvalid got %v", err)
	}
	if _, err := svc.Create(VenueInput{Code: "tz", Name: "Bad tz", Timezone: "Mars/Olympus"}); !errors.Is(err, ErrVenueInvalid) {
		t.Fatalf("want ErrVenueInvalid for timezone got %v", err)
	}

	updated, err := svc.Update(venue.ID, VenueInput{Code: "uptown", Name: "Uptown Arena 2", Currency: "usd"})
	if err != nil {
		t.Fatalf("update venue failed: %v", err)
	}
	if updated.Name != "Uptown Arena 2" || updated.Currency != "USD" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if _, err := svc.Update(venue.ID, VenueInput{Code: "downtown", Name: "Clash"}); !errors.Is(err, ErrVenueCodeExists) {
		t.Fatalf("want ErrVenueCodeExists got %v", err)
	}

	items, total, err := svc.List(repository.VenueListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil || total != 1 || items[0].Code != "downtown" {
		t.Fatalf("unexpected active venues total=%d err=%v", total, err)
	}
}

func TestAssetServiceLifecycle(t *testing.T) {
	f := setupPricingFixture(t)
	svc := NewAssetService(f.venueRepo, f.assetRepo, f.pricing)
	ctx := context.Background()

	asset, err := svc.Create(ctx, f.venue.ID, AssetInput{
		Code:       "Lane-1",
		Name:       "Lane 1",
		Kind:       "lane",
		HourlyRate: models.NewMoneyFromDecimal(decimal.RequireFromString("35.555")),
	})
	if err != nil {
		t.Fatalf("create asset failed: %v", err)
	}
	if asset.Code != "lane-1" || !asset.HourlyRate.Decimal.Equal(decimal.RequireFromString("35.56")) {
		t.Fatalf("unexpected asset: %+v", asset)
	}

	if _, err := svc.Create(ctx, f.venue.ID, AssetInput{Code: "lane-1", Name: "Dup"}); !errors.Is(err, ErrAssetCodeExists) {
		t.Fatalf("want ErrAssetCodeExists got %v", err)
	}
	if _, err := svc.Create(ctx, f.venue.ID, AssetInput{Code: "pool", Name: "Pool", Kind: "pool"}); !errors.Is(err, ErrAssetInvalid) {
		t.Fatalf("want ErrAssetInvalid got %v", err)
	}
	if _, err := svc.Create(ctx, f.venue.ID, AssetInput{Code: "neg", Name: "Neg", HourlyRate: models.NewMoneyFromDecimal(decimal.NewFromInt(-1))}); !errors.Is(err, ErrAssetInvalid) {
		t.Fatalf("want ErrAssetInvalid got %v", err)
	}
	if _, err := svc.Create(ctx, 999, AssetInput{Code: "x", Name: "X"}); !errors.Is(err, ErrVenueNotFound) {
		t.Fatalf("want ErrVenueNotFound got %v", err)
	}

	if _, err := svc.Update(ctx, f.venue.ID, asset.ID, AssetInput{Code: "court-1", Name: "Clash"}); !errors.Is(err, ErrAssetCodeExists) {
		t.Fatalf("want ErrAssetCodeExists got %v", err)
	}
	if err := svc.Delete(ctx, f.venue.ID, asset.ID); err != nil {
		t.Fatalf("delete asset failed: %v", err)
	}
	if _, err := svc.Get(f.venue.ID, asset.ID); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("want ErrAssetNotFound got %v", err)
	}
	if _, err := svc.Create(ctx, f.venue.ID, AssetInput{Code: "lane-1", Name: "Lane 1 again"}); err != nil {
		t.Fatalf("code should be reusable after delete: %v", err)
	}
}
