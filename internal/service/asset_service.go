package service

import (
	"context"
	"strings"

	"github.com/venue-next/internal/constants"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/repository"

	"github.com/shopspring/decimal"
)

// AssetService 场地管理服务
type AssetService struct {
	venueRepo repository.VenueRepository
	assetRepo repository.AssetRepository
	pricing   *PricingService
}

// NewAssetService 创建场地服务
func NewAssetService(venueRepo repository.VenueRepository, assetRepo repository.AssetRepository, pricing *PricingService) *AssetService {
	return &AssetService{venueRepo: venueRepo, assetRepo: assetRepo, pricing: pricing}
}

// AssetInput 创建/更新场地输入
type AssetInput struct {
	Code       string
	Name       string
	Kind       string
	HourlyRate models.Money
	Capacity   int
	IsActive   *bool
	SortOrder  int
}

// Get 获取场馆下的场地
func (s *AssetService) Get(venueID, id uint) (*models.Asset, error) {
	if venueID == 0 || id == 0 {
		return nil, ErrAssetNotFound
	}
	asset, err := s.assetRepo.GetByID(venueID, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, ErrAssetNotFound
	}
	return asset, nil
}

// List 场地列表
func (s *AssetService) List(filter repository.AssetListFilter) ([]models.Asset, int64, error) {
	return s.assetRepo.List(filter)
}

// Create 创建场地
func (s *AssetService) Create(ctx context.Context, venueID uint, input AssetInput) (*models.Asset, error) {
	if err := s.ensureVenue(venueID); err != nil {
		return nil, err
	}
	asset := &models.Asset{VenueID: venueID, IsActive: true}
	if err := applyAssetInput(asset, input); err != nil {
		return nil, err
	}
	existing, err := s.assetRepo.GetByCode(venueID, asset.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAssetCodeExists
	}
	if err := s.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	// is_active 带数据库默认值，false 需要显式回写
	if !asset.IsActive {
		if err := s.assetRepo.Update(asset); err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx, venueID)
	return asset, nil
}

// Update 更新场地
func (s *AssetService) Update(ctx context.Context, venueID, id uint, input AssetInput) (*models.Asset, error) {
	asset, err := s.Get(venueID, id)
	if err != nil {
		return nil, err
	}
	oldCode := asset.Code
	if err := applyAssetInput(asset, input); err != nil {
		return nil, err
	}
	if asset.Code != oldCode {
		existing, err := s.assetRepo.GetByCode(venueID, asset.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != asset.ID {
			return nil, ErrAssetCodeExists
		}
	}
	if err := s.assetRepo.Update(asset); err != nil {
		return nil, err
	}
	s.invalidate(ctx, venueID)
	return asset, nil
}

// Delete 删除场地
func (s *AssetService) Delete(ctx context.Context, venueID, id uint) error {
	if _, err := s.Get(venueID, id); err != nil {
		return err
	}
	if err := s.assetRepo.Delete(venueID, id); err != nil {
		return err
	}
	s.invalidate(ctx, venueID)
	return nil
}

func (s *AssetService) ensureVenue(venueID uint) error {
	if venueID == 0 {
		return ErrVenueNotFound
	}
	venue, err := s.venueRepo.GetByID(venueID)
	if err != nil {
		return err
	}
	if venue == nil {
		return ErrVenueNotFound
	}
	return nil
}

func (s *AssetService) invalidate(ctx context.Context, venueID uint) {
	if s.pricing != nil {
		s.pricing.InvalidateVenue(ctx, venueID)
	}
}

func applyAssetInput(asset *models.Asset, input AssetInput) error {
	code := strings.ToLower(strings.TrimSpace(input.Code))
	name := strings.TrimSpace(input.Name)
	if !codePattern.MatchString(code) || name == "" || len([]rune(name)) > 120 {
		return ErrAssetInvalid
	}
	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if kind == "" {
		kind = constants.AssetKindOther
	}
	if !containsString(constants.AssetKinds, kind) {
		return ErrAssetInvalid
	}
	if input.HourlyRate.Decimal.LessThan(decimal.Zero) || input.Capacity < 0 {
		return ErrAssetInvalid
	}

	asset.Code = code
	asset.Name = name
	asset.Kind = kind
	asset.HourlyRate = models.NewMoneyFromDecimal(input.HourlyRate.Decimal)
	asset.Capacity = input.Capacity
	asset.SortOrder = input.SortOrder
	if input.IsActive != nil {
		asset.IsActive = *input.IsActive
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
