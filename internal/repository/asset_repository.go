package repository

import (
	"errors"
	"strings"

	"github.com/venue-next/internal/models"

	"gorm.io/gorm"
)

// AssetRepository 场地数据访问接口
type AssetRepository interface {
	GetByID(venueID, id uint) (*models.Asset, error)
	GetByCode(venueID uint, code string) (*models.Asset, error)
	ListCodes(venueID uint) ([]string, error)
	List(filter AssetListFilter) ([]models.Asset, int64, error)
	Create(asset *models.Asset) error
	Update(asset *models.Asset) error
	Delete(venueID, id uint) error
}

// GormAssetRepository GORM 实现
type GormAssetRepository struct {
	db *gorm.DB
}

// NewAssetRepository 创建场地仓库
func NewAssetRepository(db *gorm.DB) *GormAssetRepository {
	return &GormAssetRepository{db: db}
}

// GetByID 获取场馆下的场地
func (r *GormAssetRepository) GetByID(venueID, id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.Where("venue_id = ? AND id = ?", venueID, id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// GetByCode 根据场馆内编码获取场地
func (r *GormAssetRepository) GetByCode(venueID uint, code string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.Where("venue_id = ? AND code = ?", venueID, strings.TrimSpace(code)).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

// ListCodes 获取场馆下全部场地编码
func (r *GormAssetRepository) ListCodes(venueID uint) ([]string, error) {
	codes := make([]string, 0)
	if err := r.db.Model(&models.Asset{}).Where("venue_id = ?", venueID).Order("code ASC").Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// List 获取场地列表
func (r *GormAssetRepository) List(filter AssetListFilter) ([]models.Asset, int64, error) {
	query := r.db.Model(&models.Asset{}).Where("venue_id = ?", filter.VenueID)
	if kind := strings.TrimSpace(filter.Kind); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	query = applyKeyword(query, filter.Keyword, "code", "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	assets := make([]models.Asset, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("sort_order DESC, id ASC").Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

// Create 创建场地
func (r *GormAssetRepository) Create(asset *models.Asset) error {
	return r.db.Create(asset).Error
}

// Update 更新场地
func (r *GormAssetRepository) Update(asset *models.Asset) error {
	return r.db.Save(asset).Error
}

// Delete 删除场地
func (r *GormAssetRepository) Delete(venueID, id uint) error {
	return r.db.Where("venue_id = ?", venueID).Delete(&models.Asset{}, id).Error
}
