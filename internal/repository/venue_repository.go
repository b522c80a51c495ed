package repository

import (
	"errors"
	"strings"

	"github.com/venue-next/internal/models"

	"gorm.io/gorm"
)

// VenueRepository 场馆数据访问接口
type VenueRepository interface {
	GetByID(id uint) (*models.Venue, error)
	GetByCode(code string) (*models.Venue, error)
	List(filter VenueListFilter) ([]models.Venue, int64, error)
	Create(venue *models.Venue) error
	Update(venue *models.Venue) error
}

// GormVenueRepository GORM 实现
type GormVenueRepository struct {
	db *gorm.DB
}

// NewVenueRepository 创建场馆仓库
func NewVenueRepository(db *gorm.DB) *GormVenueRepository {
	return &GormVenueRepository{db: db}
}

// GetByID 根据 ID 获取场馆
func (r *GormVenueRepository) GetByID(id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &venue, nil
}

// GetByCode 根据编码获取场馆
func (r *GormVenueRepository) GetByCode(code string) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.Where("code = ?", strings.TrimSpace(code)).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &venue, nil
}

// List 获取场馆列表
func (r *GormVenueRepository) List(filter VenueListFilter) ([]models.Venue, int64, error) {
	query := r.db.Model(&models.Venue{})
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return []models.Venue{}, 0, nil
		}
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	query = applyKeyword(query, filter.Keyword, "code", "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	venues := make([]models.Venue, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).Order("id ASC").Find(&venues).Error; err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

// Create 创建场馆
func (r *GormVenueRepository) Create(venue *models.Venue) error {
	return r.db.Create(venue).Error
}

// Update 更新场馆
func (r *GormVenueRepository) Update(venue *models.Venue) error {
	return r.db.Save(venue).Error
}
