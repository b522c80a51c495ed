package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/pricing"

	"gorm.io/gorm"
)

// PricingRuleRepository 价格规则数据访问接口
type PricingRuleRepository interface {
	GetByID(venueID, id uint) (*models.PricingRule, error)
	Create(rule *models.PricingRule) error
	Update(rule *models.PricingRule) error
	UpdateStatus(venueID, id uint, status string, updatedBy uint) (int64, error)
	Delete(venueID, id uint) error
	List(filter PricingRuleListFilter) ([]models.PricingRule, int64, error)
	ListActiveByVenue(venueID uint) ([]models.PricingRule, error)
	CountByStatus(venueID uint) (map[string]int64, error)
	CountByType(venueID uint) (map[string]int64, error)
	ActivateDue(now time.Time) ([]uint, error)
	ExpireDue(now time.Time) ([]uint, error)
}

// GormPricingRuleRepository GORM 实现
type GormPricingRuleRepository struct {
	db *gorm.DB
}

// NewPricingRuleRepository 创建价格规则仓库
func NewPricingRuleRepository(db *gorm.DB) *GormPricingRuleRepository {
	return &GormPricingRuleRepository{db: db}
}

// GetByID 获取场馆下的规则
func (r *GormPricingRuleRepository) GetByID(venueID, id uint) (*models.PricingRule, error) {
	var rule models.PricingRule
	if err := r.db.Where("venue_id = ? AND id = ?", venueID, id).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// Create 创建规则
func (r *GormPricingRuleRepository) Create(rule *models.PricingRule) error {
	return r.db.Create(rule).Error
}

// Update 更新规则
func (r *GormPricingRuleRepository) Update(rule *models.PricingRule) error {
	return r.db.Save(rule).Error
}

// UpdateStatus 仅更新状态，返回影响行数
func (r *GormPricingRuleRepository) UpdateStatus(venueID, id uint, status string, updatedBy uint) (int64, error) {
	result := r.db.Model(&models.PricingRule{}).
		Where("venue_id = ? AND id = ?", venueID, id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// Delete 删除规则（软删除）
func (r *GormPricingRuleRepository) Delete(venueID, id uint) error {
	return r.db.Where("venue_id = ?", venueID).Delete(&models.PricingRule{}, id).Error
}

// List 获取规则列表
func (r *GormPricingRuleRepository) List(filter PricingRuleListFilter) ([]models.PricingRule, int64, error) {
	query := r.db.Model(&models.PricingRule{}).Where("venue_id = ?", filter.VenueID)
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if ruleType := strings.TrimSpace(filter.Type); ruleType != "" {
		query = query.Where("type = ?", ruleType)
	}
	if code := strings.TrimSpace(filter.AssetCode); code != "" {
		// 未指定场地的规则同样适用于该场地
		query = query.Where("("+jsonArrayEmptyExpr(query, "target_assets")+" OR "+jsonArrayContainsExpr(query, "target_assets")+")", code)
	}
	query = applyKeyword(query, filter.Keyword, "name", "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rules := make([]models.PricingRule, 0)
	if err := applyPagination(query, filter.Page, filter.PageSize).Order(pricingRuleOrder(filter.OrderBy)).Find(&rules).Error; err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

func pricingRuleOrder(orderBy string) string {
	switch strings.TrimSpace(orderBy) {
	case "updated_at":
		return "updated_at DESC, id DESC"
	case "created_at":
		return "created_at DESC, id DESC"
	case "name":
		return "name ASC, id ASC"
	default:
		return "priority DESC, id ASC"
	}
}

// ListActiveByVenue 获取场馆全部 active 规则，按优先级降序、ID 升序
func (r *GormPricingRuleRepository) ListActiveByVenue(venueID uint) ([]models.PricingRule, error) {
	rules := make([]models.PricingRule, 0)
	err := r.db.Where("venue_id = ? AND status = ?", venueID, string(pricing.RuleStatusActive)).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// CountByStatus 按状态统计规则数
func (r *GormPricingRuleRepository) CountByStatus(venueID uint) (map[string]int64, error) {
	return r.countGroupBy(venueID, "status")
}

// CountByType 按分类统计规则数
func (r *GormPricingRuleRepository) CountByType(venueID uint) (map[string]int64, error) {
	return r.countGroupBy(venueID, "type")
}

type groupCountRow struct {
	GroupKey string
	Total    int64
}

func (r *GormPricingRuleRepository) countGroupBy(venueID uint, column string) (map[string]int64, error) {
	rows := make([]groupCountRow, 0)
	err := r.db.Model(&models.PricingRule{}).
		Select(column+" AS group_key, COUNT(*) AS total").
		Where("venue_id = ?", venueID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.GroupKey] = row.Total
	}
	return result, nil
}

// ActivateDue 将已到生效时间的 scheduled 规则置为 active，返回受影响的场馆
// 已过失效时间的规则交给 ExpireDue 处理
func (r *GormPricingRuleRepository) ActivateDue(now time.Time) ([]uint, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", string(pricing.RuleStatusScheduled)).
			Where("valid_from IS NOT NULL AND valid_from <= ?", now).
			Where("(valid_until IS NULL OR valid_until >= ?)", now)
	}
	return r.transitionStatus(scope, string(pricing.RuleStatusActive), now)
}

// ExpireDue 将已过失效时间的 active/scheduled 规则置为 expired，返回受影响的场馆
func (r *GormPricingRuleRepository) ExpireDue(now time.Time) ([]uint, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("status IN ?", []string{string(pricing.RuleStatusActive), string(pricing.RuleStatusScheduled)}).
			Where("valid_until IS NOT NULL AND valid_until < ?", now)
	}
	return r.transitionStatus(scope, string(pricing.RuleStatusExpired), now)
}

func (r *GormPricingRuleRepository) transitionStatus(scope func(*gorm.DB) *gorm.DB, status string, now time.Time) ([]uint, error) {
	venueIDs := make([]uint, 0)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := scope(tx.Model(&models.PricingRule{})).Distinct().Pluck("venue_id", &venueIDs).Error; err != nil {
			return err
		}
		if len(venueIDs) == 0 {
			return nil
		}
		return scope(tx.Model(&models.PricingRule{})).Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return venueIDs, nil
}
