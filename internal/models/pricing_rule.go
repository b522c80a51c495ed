package models

import (
	"strconv"
	"time"

	"github.com/venue-next/internal/pricing"

	"gorm.io/gorm"
)

// PricingRule 价格规则
type PricingRule struct {
	ID              uint               `gorm:"primarykey" json:"id"`                                          // 主键
	VenueID         uint               `gorm:"not null;index:idx_pricing_rule_venue_status" json:"venue_id"`  // 所属场馆
	Name            string             `gorm:"type:varchar(120);not null" json:"name"`                        // 名称
	Description     string             `gorm:"type:text" json:"description"`                                  // 描述
	Type            string             `gorm:"type:varchar(32);not null;index" json:"type"`                   // 规则分类
	Priority        int                `gorm:"not null;default:0;index" json:"priority"`                      // 优先级 0-100，越大越先应用
	TargetAssets    StringArray        `gorm:"type:text" json:"target_assets"`                                // 适用场地编码，空表示全部
	Conditions      pricing.Conditions `gorm:"type:text;serializer:json" json:"conditions"`                   // 命中条件
	AdjustmentType  string             `gorm:"type:varchar(32);not null" json:"adjustment_type"`              // 调价方式
	AdjustmentValue Money              `gorm:"type:decimal(20,2);not null;default:0" json:"adjustment_value"` // 调价数值（百分比或金额）
	OverridePrice   *Money             `gorm:"type:decimal(20,2)" json:"override_price"`                      // 覆盖价，仅 override 使用
	ValidFrom       *time.Time         `gorm:"index" json:"valid_from"`                                       // 生效时间
	ValidUntil      *time.Time         `gorm:"index" json:"valid_until"`                                      // 失效时间
	Status          string             `gorm:"type:varchar(20);not null;index:idx_pricing_rule_venue_status" json:"status"`
	CreatedBy       uint               `gorm:"not null;default:0" json:"created_by"` // 创建人
	UpdatedBy       uint               `gorm:"not null;default:0" json:"updated_by"` // 最后修改人
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt       time.Time          `gorm:"index" json:"updated_at"`              // 更新时间
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (PricingRule) TableName() string {
	return "pricing_rules"
}

// ToPricingRule 转为规则引擎快照
func (r *PricingRule) ToPricingRule() pricing.Rule {
	targets := make([]string, 0, len(r.TargetAssets))
	targets = append(targets, r.TargetAssets...)
	return pricing.Rule{
		ID:           strconv.FormatUint(uint64(r.ID), 10),
		Name:         r.Name,
		Description:  r.Description,
		Type:         pricing.RuleType(r.Type),
		Priority:     r.Priority,
		TargetAssets: targets,
		Conditions:   r.Conditions,
		Adjustment: pricing.Adjustment{
			Type:          pricing.AdjustmentType(r.AdjustmentType),
			Value:         r.AdjustmentValue.Decimal,
			OverridePrice: r.OverridePrice.DecimalPtr(),
		},
		ValidFrom:  r.ValidFrom,
		ValidUntil: r.ValidUntil,
		Status:     pricing.RuleStatus(r.Status),
	}
}

// ToPricingRules 批量转换，保持顺序
func ToPricingRules(rules []PricingRule) []pricing.Rule {
	result := make([]pricing.Rule, 0, len(rules))
	for i := range rules {
		result = append(result, rules[i].ToPricingRule())
	}
	return result
}
