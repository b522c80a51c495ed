package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleType 规则分类标签
type RuleType string

const (
	RuleTypePeakHours   RuleType = "peak_hours"
	RuleTypeDayOfWeek   RuleType = "day_of_week"
	RuleTypeSpecialDate RuleType = "special_date"
	RuleTypeLastMinute  RuleType = "last_minute"
	RuleTypePromotional RuleType = "promotional"
	RuleTypeEarlyBird   RuleType = "early_bird"
)

// RuleTypes 全部规则分类
func RuleTypes() []RuleType {
	return []RuleType{
		RuleTypePeakHours,
		RuleTypeDayOfWeek,
		RuleTypeSpecialDate,
		RuleTypeLastMinute,
		RuleTypePromotional,
		RuleTypeEarlyBird,
	}
}

// Valid 是否为已知分类
func (t RuleType) Valid() bool {
	switch t {
	case RuleTypePeakHours, RuleTypeDayOfWeek, RuleTypeSpecialDate,
		RuleTypeLastMinute, RuleTypePromotional, RuleTypeEarlyBird:
		return true
	}
	return false
}

// RuleStatus 规则状态
type RuleStatus string

const (
	RuleStatusActive    RuleStatus = "active"
	RuleStatusInactive  RuleStatus = "inactive"
	RuleStatusScheduled RuleStatus = "scheduled"
	RuleStatusExpired   RuleStatus = "expired"
)

// RuleStatuses 全部规则状态
func RuleStatuses() []RuleStatus {
	return []RuleStatus{RuleStatusActive, RuleStatusInactive, RuleStatusScheduled, RuleStatusExpired}
}

// Valid 是否为已知状态
func (s RuleStatus) Valid() bool {
	switch s {
	case RuleStatusActive, RuleStatusInactive, RuleStatusScheduled, RuleStatusExpired:
		return true
	}
	return false
}

// AdjustmentType 调价方式
type AdjustmentType string

const (
	AdjustmentPercentageIncrease AdjustmentType = "percentage_increase"
	AdjustmentPercentageDecrease AdjustmentType = "percentage_decrease"
	AdjustmentFixedIncrease      AdjustmentType = "fixed_increase"
	AdjustmentFixedDecrease      AdjustmentType = "fixed_decrease"
	AdjustmentOverride           AdjustmentType = "override"
)

// Valid 是否为已知调价方式
func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentPercentageIncrease, AdjustmentPercentageDecrease,
		AdjustmentFixedIncrease, AdjustmentFixedDecrease, AdjustmentOverride:
		return true
	}
	return false
}

// TimeSlot 时段（本地时间 HH:mm，左闭右开）
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DateRange 日期范围（YYYY-MM-DD，两端包含）
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookingWindow 提前预订窗口（小时）
// 指针为 nil 表示该侧不限，0 是有效边界
type BookingWindow struct {
	MinHoursBefore *float64 `json:"min_hours_before,omitempty"`
	MaxHoursBefore *float64 `json:"max_hours_before,omitempty"`
}

// Conditions 规则命中条件，未设置的维度不做限制
type Conditions struct {
	TimeSlots     []TimeSlot     `json:"time_slots,omitempty"`
	DaysOfWeek    []int          `json:"days_of_week,omitempty"`
	DateRange     *DateRange     `json:"date_range,omitempty"`
	BookingWindow *BookingWindow `json:"booking_window,omitempty"`
}

// Adjustment 调价动作
type Adjustment struct {
	Type          AdjustmentType   `json:"type"`
	Value         decimal.Decimal  `json:"value"`
	OverridePrice *decimal.Decimal `json:"override_price,omitempty"`
}

// Rule 价格规则快照
type Rule struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         RuleType   `json:"type"`
	Priority     int        `json:"priority"`
	TargetAssets []string   `json:"target_assets"`
	Conditions   Conditions `json:"conditions"`
	Adjustment   Adjustment `json:"adjustment"`
	ValidFrom    *time.Time `json:"valid_from,omitempty"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
	Status       RuleStatus `json:"status"`
}

// Context 规则求值上下文
type Context struct {
	AssetID string
	// EvaluationInstant 求值时刻（"现在"），用于有效期与预订窗口
	EvaluationInstant time.Time
	// BookingStartInstant 预订开始时刻，为空时回退到 EvaluationInstant
	BookingStartInstant *time.Time
	// Location 场馆所在时区，为空时使用 UTC
	Location *time.Location
}

// AppliedRule 命中规则的单步调价记录
type AppliedRule struct {
	RuleID           string          `json:"rule_id"`
	RuleName         string          `json:"rule_name"`
	RuleType         RuleType        `json:"rule_type"`
	AdjustmentAmount decimal.Decimal `json:"adjustment_amount"`
	AdjustmentType   AdjustmentType  `json:"adjustment_type"`
}

// PricePreview 价格预览结果
type PricePreview struct {
	BasePrice                 decimal.Decimal `json:"base_price"`
	AppliedRules              []AppliedRule   `json:"applied_rules"`
	FinalPrice                decimal.Decimal `json:"final_price"`
	TotalAdjustment           decimal.Decimal `json:"total_adjustment"`
	TotalAdjustmentPercentage decimal.Decimal `json:"total_adjustment_percentage"`
	Currency                  string          `json:"currency"`
}
