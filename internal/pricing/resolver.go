// Package pricing 场地价格规则引擎：筛选命中规则并按优先级级联调价。
// 纯计算，无 I/O，无共享可变状态，可被并发调用。
package pricing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ResolveApplicableRules 筛选命中规则，按优先级降序（同优先级保持输入顺序）
func ResolveApplicableRules(rules []Rule, ctx Context) []Rule {
	applicable := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.AppliesTo(ctx) {
			applicable = append(applicable, rule)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority > applicable[j].Priority
	})
	return applicable
}

// AppliesTo 判断规则在上下文中是否生效
func (r Rule) AppliesTo(ctx Context) bool {
	if r.Status != RuleStatusActive {
		return false
	}
	if !r.targetsAsset(ctx.AssetID) {
		return false
	}
	if !r.InValidityWindow(ctx) {
		return false
	}
	return r.Conditions.Matches(ctx)
}

// InValidityWindow 判断求值时刻是否落在 [ValidFrom, ValidUntil]
func (r Rule) InValidityWindow(ctx Context) bool {
	now := ctx.EvaluationInstant
	if r.ValidFrom != nil && now.Before(*r.ValidFrom) {
		return false
	}
	if r.ValidUntil != nil && now.After(*r.ValidUntil) {
		return false
	}
	return true
}

func (r Rule) targetsAsset(assetID string) bool {
	if len(r.TargetAssets) == 0 {
		return true
	}
	assetID = strings.TrimSpace(assetID)
	for _, target := range r.TargetAssets {
		if strings.TrimSpace(target) == assetID {
			return true
		}
	}
	return false
}

// ApplyPricing 按给定顺序级联应用调价
// 每一步基于上一步的价格计算；override 直接重置当前价格，后续规则继续叠加
// FinalPrice 下限为 0，TotalAdjustment = FinalPrice - BasePrice
func ApplyPricing(basePrice decimal.Decimal, applicableRules []Rule, currency string) PricePreview {
	base := roundAmount(basePrice)
	running := base
	applied := make([]AppliedRule, 0, len(applicableRules))
	for _, rule := range applicableRules {
		amount := roundAmount(ComputeAdjustmentAmount(running, rule.Adjustment))
		running = running.Add(amount)
		applied = append(applied, AppliedRule{
			RuleID:           rule.ID,
			RuleName:         rule.Name,
			RuleType:         rule.Type,
			AdjustmentAmount: amount,
			AdjustmentType:   rule.Adjustment.Type,
		})
	}

	finalPrice := running
	if finalPrice.IsNegative() {
		finalPrice = decimal.Zero
	}
	total := finalPrice.Sub(base)
	percentage := decimal.Zero
	if !base.IsZero() {
		percentage = total.Mul(hundred).Div(base).Round(AmountPlaces)
	}

	return PricePreview{
		BasePrice:                 base,
		AppliedRules:              applied,
		FinalPrice:                finalPrice,
		TotalAdjustment:           total,
		TotalAdjustmentPercentage: percentage,
		Currency:                  currency,
	}
}

// Preview 筛选并应用规则
func Preview(basePrice decimal.Decimal, rules []Rule, ctx Context, currency string) PricePreview {
	return ApplyPricing(basePrice, ResolveApplicableRules(rules, ctx), currency)
}

// PreviewRule 单条规则对基础价格的效果，忽略状态与条件（规则编辑器使用）
func PreviewRule(basePrice decimal.Decimal, rule Rule, currency string) PricePreview {
	return ApplyPricing(basePrice, []Rule{rule}, currency)
}
