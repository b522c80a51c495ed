package pricing

import "github.com/shopspring/decimal"

// AmountPlaces 金额保留的小数位
const AmountPlaces = 2

var hundred = decimal.NewFromInt(100)

// ComputeAdjustmentAmount 计算单条调价相对 price 的变化量（不取整）
// override 返回 overridePrice - price，缺失的 overridePrice 视为 0
func ComputeAdjustmentAmount(price decimal.Decimal, adjustment Adjustment) decimal.Decimal {
	switch adjustment.Type {
	case AdjustmentPercentageIncrease:
		return price.Mul(adjustment.Value).Div(hundred)
	case AdjustmentPercentageDecrease:
		return price.Mul(adjustment.Value).Div(hundred).Neg()
	case AdjustmentFixedIncrease:
		return adjustment.Value
	case AdjustmentFixedDecrease:
		return adjustment.Value.Neg()
	case AdjustmentOverride:
		return adjustment.overridePrice().Sub(price)
	default:
		return decimal.Zero
	}
}

func (a Adjustment) overridePrice() decimal.Decimal {
	if a.OverridePrice == nil {
		return decimal.Zero
	}
	return *a.OverridePrice
}

func roundAmount(value decimal.Decimal) decimal.Decimal {
	return value.Round(AmountPlaces)
}
