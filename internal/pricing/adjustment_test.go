package pricing

import "testing"

func TestComputeAdjustmentAmount(t *testing.T) {
	cases := []struct {
		name       string
		price      string
		adjustment Adjustment
		want       string
	}{
		{name: "percentage_increase", price: "120", adjustment: Adjustment{Type: AdjustmentPercentageIncrease, Value: dec("25")}, want: "30"},
		{name: "percentage_decrease", price: "80", adjustment: Adjustment{Type: AdjustmentPercentageDecrease, Value: dec("15")}, want: "-12"},
		{name: "fixed_increase", price: "80", adjustment: Adjustment{Type: AdjustmentFixedIncrease, Value: dec("7.5")}, want: "7.5"},
		{name: "fixed_decrease", price: "80", adjustment: Adjustment{Type: AdjustmentFixedDecrease, Value: dec("7.5")}, want: "-7.5"},
		{name: "override", price: "80", adjustment: Adjustment{Type: AdjustmentOverride, Value: dec("1"), OverridePrice: decPtr("99")}, want: "19"},
		{name: "override_missing", price: "80", adjustment: Adjustment{Type: AdjustmentOverride}, want: "-80"},
		{name: "unknown", price: "80", adjustment: Adjustment{Type: AdjustmentType("double"), Value: dec("2")}, want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAdjustmentAmount(dec(tc.price), tc.adjustment)
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("amount want %s got %s", tc.want, got)
			}
		})
	}
}

func TestEnumValidation(t *testing.T) {
	for _, ruleType := range RuleTypes() {
		if !ruleType.Valid() {
			t.Fatalf("rule type %s should be valid", ruleType)
		}
	}
	for _, status := range RuleStatuses() {
		if !status.Valid() {
			t.Fatalf("status %s should be valid", status)
		}
	}
	if RuleType("flash_sale").Valid() || RuleStatus("paused").Valid() || AdjustmentType("double").Valid() {
		t.Fatalf("unknown enums should be invalid")
	}
}
