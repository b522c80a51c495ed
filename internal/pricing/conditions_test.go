package pricing

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestConditionsEmptyMatchesEverything(t *testing.T) {
	if !(Conditions{}).Matches(Context{EvaluationInstant: saturdayEvening}) {
		t.Fatalf("empty conditions should match")
	}
}

func TestConditionsTimeSlots(t *testing.T) {
	cases := []struct {
		name  string
		slots []TimeSlot
		at    time.Time
		want  bool
	}{
		{name: "inside", slots: []TimeSlot{{"18:00", "22:00"}}, at: clock(19, 30), want: true},
		{name: "start_inclusive", slots: []TimeSlot{{"18:00", "22:00"}}, at: clock(18, 0), want: true},
		{name: "end_exclusive", slots: []TimeSlot{{"18:00", "22:00"}}, at: clock(22, 0), want: false},
		{name: "any_slot", slots: []TimeSlot{{"07:00", "09:00"}, {"18:00", "22:00"}}, at: clock(8, 15), want: true},
		{name: "wrap_before_midnight", slots: []TimeSlot{{"22:00", "02:00"}}, at: clock(23, 10), want: true},
		{name: "wrap_after_midnight", slots: []TimeSlot{{"22:00", "02:00"}}, at: clock(1, 59), want: true},
		{name: "wrap_outside", slots: []TimeSlot{{"22:00", "02:00"}}, at: clock(2, 0), want: false},
		{name: "end_24", slots: []TimeSlot{{"20:00", "24:00"}}, at: clock(23, 59), want: true},
		{name: "full_day", slots: []TimeSlot{{"00:00", "24:00"}}, at: clock(4, 0), want: true},
		{name: "zero_length_ignored", slots: []TimeSlot{{"10:00", "10:00"}}, at: clock(4, 0), want: true},
		{name: "all_invalid_unconstrained", slots: []TimeSlot{{"bad", "22:00"}, {"25:00", "26:00"}}, at: clock(4, 0), want: true},
		{name: "invalid_skipped", slots: []TimeSlot{{"bad", "x"}, {"18:00", "22:00"}}, at: clock(4, 0), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Conditions{TimeSlots: tc.slots}.Matches(Context{EvaluationInstant: tc.at})
			if got != tc.want {
				t.Fatalf("match want %v got %v", tc.want, got)
			}
		})
	}
}

func TestConditionsDaysOfWeek(t *testing.T) {
	ctx := Context{EvaluationInstant: saturdayEvening}
	if !(Conditions{DaysOfWeek: []int{5, 6}}).Matches(ctx) {
		t.Fatalf("saturday should match [5,6]")
	}
	if (Conditions{DaysOfWeek: []int{1, 2, 3}}).Matches(ctx) {
		t.Fatalf("saturday should not match weekdays")
	}
	if (Conditions{DaysOfWeek: []int{9, 1}}).Matches(ctx) {
		t.Fatalf("out of range day should be ignored, monday should not match")
	}
	if !(Conditions{DaysOfWeek: []int{7, -1}}).Matches(ctx) {
		t.Fatalf("all out of range days should be unconstrained")
	}
}

func TestConditionsDateRangeInclusive(t *testing.T) {
	cases := []struct {
		name string
		rng  DateRange
		want bool
	}{
		{name: "single_day", rng: DateRange{Start: "2026-10-17", End: "2026-10-17"}, want: true},
		{name: "before", rng: DateRange{Start: "2026-10-18", End: "2026-10-20"}, want: false},
		{name: "after", rng: DateRange{Start: "2026-10-01", End: "2026-10-16"}, want: false},
		{name: "open_end", rng: DateRange{Start: "2026-10-01"}, want: true},
		{name: "bad_bound_absent", rng: DateRange{Start: "17/10/2026", End: "2026-10-17"}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := tc.rng
			got := Conditions{DateRange: &rng}.Matches(Context{EvaluationInstant: saturdayEvening})
			if got != tc.want {
				t.Fatalf("match want %v got %v", tc.want, got)
			}
		})
	}
}

func TestConditionsUseVenueLocation(t *testing.T) {
	shanghai := time.FixedZone("UTC+8", 8*3600)
	// UTC 周六 19:30 = 上海周日 03:30
	ctx := Context{EvaluationInstant: saturdayEvening, Location: shanghai}

	if !(Conditions{DaysOfWeek: []int{0}}).Matches(ctx) {
		t.Fatalf("should evaluate day of week in venue location")
	}
	if !(Conditions{TimeSlots: []TimeSlot{{"03:00", "04:00"}}}).Matches(ctx) {
		t.Fatalf("should evaluate time slot in venue location")
	}
	if !(Conditions{DateRange: &DateRange{Start: "2026-10-18", End: "2026-10-18"}}).Matches(ctx) {
		t.Fatalf("should evaluate date range in venue location")
	}
}

func TestConditionsUseBookingStart(t *testing.T) {
	bookingAt := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC) // 周一
	ctx := Context{EvaluationInstant: saturdayEvening, BookingStartInstant: &bookingAt}

	if !(Conditions{DaysOfWeek: []int{1}, TimeSlots: []TimeSlot{{"08:00", "10:00"}}}).Matches(ctx) {
		t.Fatalf("conditions should use booking start")
	}
	if (Conditions{DaysOfWeek: []int{6}}).Matches(ctx) {
		t.Fatalf("evaluation day should not be used when booking start is present")
	}
}

func TestConditionsBookingWindow(t *testing.T) {
	now := saturdayEvening
	inHours := func(h float64) *time.Time {
		at := now.Add(time.Duration(h * float64(time.Hour)))
		return &at
	}
	cases := []struct {
		name   string
		window BookingWindow
		start  *time.Time
		want   bool
	}{
		{name: "last_minute_inside", window: BookingWindow{MinHoursBefore: floatPtr(0), MaxHoursBefore: floatPtr(2)}, start: inHours(1.5), want: true},
		{name: "last_minute_max_inclusive", window: BookingWindow{MinHoursBefore: floatPtr(0), MaxHoursBefore: floatPtr(2)}, start: inHours(2), want: true},
		{name: "last_minute_too_early", window: BookingWindow{MinHoursBefore: floatPtr(0), MaxHoursBefore: floatPtr(2)}, start: inHours(3), want: false},
		{name: "min_zero_enforced", window: BookingWindow{MinHoursBefore: floatPtr(0)}, start: inHours(-1), want: false},
		{name: "early_bird", window: BookingWindow{MinHoursBefore: floatPtr(72)}, start: inHours(96), want: true},
		{name: "early_bird_too_late", window: BookingWindow{MinHoursBefore: floatPtr(72)}, start: inHours(24), want: false},
		{name: "no_booking_start", window: BookingWindow{MinHoursBefore: floatPtr(0), MaxHoursBefore: floatPtr(2)}, start: nil, want: true},
		{name: "unbounded", window: BookingWindow{}, start: inHours(500), want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			window := tc.window
			ctx := Context{EvaluationInstant: now, BookingStartInstant: tc.start}
			got := Conditions{BookingWindow: &window}.Matches(ctx)
			if got != tc.want {
				t.Fatalf("match want %v got %v", tc.want, got)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	valid := map[string]int{"00:00": 0, "7:05": 425, "23:59": 1439, "24:00": 1440, " 18:30 ": 1110}
	for raw, want := range valid {
		got, ok := ParseClock(raw)
		if !ok || got != want {
			t.Fatalf("parse %q want %d got %d ok=%v", raw, want, got, ok)
		}
	}
	for _, raw := range []string{"", "24:01", "12:60", "1230", "12:3", "-1:00", "aa:bb", "123:00"} {
		if _, ok := ParseClock(raw); ok {
			t.Fatalf("parse %q should fail", raw)
		}
	}
}

func TestTimeSlotValid(t *testing.T) {
	valid := []TimeSlot{{"18:00", "22:00"}, {"22:00", "02:00"}, {"00:00", "24:00"}, {"20:00", "24:00"}}
	for _, slot := range valid {
		if !slot.Valid() {
			t.Fatalf("slot %s-%s should be valid", slot.StartTime, slot.EndTime)
		}
	}
	invalid := []TimeSlot{{"24:00", "02:00"}, {"24:00", "24:00"}, {"10:00", "10:00"}, {"10", "12:00"}}
	for _, slot := range invalid {
		if slot.Valid() {
			t.Fatalf("slot %s-%s should be invalid", slot.StartTime, slot.EndTime)
		}
	}
}

func clock(hour, minute int) time.Time {
	return time.Date(2026, 10, 17, hour, minute, 0, 0, time.UTC)
}
