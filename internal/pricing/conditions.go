package pricing

import (
	"strconv"
	"strings"
	"time"
)

const (
	minutesPerDay = 24 * 60
	dateLayout    = "2006-01-02"
)

// Matches 判断条件是否全部满足
// 非法数据按缺省处理，不会报错
func (c Conditions) Matches(ctx Context) bool {
	loc := ctx.location()
	bookingAt := ctx.bookingStart().In(loc)

	if !matchTimeSlots(c.TimeSlots, bookingAt) {
		return false
	}
	if !matchDaysOfWeek(c.DaysOfWeek, bookingAt) {
		return false
	}
	if !matchDateRange(c.DateRange, bookingAt, loc) {
		return false
	}
	if !matchBookingWindow(c.BookingWindow, ctx.EvaluationInstant, ctx.bookingStart()) {
		return false
	}
	return true
}

func (ctx Context) location() *time.Location {
	if ctx.Location == nil {
		return time.UTC
	}
	return ctx.Location
}

func (ctx Context) bookingStart() time.Time {
	if ctx.BookingStartInstant != nil && !ctx.BookingStartInstant.IsZero() {
		return *ctx.BookingStartInstant
	}
	return ctx.EvaluationInstant
}

func matchTimeSlots(slots []TimeSlot, at time.Time) bool {
	if len(slots) == 0 {
		return true
	}
	minute := at.Hour()*60 + at.Minute()
	valid := 0
	for _, slot := range slots {
		start, end, ok := slot.bounds()
		if !ok {
			continue
		}
		valid++
		if start < end {
			if minute >= start && minute < end {
				return true
			}
			continue
		}
		// 跨午夜，例如 22:00-02:00
		if minute >= start || minute < end {
			return true
		}
	}
	return valid == 0
}

// Valid 时段可被解析且非零长度，开始时间须早于 24:00
func (s TimeSlot) Valid() bool {
	_, _, ok := s.bounds()
	return ok
}

// bounds 返回时段的起止分钟数，非法或零长度时段返回 false
func (s TimeSlot) bounds() (int, int, bool) {
	start, ok := ParseClock(s.StartTime)
	if !ok || start >= minutesPerDay {
		return 0, 0, false
	}
	end, ok := ParseClock(s.EndTime)
	if !ok {
		return 0, 0, false
	}
	if end == minutesPerDay {
		end = 0
		if start == 0 {
			return 0, minutesPerDay, true
		}
	}
	if start == end {
		return 0, 0, false
	}
	return start, end, true
}

// ParseClock 解析 HH:mm，返回当日分钟数（允许 24:00）
func ParseClock(raw string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	if hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}

func matchDaysOfWeek(days []int, at time.Time) bool {
	if len(days) == 0 {
		return true
	}
	weekday := int(at.Weekday())
	valid := 0
	for _, day := range days {
		if day < 0 || day > 6 {
			continue
		}
		valid++
		if day == weekday {
			return true
		}
	}
	return valid == 0
}

func matchDateRange(dateRange *DateRange, at time.Time, loc *time.Location) bool {
	if dateRange == nil {
		return true
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, loc)
	if start, ok := ParseDate(dateRange.Start, loc); ok && day.Before(start) {
		return false
	}
	if end, ok := ParseDate(dateRange.End, loc); ok && day.After(end) {
		return false
	}
	return true
}

// ParseDate 解析 YYYY-MM-DD 为指定时区的零点
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	parsed, err := time.ParseInLocation(dateLayout, trimmed, loc)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func matchBookingWindow(window *BookingWindow, now, bookingAt time.Time) bool {
	if window == nil {
		return true
	}
	hours := bookingAt.Sub(now).Hours()
	if window.MinHoursBefore != nil && hours < *window.MinHoursBefore {
		return false
	}
	if window.MaxHoursBefore != nil && hours > *window.MaxHoursBefore {
		return false
	}
	return true
}
