package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/venue-next/internal/constants"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/metrics"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/queue"
	"github.com/venue-next/internal/repository"

	"github.com/shopspring/decimal"
)

// 规则写操作名称（用于指标）
const (
	ruleWriteCreate = "create"
	ruleWriteUpdate = "update"
	ruleWriteDelete = "delete"
	ruleWriteStatus = "status"
)

// PricingRuleAdminService 价格规则管理服务
type PricingRuleAdminService struct {
	venueRepo   repository.VenueRepository
	assetRepo   repository.AssetRepository
	ruleRepo    repository.PricingRuleRepository
	pricing     *PricingService
	queueClient *queue.Client
	now         func() time.Time
}

// NewPricingRuleAdminService 创建价格规则管理服务
func NewPricingRuleAdminService(
	venueRepo repository.VenueRepository,
	assetRepo repository.AssetRepository,
	ruleRepo repository.PricingRuleRepository,
	pricingService *PricingService,
	queueClient *queue.Client,
) *PricingRuleAdminService {
	return &PricingRuleAdminService{
		venueRepo:   venueRepo,
		assetRepo:   assetRepo,
		ruleRepo:    ruleRepo,
		pricing:     pricingService,
		queueClient: queueClient,
		now:         time.Now,
	}
}

// PricingRuleInput 创建/更新规则输入
type PricingRuleInput struct {
	Name            string
	Description     string
	Type            string
	Priority        int
	TargetAssets    []string
	Conditions      pricing.Conditions
	AdjustmentType  string
	AdjustmentValue decimal.Decimal
	OverridePrice   *decimal.Decimal
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	Status          string
}

// PricingRuleStats 规则统计
type PricingRuleStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}

// Get 获取规则
func (s *PricingRuleAdminService) Get(venueID, id uint) (*models.PricingRule, error) {
	if venueID == 0 || id == 0 {
		return nil, ErrPricingRuleNotFound
	}
	rule, err := s.ruleRepo.GetByID(venueID, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ErrPricingRuleNotFound
	}
	return rule, nil
}

// List 规则列表
func (s *PricingRuleAdminService) List(filter repository.PricingRuleListFilter) ([]models.PricingRule, int64, error) {
	if status := strings.TrimSpace(filter.Status); status != "" && !pricing.RuleStatus(status).Valid() {
		return nil, 0, ErrPricingRuleStatusInvalid
	}
	if ruleType := strings.TrimSpace(filter.Type); ruleType != "" && !pricing.RuleType(ruleType).Valid() {
		return nil, 0, invalidRule("type", "unknown rule type")
	}
	filter.AssetCode = strings.ToLower(strings.TrimSpace(filter.AssetCode))
	return s.ruleRepo.List(filter)
}

// Create 创建规则
func (s *PricingRuleAdminService) Create(ctx context.Context, venueID, operatorID uint, input PricingRuleInput) (*models.PricingRule, error) {
	if err := s.ensureVenue(venueID); err != nil {
		return nil, err
	}
	rule := &models.PricingRule{VenueID: venueID, CreatedBy: operatorID}
	if err := s.applyInput(rule, input); err != nil {
		return nil, err
	}
	rule.UpdatedBy = operatorID
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, rule, ruleWriteCreate)
	return rule, nil
}

// Update 更新规则（整体替换可编辑字段）
func (s *PricingRuleAdminService) Update(ctx context.Context, venueID, id, operatorID uint, input PricingRuleInput) (*models.PricingRule, error) {
	rule, err := s.Get(venueID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(rule, input); err != nil {
		return nil, err
	}
	rule.UpdatedBy = operatorID
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, rule, ruleWriteUpdate)
	return rule, nil
}

// UpdateStatus 修改规则状态
// 请求 active 但生效时间未到时落为 scheduled
func (s *PricingRuleAdminService) UpdateStatus(ctx context.Context, venueID, id, operatorID uint, status string) (*models.PricingRule, error) {
	requested := pricing.RuleStatus(strings.ToLower(strings.TrimSpace(status)))
	if !requested.Valid() {
		return nil, ErrPricingRuleStatusInvalid
	}
	rule, err := s.Get(venueID, id)
	if err != nil {
		return nil, err
	}
	resolved := resolveRuleStatus(requested, rule.ValidFrom, rule.ValidUntil, s.now())
	affected, err := s.ruleRepo.UpdateStatus(venueID, id, string(resolved), operatorID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPricingRuleNotFound
	}
	rule.Status = string(resolved)
	rule.UpdatedBy = operatorID
	s.afterWrite(ctx, rule, ruleWriteStatus)
	return rule, nil
}

// Delete 删除规则
func (s *PricingRuleAdminService) Delete(ctx context.Context, venueID, id uint) error {
	rule, err := s.Get(venueID, id)
	if err != nil {
		return err
	}
	if err := s.ruleRepo.Delete(venueID, id); err != nil {
		return err
	}
	metrics.RecordRuleWrite(ruleWriteDelete)
	s.invalidate(ctx, rule.VenueID)
	logger.Ctx(ctx).Infow("pricing_rule_deleted", "venue_id", venueID, "rule_id", id)
	return nil
}

// Stats 按状态、分类统计场馆规则
func (s *PricingRuleAdminService) Stats(venueID uint) (*PricingRuleStats, error) {
	if err := s.ensureVenue(venueID); err != nil {
		return nil, err
	}
	byStatus, err := s.ruleRepo.CountByStatus(venueID)
	if err != nil {
		return nil, err
	}
	byType, err := s.ruleRepo.CountByType(venueID)
	if err != nil {
		return nil, err
	}

	stats := &PricingRuleStats{
		ByStatus: make(map[string]int64, len(pricing.RuleStatuses())),
		ByType:   make(map[string]int64, len(pricing.RuleTypes())),
	}
	for _, status := range pricing.RuleStatuses() {
		stats.ByStatus[string(status)] = byStatus[string(status)]
		stats.Total += byStatus[string(status)]
	}
	for _, ruleType := range pricing.RuleTypes() {
		stats.ByType[string(ruleType)] = byType[string(ruleType)]
	}
	return stats, nil
}

// PreviewDraft 试算单条规则（可为未保存的草稿）对基础价格的效果
func (s *PricingRuleAdminService) PreviewDraft(venueID uint, input PricingRuleInput, basePrice decimal.Decimal) (*pricing.PricePreview, error) {
	if basePrice.IsNegative() {
		return nil, ErrQuoteInvalid
	}
	if venueID == 0 {
		return nil, ErrVenueNotFound
	}
	venue, err := s.venueRepo.GetByID(venueID)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, ErrVenueNotFound
	}
	draft := &models.PricingRule{VenueID: venueID}
	if err := s.applyInput(draft, input); err != nil {
		return nil, err
	}
	preview := pricing.PreviewRule(basePrice, draft.ToPricingRule(), venue.Currency)
	return &preview, nil
}

func (s *PricingRuleAdminService) ensureVenue(venueID uint) error {
	if venueID == 0 {
		return ErrVenueNotFound
	}
	venue, err := s.venueRepo.GetByID(venueID)
	if err != nil {
		return err
	}
	if venue == nil {
		return ErrVenueNotFound
	}
	return nil
}

// applyInput 校验输入并写入模型
func (s *PricingRuleAdminService) applyInput(rule *models.PricingRule, input PricingRuleInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return invalidRule("name", "is required")
	}
	if len([]rune(name)) > constants.PricingRuleNameMaxLen {
		return invalidRule("name", fmt.Sprintf("must be at most %d characters", constants.PricingRuleNameMaxLen))
	}
	description := strings.TrimSpace(input.Description)
	if len([]rune(description)) > constants.PricingRuleDescMaxLen {
		return invalidRule("description", fmt.Sprintf("must be at most %d characters", constants.PricingRuleDescMaxLen))
	}

	ruleType := pricing.RuleType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !ruleType.Valid() {
		return invalidRule("type", "unknown rule type")
	}
	if input.Priority < constants.PricingRulePriorityMin || input.Priority > constants.PricingRulePriorityMax {
		return invalidRule("priority", fmt.Sprintf("must be between %d and %d", constants.PricingRulePriorityMin, constants.PricingRulePriorityMax))
	}

	requested := pricing.RuleStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if requested == "" {
		requested = pricing.RuleStatusActive
	}
	if !requested.Valid() {
		return ErrPricingRuleStatusInvalid
	}

	adjustmentType := pricing.AdjustmentType(strings.ToLower(strings.TrimSpace(input.AdjustmentType)))
	if err := validateAdjustment(adjustmentType, input.AdjustmentValue, input.OverridePrice); err != nil {
		return err
	}
	if err := validateConditions(input.Conditions); err != nil {
		return err
	}
	if input.ValidFrom != nil && input.ValidUntil != nil && input.ValidUntil.Before(*input.ValidFrom) {
		return invalidRule("valid_until", "must not be before valid_from")
	}

	targets, err := s.normalizeTargets(rule.VenueID, input.TargetAssets)
	if err != nil {
		return err
	}

	rule.Name = name
	rule.Description = description
	rule.Type = string(ruleType)
	rule.Priority = input.Priority
	rule.TargetAssets = models.StringArray(targets)
	rule.Conditions = input.Conditions
	rule.AdjustmentType = string(adjustmentType)
	rule.AdjustmentValue = models.NewMoneyFromDecimal(input.AdjustmentValue)
	rule.OverridePrice = nil
	if adjustmentType == pricing.AdjustmentOverride {
		rule.OverridePrice = models.NewMoneyPtr(input.OverridePrice)
	}
	rule.ValidFrom = utcPtr(input.ValidFrom)
	rule.ValidUntil = utcPtr(input.ValidUntil)
	rule.Status = string(resolveRuleStatus(requested, rule.ValidFrom, rule.ValidUntil, s.now()))
	return nil
}

// normalizeTargets 去重并校验场地编码属于该场馆
func (s *PricingRuleAdminService) normalizeTargets(venueID uint, raw []string) ([]string, error) {
	targets := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		code := strings.ToLower(strings.TrimSpace(item))
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		targets = append(targets, code)
	}
	if len(targets) == 0 {
		return targets, nil
	}

	codes, err := s.assetRepo.ListCodes(venueID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		known[code] = struct{}{}
	}
	for _, code := range targets {
		if _, ok := known[code]; !ok {
			return nil, invalidRule("target_assets", fmt.Sprintf("unknown asset code %q", code))
		}
	}
	return targets, nil
}

func (s *PricingRuleAdminService) afterWrite(ctx context.Context, rule *models.PricingRule, operation string) {
	metrics.RecordRuleWrite(operation)
	s.invalidate(ctx, rule.VenueID)
	s.scheduleTransitions(ctx, rule)
	logger.Ctx(ctx).Infow("pricing_rule_saved",
		"operation", operation,
		"venue_id", rule.VenueID,
		"rule_id", rule.ID,
		"status", rule.Status,
	)
}

func (s *PricingRuleAdminService) invalidate(ctx context.Context, venueID uint) {
	if s.pricing != nil {
		s.pricing.InvalidateVenue(ctx, venueID)
	}
	// 队列可用时异步预热，否则由下一次报价回源
	if !s.queueClient.Enabled() {
		return
	}
	payload := queue.PricingCacheRefreshPayload{VenueIDs: []uint{venueID}}
	if err := s.queueClient.EnqueuePricingCacheRefresh(payload); err != nil {
		logger.Ctx(ctx).Warnw("pricing_cache_refresh_enqueue_failed", "venue_id", venueID, "error", err)
	}
}

// scheduleTransitions 在生效/失效边界投递状态同步任务
// valid_until 为闭区间，失效任务在边界后一秒执行
func (s *PricingRuleAdminService) scheduleTransitions(ctx context.Context, rule *models.PricingRule) {
	if !s.queueClient.Enabled() {
		return
	}
	now := s.now()
	status := pricing.RuleStatus(rule.Status)
	if status == pricing.RuleStatusScheduled && rule.ValidFrom != nil && rule.ValidFrom.After(now) {
		payload := queue.RuleStatusSyncPayload{VenueID: rule.VenueID, RuleID: rule.ID, Boundary: queue.BoundaryValidFrom}
		if err := s.queueClient.EnqueueRuleStatusSync(payload, *rule.ValidFrom); err != nil {
			logger.Ctx(ctx).Warnw("pricing_rule_status_task_enqueue_failed", "rule_id", rule.ID, "boundary", payload.Boundary, "error", err)
		}
	}
	if (status == pricing.RuleStatusActive || status == pricing.RuleStatusScheduled) && rule.ValidUntil != nil && rule.ValidUntil.After(now) {
		payload := queue.RuleStatusSyncPayload{VenueID: rule.VenueID, RuleID: rule.ID, Boundary: queue.BoundaryValidUntil}
		if err := s.queueClient.EnqueueRuleStatusSync(payload, rule.ValidUntil.Add(time.Second)); err != nil {
			logger.Ctx(ctx).Warnw("pricing_rule_status_task_enqueue_failed", "rule_id", rule.ID, "boundary", payload.Boundary, "error", err)
		}
	}
}

// resolveRuleStatus 结合有效期修正请求的状态
// active/scheduled 会按当前时间落到 scheduled、active 或 expired；inactive/expired 原样保留
func resolveRuleStatus(requested pricing.RuleStatus, validFrom, validUntil *time.Time, now time.Time) pricing.RuleStatus {
	if requested != pricing.RuleStatusActive && requested != pricing.RuleStatusScheduled {
		return requested
	}
	if validUntil != nil && validUntil.Before(now) {
		return pricing.RuleStatusExpired
	}
	if validFrom != nil && validFrom.After(now) {
		return pricing.RuleStatusScheduled
	}
	return pricing.RuleStatusActive
}

func validateAdjustment(adjustmentType pricing.AdjustmentType, value decimal.Decimal, overridePrice *decimal.Decimal) error {
	if !adjustmentType.Valid() {
		return invalidRule("adjustment.type", "unknown adjustment type")
	}
	if value.IsNegative() {
		return invalidRule("adjustment.value", "must not be negative")
	}
	if adjustmentType == pricing.AdjustmentPercentageDecrease && value.GreaterThan(decimal.NewFromInt(100)) {
		return invalidRule("adjustment.value", "percentage decrease must not exceed 100")
	}
	if adjustmentType == pricing.AdjustmentOverride {
		if overridePrice == nil {
			return invalidRule("adjustment.override_price", "is required for override")
		}
		if overridePrice.IsNegative() {
			return invalidRule("adjustment.override_price", "must not be negative")
		}
	}
	return nil
}

func validateConditions(conditions pricing.Conditions) error {
	for i, slot := range conditions.TimeSlots {
		start, okStart := pricing.ParseClock(slot.StartTime)
		end, okEnd := pricing.ParseClock(slot.EndTime)
		if !okStart || !okEnd {
			return invalidRule(fmt.Sprintf("conditions.time_slots[%d]", i), "must use HH:mm")
		}
		if start >= 24*60 {
			return invalidRule(fmt.Sprintf("conditions.time_slots[%d]", i), "start must be before 24:00")
		}
		if start == end || !slot.Valid() {
			return invalidRule(fmt.Sprintf("conditions.time_slots[%d]", i), "must not be empty")
		}
	}
	for i, day := range conditions.DaysOfWeek {
		if day < 0 || day > 6 {
			return invalidRule(fmt.Sprintf("conditions.days_of_week[%d]", i), "must be between 0 and 6")
		}
	}
	if rng := conditions.DateRange; rng != nil {
		var start, end time.Time
		var okStart, okEnd bool
		if strings.TrimSpace(rng.Start) != "" {
			if start, okStart = pricing.ParseDate(rng.Start, time.UTC); !okStart {
				return invalidRule("conditions.date_range.start", "must use YYYY-MM-DD")
			}
		}
		if strings.TrimSpace(rng.End) != "" {
			if end, okEnd = pricing.ParseDate(rng.End, time.UTC); !okEnd {
				return invalidRule("conditions.date_range.end", "must use YYYY-MM-DD")
			}
		}
		if okStart && okEnd && end.Before(start) {
			return invalidRule("conditions.date_range", "end must not be before start")
		}
	}
	if window := conditions.BookingWindow; window != nil {
		if window.MinHoursBefore != nil && *window.MinHoursBefore < 0 {
			return invalidRule("conditions.booking_window.min_hours_before", "must not be negative")
		}
		if window.MaxHoursBefore != nil && *window.MaxHoursBefore < 0 {
			return invalidRule("conditions.booking_window.max_hours_before", "must not be negative")
		}
		if window.MinHoursBefore != nil && window.MaxHoursBefore != nil && *window.MaxHoursBefore < *window.MinHoursBefore {
			return invalidRule("conditions.booking_window", "max_hours_before must not be less than min_hours_before")
		}
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
