package admin

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/i18n"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/pricing"
	"github.com/venue-next/internal/repository"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var pricingRuleErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.VenueErrorRules,
	[]handlershared.MappedHandlerError{
		{Target: service.ErrPricingRuleNotFound, Code: response.CodeNotFound, Key: "error.pricing_rule_not_found"},
		{Target: service.ErrPricingRuleStatusInvalid, Code: response.CodeBadRequest, Key: "error.pricing_rule_status_invalid"},
		{Target: service.ErrPricingRuleInvalid, Code: response.CodePricingRuleInvalid, Key: "error.pricing_rule_invalid"},
		{Target: service.ErrQuoteInvalid, Code: response.CodeQuoteInvalid, Key: "error.quote_invalid"},
	},
)

// PricingRuleAdjustmentRequest 调价参数
type PricingRuleAdjustmentRequest struct {
	Type          string           `json:"type" binding:"required"`
	Value         decimal.Decimal  `json:"value"`
	OverridePrice *decimal.Decimal `json:"override_price"`
}

// PricingRuleRequest 创建/更新规则请求
type PricingRuleRequest struct {
	Name         string                       `json:"name" binding:"required"`
	Description  string                       `json:"description"`
	Type         string                       `json:"type" binding:"required"`
	Priority     int                          `json:"priority"`
	TargetAssets []string                     `json:"target_assets"`
	Conditions   pricing.Conditions           `json:"conditions"`
	Adjustment   PricingRuleAdjustmentRequest `json:"adjustment"`
	ValidFrom    *time.Time                   `json:"valid_from"`
	ValidUntil   *time.Time                   `json:"valid_until"`
	Status       string                       `json:"status"`
}

func (r PricingRuleRequest) toInput() service.PricingRuleInput {
	return service.PricingRuleInput{
		Name:            r.Name,
		Description:     r.Description,
		Type:            r.Type,
		Priority:        r.Priority,
		TargetAssets:    r.TargetAssets,
		Conditions:      r.Conditions,
		AdjustmentType:  r.Adjustment.Type,
		AdjustmentValue: r.Adjustment.Value,
		OverridePrice:   r.Adjustment.OverridePrice,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		Status:          r.Status,
	}
}

type pricingRuleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PricingRulePreviewRequest 规则草稿试算请求
type PricingRulePreviewRequest struct {
	Rule      PricingRuleRequest `json:"rule"`
	BasePrice decimal.Decimal    `json:"base_price"`
}

// ListPricingRules 规则列表
func (h *Handler) ListPricingRules(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageParams(c)
	rules, total, err := h.PricingRuleAdminService.List(repository.PricingRuleListFilter{
		Page:      page,
		PageSize:  pageSize,
		VenueID:   venueID,
		Status:    strings.TrimSpace(c.Query("status")),
		Type:      strings.TrimSpace(c.Query("type")),
		Keyword:   strings.TrimSpace(c.Query("keyword")),
		AssetCode: strings.TrimSpace(c.Query("asset_code")),
		OrderBy:   strings.TrimSpace(c.Query("order_by")),
	})
	if err != nil {
		respondPricingRuleError(c, err, "error.query_failed")
		return
	}
	response.SuccessWithPage(c, rules, response.BuildPagination(page, pageSize, total))
}

// GetPricingRule 规则详情
func (h *Handler) GetPricingRule(c *gin.Context) {
	venueID, ruleID, ok := parseRuleParams(c)
	if !ok {
		return
	}
	rule, err := h.PricingRuleAdminService.Get(venueID, ruleID)
	if err != nil {
		respondPricingRuleError(c, err, "error.query_failed")
		return
	}
	response.Success(c, rule)
}

// CreatePricingRule 创建规则
func (h *Handler) CreatePricingRule(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	var req PricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rule, err := h.PricingRuleAdminService.Create(c.Request.Context(), venueID, currentAdminID(c), req.toInput())
	if err != nil {
		respondPricingRuleError(c, err, "error.save_failed")
		return
	}
	logger.Infow("admin_pricing_rule_created",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"rule_id", rule.ID,
		"status", rule.Status,
	)
	response.Success(c, rule)
}

// UpdatePricingRule 更新规则
func (h *Handler) UpdatePricingRule(c *gin.Context) {
	venueID, ruleID, ok := parseRuleParams(c)
	if !ok {
		return
	}
	var req PricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rule, err := h.PricingRuleAdminService.Update(c.Request.Context(), venueID, ruleID, currentAdminID(c), req.toInput())
	if err != nil {
		respondPricingRuleError(c, err, "error.save_failed")
		return
	}
	logger.Infow("admin_pricing_rule_updated",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"rule_id", rule.ID,
		"status", rule.Status,
	)
	response.Success(c, rule)
}

// UpdatePricingRuleStatus 启用/停用规则
func (h *Handler) UpdatePricingRuleStatus(c *gin.Context) {
	venueID, ruleID, ok := parseRuleParams(c)
	if !ok {
		return
	}
	var req pricingRuleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rule, err := h.PricingRuleAdminService.UpdateStatus(c.Request.Context(), venueID, ruleID, currentAdminID(c), req.Status)
	if err != nil {
		respondPricingRuleError(c, err, "error.save_failed")
		return
	}
	logger.Infow("admin_pricing_rule_status_updated",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"rule_id", rule.ID,
		"requested", req.Status,
		"status", rule.Status,
	)
	response.Success(c, rule)
}

// DeletePricingRule 删除规则
func (h *Handler) DeletePricingRule(c *gin.Context) {
	venueID, ruleID, ok := parseRuleParams(c)
	if !ok {
		return
	}
	if err := h.PricingRuleAdminService.Delete(c.Request.Context(), venueID, ruleID); err != nil {
		respondPricingRuleError(c, err, "error.delete_failed")
		return
	}
	logger.Infow("admin_pricing_rule_deleted",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"rule_id", ruleID,
	)
	response.Success(c, nil)
}

// GetPricingRuleStats 规则统计
func (h *Handler) GetPricingRuleStats(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	stats, err := h.PricingRuleAdminService.Stats(venueID)
	if err != nil {
		respondPricingRuleError(c, err, "error.query_failed")
		return
	}
	response.Success(c, stats)
}

// PreviewPricingRule 试算规则草稿对基础价格的效果
func (h *Handler) PreviewPricingRule(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	var req PricingRulePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	preview, err := h.PricingRuleAdminService.PreviewDraft(venueID, req.Rule.toInput(), req.BasePrice)
	if err != nil {
		respondPricingRuleError(c, err, "error.query_failed")
		return
	}
	response.Success(c, preview)
}

func parseRuleParams(c *gin.Context) (uint, uint, bool) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return 0, 0, false
	}
	ruleID, ok := handlershared.ParseUintParam(c, "id", "error.pricing_rule_id_invalid")
	if !ok {
		return 0, 0, false
	}
	return venueID, ruleID, true
}

// respondPricingRuleError 字段校验错误附带 field/reason，其余按映射表输出
func respondPricingRuleError(c *gin.Context, err error, fallbackKey string) {
	var fieldErr *service.RuleValidationError
	if errors.As(err, &fieldErr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.pricing_rule_field_invalid", fieldErr.Field)
		response.FromAppError(c, response.WrapError(response.CodePricingRuleInvalid, msg, err).WithData(gin.H{
			"field":  fieldErr.Field,
			"reason": fieldErr.Reason,
		}))
		return
	}
	respondWithMappedError(c, err, pricingRuleErrorRules, response.CodeInternal, fallbackKey)
}
