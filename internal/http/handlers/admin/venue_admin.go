package admin

import (
	"strings"

	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/repository"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
)

// VenueRequest 创建/更新场馆请求
type VenueRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
	Timezone string `json:"timezone"`
	Address  string `json:"address"`
	IsActive *bool  `json:"is_active"`
}

func (r VenueRequest) toInput() service.VenueInput {
	return service.VenueInput{
		Code:     r.Code,
		Name:     r.Name,
		Currency: r.Currency,
		Timezone: r.Timezone,
		Address:  r.Address,
		IsActive: r.IsActive,
	}
}

// ListVenues 场馆列表，非超级管理员仅返回已授权的场馆
func (h *Handler) ListVenues(c *gin.Context) {
	page, pageSize := handlershared.PageParams(c)
	filter := repository.VenueListFilter{
		Page:       page,
		PageSize:   pageSize,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		OnlyActive: c.Query("only_active") == "true",
	}

	if !currentIsSuper(c) {
		venueIDs, err := h.AuthzService.ListAdminVenues(currentAdminID(c))
		if err != nil {
			respondError(c, response.CodeInternal, "error.query_failed", err)
			return
		}
		if len(venueIDs) == 0 {
			response.SuccessWithPage(c, []models.Venue{}, response.BuildPagination(page, pageSize, 0))
			return
		}
		filter.IDs = venueIDs
	}

	venues, total, err := h.VenueService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.SuccessWithPage(c, venues, response.BuildPagination(page, pageSize, total))
}

// GetVenue 场馆详情
func (h *Handler) GetVenue(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	venue, err := h.VenueService.Get(venueID)
	if err != nil {
		respondWithMappedError(c, err, handlershared.VenueErrorRules, response.CodeInternal, "error.query_failed")
		return
	}
	response.Success(c, venue)
}

// CreateVenue 创建场馆
func (h *Handler) CreateVenue(c *gin.Context) {
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	venue, err := h.VenueService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, handlershared.VenueErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	logger.Infow("admin_venue_created",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venue.ID,
		"code", venue.Code,
	)
	response.Success(c, venue)
}

// UpdateVenue 更新场馆
func (h *Handler) UpdateVenue(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	var req VenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	venue, err := h.VenueService.Update(venueID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, handlershared.VenueErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	// 时区或币种变化会影响报价，清除规则快照
	h.PricingService.InvalidateVenue(c.Request.Context(), venue.ID)
	logger.Infow("admin_venue_updated",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venue.ID,
		"is_active", venue.IsActive,
	)
	response.Success(c, venue)
}
