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
	"github.com/shopspring/decimal"
)

var assetErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.VenueErrorRules,
	handlershared.AssetErrorRules,
)

// AssetRequest 创建/更新场地请求
type AssetRequest struct {
	Code       string          `json:"code" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	Kind       string          `json:"kind" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Capacity   int             `json:"capacity"`
	IsActive   *bool           `json:"is_active"`
	SortOrder  int             `json:"sort_order"`
}

func (r AssetRequest) toInput() service.AssetInput {
	return service.AssetInput{
		Code:       r.Code,
		Name:       r.Name,
		Kind:       r.Kind,
		HourlyRate: models.NewMoneyFromDecimal(r.HourlyRate),
		Capacity:   r.Capacity,
		IsActive:   r.IsActive,
		SortOrder:  r.SortOrder,
	}
}

// ListAssets 场馆场地列表
func (h *Handler) ListAssets(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.PageParams(c)
	assets, total, err := h.AssetService.List(repository.AssetListFilter{
		Page:       page,
		PageSize:   pageSize,
		VenueID:    venueID,
		Kind:       strings.TrimSpace(c.Query("kind")),
		Keyword:    strings.TrimSpace(c.Query("keyword")),
		OnlyActive: c.Query("only_active") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.SuccessWithPage(c, assets, response.BuildPagination(page, pageSize, total))
}

// GetAsset 场地详情
func (h *Handler) GetAsset(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	assetID, ok := handlershared.ParseUintParam(c, "id", "error.asset_id_invalid")
	if !ok {
		return
	}
	asset, err := h.AssetService.Get(venueID, assetID)
	if err != nil {
		respondWithMappedError(c, err, assetErrorRules, response.CodeInternal, "error.query_failed")
		return
	}
	response.Success(c, asset)
}

// CreateAsset 创建场地
func (h *Handler) CreateAsset(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	asset, err := h.AssetService.Create(c.Request.Context(), venueID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, assetErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	logger.Infow("admin_asset_created",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"asset_id", asset.ID,
		"code", asset.Code,
	)
	response.Success(c, asset)
}

// UpdateAsset 更新场地
func (h *Handler) UpdateAsset(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	assetID, ok := handlershared.ParseUintParam(c, "id", "error.asset_id_invalid")
	if !ok {
		return
	}
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	asset, err := h.AssetService.Update(c.Request.Context(), venueID, assetID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, assetErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	logger.Infow("admin_asset_updated",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"asset_id", asset.ID,
	)
	response.Success(c, asset)
}

// DeleteAsset 删除场地
func (h *Handler) DeleteAsset(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	assetID, ok := handlershared.ParseUintParam(c, "id", "error.asset_id_invalid")
	if !ok {
		return
	}
	if err := h.AssetService.Delete(c.Request.Context(), venueID, assetID); err != nil {
		respondWithMappedError(c, err, assetErrorRules, response.CodeInternal, "error.delete_failed")
		return
	}
	logger.Infow("admin_asset_deleted",
		"operator_admin_id", currentAdminID(c),
		"venue_id", venueID,
		"asset_id", assetID,
	)
	response.Success(c, nil)
}
