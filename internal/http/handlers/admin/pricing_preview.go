package admin

import (
	"time"

	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var pricingPreviewErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.VenueErrorRules,
	handlershared.AssetErrorRules,
	handlershared.QuoteErrorRules,
)

// PricingPreviewRequest 场馆价格试算请求
type PricingPreviewRequest struct {
	AssetCode    string          `json:"asset_code"`
	BasePrice    decimal.Decimal `json:"base_price"`
	BookingStart *time.Time      `json:"booking_start"`
}

// PreviewVenuePrice 以给定基础价试算场馆当前生效规则
func (h *Handler) PreviewVenuePrice(c *gin.Context) {
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	var req PricingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	preview, err := h.PricingService.PreviewPrice(c.Request.Context(), service.PreviewInput{
		VenueID:      venueID,
		AssetCode:    req.AssetCode,
		BasePrice:    req.BasePrice,
		BookingStart: req.BookingStart,
	})
	if err != nil {
		respondWithMappedError(c, err, pricingPreviewErrorRules, response.CodeInternal, "error.query_failed")
		return
	}
	response.Success(c, preview)
}
