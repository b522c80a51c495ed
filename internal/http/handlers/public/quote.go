package public

import (
	"errors"
	"strings"
	"time"

	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
)

var quoteErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.VenueErrorRules,
	handlershared.AssetErrorRules,
	handlershared.QuoteErrorRules,
)

// GetAssetQuote 查询场地在指定时段的价格
// start_at / end_at 为 RFC3339 时间
func (h *Handler) GetAssetQuote(c *gin.Context) {
	venueID, ok := handlershared.ParseUintParam(c, "venue_id", "error.venue_id_invalid")
	if !ok {
		return
	}
	assetID, ok := handlershared.ParseUintParam(c, "asset_id", "error.asset_id_invalid")
	if !ok {
		return
	}

	startAt, err := parseQuoteTime(c.Query("start_at"))
	if err != nil {
		respondError(c, response.CodeQuoteInvalid, "error.quote_invalid", nil)
		return
	}
	endAt, err := parseQuoteTime(c.Query("end_at"))
	if err != nil {
		respondError(c, response.CodeQuoteInvalid, "error.quote_invalid", nil)
		return
	}

	result, err := h.PricingService.Quote(c.Request.Context(), service.QuoteInput{
		VenueID: venueID,
		AssetID: assetID,
		StartAt: startAt,
		EndAt:   endAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrQuoteTooLong) {
			handlershared.RespondQuoteTooLong(c, int(h.Config.Pricing.MaxQuoteDuration()/time.Hour))
			return
		}
		respondWithMappedError(c, err, quoteErrorRules, response.CodeInternal, "error.quote_failed")
		return
	}
	response.Success(c, result)
}

func parseQuoteTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("time required")
	}
	return time.Parse(time.RFC3339, raw)
}
