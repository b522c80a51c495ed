package shared

import (
	"errors"

	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/i18n"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按映射表输出错误，未命中时使用兜底码并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedHandlerErrors 合并多组映射。
func ConcatMappedHandlerErrors(groups ...[]MappedHandlerError) []MappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// VenueErrorRules 场馆相关错误映射。
var VenueErrorRules = []MappedHandlerError{
	{Target: service.ErrVenueNotFound, Code: response.CodeNotFound, Key: "error.venue_not_found"},
	{Target: service.ErrVenueInactive, Code: response.CodeVenueInactive, Key: "error.venue_inactive"},
	{Target: service.ErrVenueInvalid, Code: response.CodeBadRequest, Key: "error.venue_invalid"},
	{Target: service.ErrVenueCodeExists, Code: response.CodeConflict, Key: "error.venue_code_exists"},
}

// AssetErrorRules 场地相关错误映射。
var AssetErrorRules = []MappedHandlerError{
	{Target: service.ErrAssetNotFound, Code: response.CodeNotFound, Key: "error.asset_not_found"},
	{Target: service.ErrAssetInactive, Code: response.CodeAssetUnavailable, Key: "error.asset_inactive"},
	{Target: service.ErrAssetInvalid, Code: response.CodeBadRequest, Key: "error.asset_invalid"},
	{Target: service.ErrAssetCodeExists, Code: response.CodeConflict, Key: "error.asset_code_exists"},
}

// QuoteErrorRules 报价参数错误映射（quote_too_long 需带参数，单独处理）。
var QuoteErrorRules = []MappedHandlerError{
	{Target: service.ErrQuoteInvalid, Code: response.CodeQuoteInvalid, Key: "error.quote_invalid"},
	{Target: service.ErrQuoteRangeInvalid, Code: response.CodeQuoteInvalid, Key: "error.quote_range_invalid"},
}

// RespondQuoteTooLong 输出超出最大预订时长的错误。
func RespondQuoteTooLong(c *gin.Context, maxHours int) {
	msg := i18n.Sprintf(i18n.ResolveLocale(c), "error.quote_too_long", maxHours)
	RespondErrorWithMsg(c, response.CodeQuoteInvalid, msg, nil)
}
