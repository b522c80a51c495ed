package response

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// 定价业务码
const (
	CodePricingRuleInvalid = 10001
	CodeQuoteInvalid       = 10002
	CodeAssetUnavailable   = 10003
	CodeVenueInactive      = 10004
)
