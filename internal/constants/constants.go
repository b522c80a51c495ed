package constants

// 场地类型常量
const (
	AssetKindCourt = "court"
	AssetKindRoom  = "room"
	AssetKindField = "field"
	AssetKindLane  = "lane"
	AssetKindOther = "other"
)

// AssetKinds 支持的场地类型
var AssetKinds = []string{AssetKindCourt, AssetKindRoom, AssetKindField, AssetKindLane, AssetKindOther}

// 价格规则排序与分页常量
const (
	PricingRulePriorityMin = 0
	PricingRulePriorityMax = 100
	PricingRuleNameMaxLen  = 120
	PricingRuleDescMaxLen  = 1000
)

// 报价常量
const (
	QuoteMaxHoursDefault = 24
)

// 权限审计动作常量
const (
	AuthzAuditActionAssignRoles = "assign_roles"
	AuthzAuditActionRevokeRoles = "revoke_roles"
)

// 登录失败原因常量
const (
	LoginFailReasonBadRequest         = "bad_request"
	LoginFailReasonInvalidCredentials = "invalid_credentials"
	LoginFailReasonRateLimited        = "rate_limited"
	LoginFailReasonInternalError      = "internal_error"
)

// 队列常量
const (
	QueueDefault            = "default"
	QueuePricing            = "pricing"
	TaskPricingRuleStatus   = "pricing:rule_status_sync"
	TaskPricingCacheRefresh = "pricing:cache_refresh"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "vn"
)

// 列表分页
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// 币种与时区常量
const (
	CurrencyDefault = "CNY"
	TimezoneDefault = "UTC"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleZhTW = "zh-TW"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleZhTW, LocaleEnUS}
