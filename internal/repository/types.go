package repository

import "time"

// VenueListFilter 查询场馆列表的过滤条件
type VenueListFilter struct {
	Page       int
	PageSize   int
	Keyword    string
	IDs        []uint
	OnlyActive bool
}

// AssetListFilter 查询场地列表的过滤条件
type AssetListFilter struct {
	Page       int
	PageSize   int
	VenueID    uint
	Kind       string
	Keyword    string
	OnlyActive bool
}

// PricingRuleListFilter 查询价格规则列表的过滤条件
type PricingRuleListFilter struct {
	Page      int
	PageSize  int
	VenueID   uint
	Status    string
	Type      string
	Keyword   string
	AssetCode string
	OrderBy   string
}

// AuthzAuditLogListFilter 查询权限审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	VenueID         uint
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
