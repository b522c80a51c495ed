package service

import (
	"errors"
	"fmt"
)

// 通用错误
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrPasswordUnchanged  = errors.New("password unchanged")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// 场馆与场地错误
var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrVenueInvalid    = errors.New("venue invalid")
	ErrVenueInactive   = errors.New("venue inactive")
	ErrVenueCodeExists = errors.New("venue code exists")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrAssetInvalid    = errors.New("asset invalid")
	ErrAssetInactive   = errors.New("asset inactive")
	ErrAssetCodeExists = errors.New("asset code exists")
)

// 价格规则与报价错误
var (
	ErrPricingRuleNotFound      = errors.New("pricing rule not found")
	ErrPricingRuleInvalid       = errors.New("pricing rule invalid")
	ErrPricingRuleStatusInvalid = errors.New("pricing rule status invalid")
	ErrQuoteInvalid             = errors.New("quote invalid")
	ErrQuoteRangeInvalid        = errors.New("quote range invalid")
	ErrQuoteTooLong             = errors.New("quote too long")
)

// 权限错误
var (
	ErrRoleInvalid  = errors.New("role invalid")
	ErrAuthzFailed  = errors.New("authz failed")
	ErrAdminInvalid = errors.New("admin invalid")
)

// RuleValidationError 规则字段校验失败
type RuleValidationError struct {
	Field  string
	Reason string
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("pricing rule invalid: %s %s", e.Field, e.Reason)
}

func (e *RuleValidationError) Unwrap() error {
	return ErrPricingRuleInvalid
}

func invalidRule(field, reason string) error {
	return &RuleValidationError{Field: field, Reason: reason}
}
