package admin

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/venue-next/internal/authz"
	"github.com/venue-next/internal/constants"
	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/logger"
	"github.com/venue-next/internal/models"
	"github.com/venue-next/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员在指定场馆的权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	isSuper := currentIsSuper(c)
	result := gin.H{
		"admin_id": adminID,
		"is_super": isSuper,
	}

	venueRaw := strings.TrimSpace(c.Query("venue_id"))
	if venueRaw == "" {
		venueIDs, err := h.AuthzService.ListAdminVenues(adminID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.query_failed", err)
			return
		}
		result["venue_ids"] = venueIDs
		response.Success(c, result)
		return
	}

	parsed, err := strconv.ParseUint(venueRaw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "error.venue_id_invalid", nil)
		return
	}
	venueID := uint(parsed)
	roles, err := h.AuthzService.GetAdminRoles(adminID, venueID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	policies := make([]authz.Policy, 0)
	for _, role := range roles {
		rolePolicies, err := h.AuthzService.GetRolePolicies(role)
		if err != nil {
			respondError(c, response.CodeInternal, "error.query_failed", err)
			return
		}
		policies = append(policies, rolePolicies...)
	}
	result["venue_id"] = venueID
	result["roles"] = roles
	result["policies"] = policies
	response.Success(c, result)
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	normalized, err := authz.NormalizeRole(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.role_invalid", nil)
		return
	}
	exists, err := h.AuthzService.RoleExists(normalized)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	if !exists {
		respondError(c, response.CodeNotFound, "error.role_not_found", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(normalized)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{"role": normalized, "policies": policies})
}

// ListAuthzAdmins 获取管理员列表
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		venueIDs, venueErr := h.AuthzService.ListAdminVenues(admin.ID)
		if venueErr != nil {
			respondError(c, response.CodeInternal, "error.query_failed", venueErr)
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"display_name":  admin.DisplayName,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"venue_ids":     venueIDs,
		})
	}
	response.Success(c, items)
}

// GetAuthzAdminRoles 获取管理员在场馆内的角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID, venueID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.Success(c, gin.H{
		"admin_id": adminID,
		"venue_id": venueID,
		"roles":    roles,
	})
}

// SetAuthzAdminRoles 覆盖设置管理员在场馆内的角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	venueID, ok := parseVenueIDParam(c)
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "error.admin_not_found", nil)
		return
	}
	if _, err := h.VenueService.Get(venueID); err != nil {
		respondWithMappedError(c, err, handlershared.VenueErrorRules, response.CodeInternal, "error.save_failed")
		return
	}

	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	previous, err := h.AuthzService.GetAdminRoles(adminID, venueID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, venueID, req.Roles); err != nil {
		if errors.Is(err, authz.ErrUnknownRole) {
			respondError(c, response.CodeBadRequest, "error.role_not_found", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "error.role_invalid", err)
		return
	}
	current, err := h.AuthzService.GetAdminRoles(adminID, venueID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}

	action := constants.AuthzAuditActionAssignRoles
	if len(current) == 0 {
		action = constants.AuthzAuditActionRevokeRoles
	}
	h.recordAuthzAudit(c, service.AuthzAuditRecordInput{
		VenueID:          venueID,
		OperatorAdminID:  currentAdminID(c),
		OperatorUsername: currentUsername(c),
		TargetAdminID:    adminID,
		Action:           action,
		Role:             strings.Join(current, ","),
		RequestID:        currentRequestID(c),
		Detail: models.JSON{
			"target_admin_id": adminID,
			"target_username": admin.Username,
			"venue_id":        venueID,
			"previous_roles":  previous,
			"roles":           current,
		},
	})

	logger.Infow("admin_authz_admin_roles_updated",
		"operator_admin_id", currentAdminID(c),
		"target_admin_id", adminID,
		"venue_id", venueID,
		"roles", current,
	)

	response.Success(c, gin.H{
		"admin_id": adminID,
		"venue_id": venueID,
		"roles":    current,
	})
}

func (h *Handler) recordAuthzAudit(c *gin.Context, input service.AuthzAuditRecordInput) {
	if h == nil || h.AuthzAuditService == nil {
		return
	}
	if input.OperatorAdminID == 0 || strings.TrimSpace(input.Action) == "" {
		return
	}
	if err := h.AuthzAuditService.Record(input); err != nil {
		requestLog(c).Warnw("admin_authz_audit_record_failed",
			"error", err,
			"action", input.Action,
			"operator_admin_id", input.OperatorAdminID,
		)
	}
}

func parseAdminIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id", "error.admin_id_invalid")
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
