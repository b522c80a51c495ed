package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/venue-next/internal/http/handlers/shared"
	"github.com/venue-next/internal/http/response"
	"github.com/venue-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthzAuditLogs 获取权限审计日志列表
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.PageParams(c)

	filter := repository.AuthzAuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Action:   strings.TrimSpace(c.Query("action")),
		Role:     strings.TrimSpace(c.Query("role")),
	}

	uintQueries := []struct {
		name string
		dest *uint
	}{
		{name: "venue_id", dest: &filter.VenueID},
		{name: "operator_admin_id", dest: &filter.OperatorAdminID},
		{name: "target_admin_id", dest: &filter.TargetAdminID},
	}
	for _, query := range uintQueries {
		raw := strings.TrimSpace(c.Query(query.name))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		*query.dest = uint(value)
	}

	createdFrom, err := handlershared.ParseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := handlershared.ParseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	filter.CreatedFrom = createdFrom
	filter.CreatedTo = createdTo

	items, total, err := h.AuthzAuditService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.query_failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
