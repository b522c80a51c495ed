package admin

import (
	"strings"

	handlershared "github.com/venue-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const adminIsSuperContextKey = "admin_is_super"

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getAdminID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "admin_id", "error.admin_id_invalid", "error.admin_id_type_invalid")
}

func parseVenueIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "venue_id", "error.venue_id_invalid")
}

func currentAdminID(c *gin.Context) uint {
	value, exists := c.Get("admin_id")
	if !exists {
		return 0
	}
	switch adminID := value.(type) {
	case uint:
		return adminID
	case int:
		if adminID > 0 {
			return uint(adminID)
		}
	case float64:
		if adminID > 0 {
			return uint(adminID)
		}
	}
	return 0
}

func currentUsername(c *gin.Context) string {
	value, exists := c.Get("username")
	if !exists {
		return ""
	}
	if username, ok := value.(string); ok {
		return strings.TrimSpace(username)
	}
	return ""
}

func currentRequestID(c *gin.Context) string {
	value, exists := c.Get("request_id")
	if !exists {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return strings.TrimSpace(requestID)
	}
	return ""
}

func currentIsSuper(c *gin.Context) bool {
	value, exists := c.Get(adminIsSuperContextKey)
	if !exists {
		return false
	}
	flag, ok := value.(bool)
	return ok && flag
}
