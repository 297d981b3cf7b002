package shared

import (
	"strconv"

	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ContextUserID    = "user_id"
	ContextUsername  = "username"
	ContextAdminID   = "admin_id"
	ContextIsSuper   = "is_super"
	ContextRequestID = "request_id"
)

// GetContextUint reads a uint value from the request context,
// answering unauthorized when it is missing.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, "invalid identity", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "invalid identity type", nil)
		return 0, false
	}
}

// OptionalUserID reads the authenticated user, 0 when anonymous.
func OptionalUserID(c *gin.Context) uint {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

// ParseUintParam reads a numeric path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeNotFound, "resource not found", nil)
		return 0, false
	}
	return uint(id), true
}
