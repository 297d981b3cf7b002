package public

import (
	"github.com/blogicum-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	shared.RespondError(c, code, msg, err)
}

func getUserID(c *gin.Context) (uint, bool) {
	return shared.GetContextUint(c, shared.ContextUserID)
}
