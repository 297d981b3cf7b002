package public

import (
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha generates an image challenge for captcha-gated
// scenes.
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeNotFound, "captcha disabled", nil)
		return
	}
	response.Success(c, challenge)
}
