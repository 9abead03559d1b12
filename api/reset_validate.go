package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResetValidate tells the frontend whether a reset link may still
// show the new-password form. Expired and unknown tokens get the
// exact same answer
func (a *API) ResetValidate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	_, err := a.Auth.ValidateToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			c.JSON(http.StatusGone, gin.H{
				"error":     "El formulario ya no es válido, intenta de nuevo",
				"category":  "error",
				"redirect":  "/reestablecer-password",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to validate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
	})
}
