package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/auth"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetConsumeBody struct {
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

// ResetConsume stores the new password and burns the token
func (a *API) ResetConsume(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetConsumeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.ConfirmValidator(data.Password, data.Confirm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := a.Auth.ConsumeToken(c.Param("token"), data.Password)
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

		zap.L().Error("Failed to consume reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Contraseña modificada correctamente",
		"category": "correcto",
		"redirect": "/iniciar-sesion",
	})
}
