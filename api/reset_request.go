package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/auth"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

// ResetRequest kicks off the forgotten-password flow: issues a
// token and mails the link
func (a *API) ResetRequest(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resetRequestBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	err := a.Auth.RequestReset(data.Email)
	if err != nil {
		// Matches the reference behavior of telling the caller the
		// account doesn't exist. Known account-enumeration tradeoff
		if errors.Is(err, auth.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "No existe esa cuenta",
				"category":  "error",
				"redirect":  "/reestablecer-password",
				"requestID": requestID,
			})
			return
		}

		if errors.Is(err, auth.ErrDelivery) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":     "No se pudo enviar el correo, intenta de nuevo más tarde",
				"requestID": requestID,
			})

			zap.L().Error("Failed to deliver reset mail", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Revisa tu correo para las instrucciones",
		"category": "correcto",
		"redirect": "/iniciar-sesion",
	})
}
