package api

import (
	"errors"
	"net/http"
	"time"

	"devjobs/board-api/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const sessionTTL = time.Hour * 24 * 30

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" || data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Ambos campos son obligatorios",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Auth.Authenticate(data.Email, data.Password)
	if err != nil {
		// Unknown account and wrong password collapse into the same
		// answer on purpose
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredential) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Revisa tu email y contraseña",
				"category":  "error",
				"redirect":  "/iniciar-sesion",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to authenticate user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The session payload carries the user id only, nothing else
	// from the record
	authToken, err := makeToken(&jwt.MapClaims{
		"user_id": user.ID,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate session token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ssl := viper.GetBool("host.ssl.enabled")

	c.SetCookie("auth_token", authToken, int(sessionTTL.Seconds()), "/", "", ssl, true)
	c.SetCookie("logged_in", "1", int(sessionTTL.Seconds()), "/", "", ssl, false)
	c.JSON(http.StatusOK, gin.H{
		"userID":   user.ID,
		"redirect": "/administracion",
	})
}

func makeToken(c *jwt.MapClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}
