package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"devjobs/board-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LoginRedirect is where denied requests are pointed. The guard
// answers with a redirect target, not a hard failure, so the
// frontend can route the user to the login form
const LoginRedirect = "/iniciar-sesion"

// NewSessionGuard restores the session identity from the auth_token
// cookie and re-fetches the user behind it. Anything that fails along
// the way is a deny: the client gets a redirect target and a flash
// message, never a stack trace. A valid session sets userID on the
// context
func NewSessionGuard(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("auth_token")
		if err != nil {
			deny(c, requestID)
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}

			return []byte(viper.GetString("jwt.secret")), nil
		})
		if err != nil || !token.Valid {
			deny(c, requestID)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			deny(c, requestID)
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok {
			deny(c, requestID)
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || time.Now().Unix() >= int64(exp) {
			deny(c, requestID)
			return
		}

		// The id may no longer resolve to an account, for example
		// after a deletion. That's an unauthenticated request, not
		// a server fault
		var user model.User

		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				deny(c, requestID)
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to restore session", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}

func deny(c *gin.Context, requestID string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     "Inicia sesión para continuar",
		"category":  "error",
		"redirect":  LoginRedirect,
		"requestID": requestID,
	})
}
