package api

import (
	"errors"
	"net/http"
	"strings"

	"devjobs/board-api/internal/auth"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// UserEdit updates name/email, optionally the password and
// optionally the profile image. The credential is only re-hashed
// when a new plaintext actually arrives
func (a *API) UserEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Name field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if password != "" {
		if err := validators.PasswordValidator(password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}
	}

	var imageName string

	if fh, err := c.FormFile("image"); err == nil {
		contentType, err := validators.ImageValidator(fh, viper.GetInt64("upload.image_max_size"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to open uploaded image", zap.Error(err), zap.String("requestID", requestID))
			return
		}
		defer f.Close()

		id, _ := gonanoid.New(12)
		imageName = id + "." + strings.TrimPrefix(contentType, "image/")

		err = a.Files.Save(c.Request.Context(), imageName, contentType, f, fh.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to store profile image", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	user, err := a.Auth.UpdateProfile(userID, name, email, password, imageName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Ese correo ya está registrado",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"message":  "Cambios guardados correctamente, vuelve a iniciar sesión para que se apliquen los cambios",
		"category": "correcto",
		"redirect": "/administracion",
	})
}
