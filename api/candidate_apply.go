package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/model"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CandidateApply registers an application against a vacancy. The CV
// arrives as a multipart upload and is stored under a random name
func (a *API) CandidateApply(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	name := c.PostForm("name")
	email := c.PostForm("email")

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

	fh, err := c.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No CV provided",
			"requestID": requestID,
		})
		return
	}

	contentType, err := validators.CVValidator(fh, viper.GetInt64("upload.cv_max_size"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var vacancy model.Vacancy

	err = a.DB.
		Where("url = ?", c.Param("url")).
		First(&vacancy).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Vacante no encontrada",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch vacancy", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded CV", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	id, _ := gonanoid.New(12)
	cvName := id + ".pdf"

	err = a.Files.Save(c.Request.Context(), cvName, contentType, f, fh.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store CV", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	candidate := model.Candidate{
		VacancyID: vacancy.ID,
		Name:      name,
		Email:     email,
		CVFile:    cvName,
	}

	if err := a.DB.Create(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create candidate", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Tu CV se envió correctamente",
		"category": "correcto",
	})
}
