package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CandidateList shows the applications on a vacancy to its owner.
// The vacancy lookup is scoped by user id so foreign vacancies 404
func (a *API) CandidateList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var vacancy model.Vacancy

	err := a.DB.
		Where("url = ? AND user_id = ?", c.Param("url"), userID).
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

	var candidates []model.Candidate

	err = a.DB.
		Where("vacancy_id = ?", vacancy.ID).
		Order("created_at desc").
		Find(&candidates).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list candidates", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vacancy":    vacancy,
		"candidates": candidates,
	})
}
