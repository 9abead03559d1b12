package api

import (
	"net/http"

	"devjobs/board-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VacancyList returns all published vacancies, newest first. The
// response is cached for a short while since this backs the landing
// page
func (a *API) VacancyList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var vacancies []model.Vacancy

	err := a.DB.
		Order("created_at desc").
		Find(&vacancies).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list vacancies", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vacancies": vacancies,
	})
}
