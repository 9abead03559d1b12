package api

import (
	"net/http"

	"devjobs/board-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type searchBody struct {
	Q string `json:"q"`
}

func (a *API) VacancySearch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data searchBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Q == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No search term provided",
			"requestID": requestID,
		})
		return
	}

	var vacancies []model.Vacancy

	err := a.DB.
		Where("title LIKE ?", "%"+data.Q+"%").
		Order("created_at desc").
		Find(&vacancies).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to search vacancies", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"term":      data.Q,
		"vacancies": vacancies,
	})
}
