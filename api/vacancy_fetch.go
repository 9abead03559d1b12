package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) VacancyFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var vacancy model.Vacancy

	err := a.DB.
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

	c.JSON(http.StatusOK, gin.H{
		"vacancy": vacancy,
	})
}
