package api

import (
	"errors"
	"net/http"

	"devjobs/board-api/internal/model"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VacancyEdit updates a vacancy. The lookup is scoped to the
// logged-in owner, someone else's slug simply doesn't resolve
func (a *API) VacancyEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data validators.VacancyInput
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.VacancyValidator(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

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

	vacancy.Title = data.Title
	vacancy.Company = data.Company
	vacancy.Location = data.Location
	vacancy.Salary = data.Salary
	vacancy.Contract = data.Contract
	vacancy.Description = data.Description
	vacancy.Skills = model.StringSlice(data.Skills)

	if err := a.DB.Save(&vacancy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save vacancy", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vacancy":  vacancy,
		"message":  "Vacante actualizada correctamente",
		"category": "correcto",
		"redirect": "/administracion",
	})
}
