package api

import (
	"net/http"

	"devjobs/board-api/internal/model"
	"devjobs/board-api/pkg/util"
	"devjobs/board-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (a *API) VacancyCreate(c *gin.Context) {
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

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate vacancy ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	suffix, _ := gonanoid.Generate(idCharset, 6)

	vacancy := model.Vacancy{
		ID:          id,
		UserID:      userID,
		Title:       data.Title,
		Company:     data.Company,
		Location:    data.Location,
		Salary:      data.Salary,
		Contract:    data.Contract,
		Description: data.Description,
		Skills:      model.StringSlice(data.Skills),
		URL:         util.Slugify(data.Title) + "-" + suffix,
	}

	if err := a.DB.Create(&vacancy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create vacancy", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vacancy":  vacancy,
		"message":  "Vacante creada correctamente",
		"category": "correcto",
		"redirect": "/administracion",
	})
}
