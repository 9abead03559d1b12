package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// UploadServe hands out stored uploads. With s3 storage this is a
// redirect to the CDN, with local storage the file is streamed
func (a *API) UploadServe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	name := filepath.Base(c.Param("name"))
	if name == "" || name == "." {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file name provided",
			"requestID": requestID,
		})
		return
	}

	location, redirect := a.Files.URL(name)
	if redirect {
		c.Redirect(http.StatusFound, location)
		return
	}

	c.File(location)
}
