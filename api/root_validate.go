package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only exists so the frontend can cheaply check whether the
// session cookie still restores. The guard does all the work
func (a *API) Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
