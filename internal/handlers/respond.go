package handlers

import (
	"github.com/gin-gonic/gin"
)

// fail writes the API's uniform error payload.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
