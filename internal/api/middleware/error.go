package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laes-sim/internal/api/models"
)

// ErrorHandler recovers handler panics into the API's error envelope so a
// crashed evaluation still answers with well-formed JSON.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		detail := models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		}
		switch v := recovered.(type) {
		case string:
			detail.Message = v
		case error:
			detail.Message = v.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: detail})
	})
}
