package middleware

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/glowdesk/glowdesk/internal/errors"
)

// ErrorHandler renders the last error pushed by a handler as the standard
// error envelope with a status derived from the error mark.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
		}
	}
}
