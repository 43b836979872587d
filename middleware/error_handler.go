package middleware

import (
	"MenuLens/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware maps errors pushed onto the gin context to the
// response envelope, using the status code carried by the error type.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			utils.ErrorResponse(c, utils.StatusCodeFor(err), err.Error())
		}
	}
}
