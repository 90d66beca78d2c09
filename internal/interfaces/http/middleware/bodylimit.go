package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sfgnexus/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that rejects requests whose declared
// body exceeds maxBytes and caps streaming bodies at the same limit.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponse(dto.ErrCodeValidation, "Request body exceeds maximum allowed size"))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
