package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nocdn/transcriptions-ssr/internal/api/errors"
)

// BodyLimit rejects request bodies over maxBytes with 413. Declared lengths
// fail fast; chunked uploads are cut off by MaxBytesReader mid-read.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			HandleError(c, errors.NewTooLargeError("Request body exceeds the upload limit"))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
