package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeInputMiddleware strips markup from every string field of JSON
// request bodies on public routes, including nested objects and arrays.
func SanitizeInputMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		buf, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
			return
		}
		if len(buf) == 0 {
			c.Next()
			return
		}

		var body interface{}
		if err := json.Unmarshal(buf, &body); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON"})
			return
		}

		newBody, _ := json.Marshal(sanitizeValue(body))
		c.Request.Body = io.NopCloser(bytes.NewBuffer(newBody))
		c.Request.ContentLength = int64(len(newBody))

		c.Next()
	}
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return sanitizePolicy.Sanitize(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = sanitizeValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = sanitizeValue(item)
		}
		return val
	default:
		return v
	}
}
