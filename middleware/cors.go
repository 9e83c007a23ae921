package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

func CorsMiddleware(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case strings.HasPrefix(c.Request.URL.Path, "/webhook"):
			// Public webhooks: allow any origin, no credentials
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		default:
			// Protected endpoints: restrict origin & allow credentials
			c.Writer.Header().Set("Access-Control-Allow-Origin", frontendURL)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
