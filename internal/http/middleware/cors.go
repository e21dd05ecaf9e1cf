package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andreihelo/simple-login-api/internal/config"
)

// CORS stamps every response with the configured Access-Control-Allow-Origin
// value (wildcard unless overridden) and short-circuits preflight requests.
func CORS(cfg config.Config) gin.HandlerFunc {
	origin := cfg.CORSAllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
