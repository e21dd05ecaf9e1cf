package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/andreihelo/simple-login-api/internal/config"
	"github.com/andreihelo/simple-login-api/internal/http/handler"
	"github.com/andreihelo/simple-login-api/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, accountHandler *handler.AccountHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		handler.JSONStatus(c, http.StatusInternalServerError, recoveredMessage(recovered))
		c.Abort()
	}))
	r.Use(middleware.RequestLogger(nil))
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.POST("/signup", accountHandler.SignUp)
	r.POST("/signin", accountHandler.SignIn)

	profile := r.Group("/profile")
	{
		profile.GET("/:token", accountHandler.Profile)
		// The original served updates on PUT and POST alike.
		profile.PUT("/:token", accountHandler.UpdateProfile)
		profile.POST("/:token", accountHandler.UpdateProfile)
		profile.DELETE("/:token", accountHandler.Delete)
	}

	r.DELETE("/signout/:token", accountHandler.SignOut)

	// Method mismatches fall through to NoRoute as well, so every unmatched
	// path/method pair answers with the same 404 body.
	r.NoRoute(func(c *gin.Context) {
		handler.JSONStatus(c, http.StatusNotFound, "Not found")
	})

	return r
}

func recoveredMessage(recovered any) string {
	switch v := recovered.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return "internal server error"
	}
}
