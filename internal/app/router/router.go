package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "task_backend/internal/feature/auth/transport/handler"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	platformhandler "task_backend/internal/platform/http/handler"
)

// Options toggles optional middleware.
type Options struct {
	CORS bool
}

// NewRouter wires every route. gate guards the routes that need a token.
func NewRouter(authHandler *authhandler.AuthHandler, tasks *taskhandler.TaskHandler,
	health *platformhandler.HealthHandler, gate gin.HandlerFunc, opts Options) *gin.Engine {
	r := gin.Default()
	if opts.CORS {
		r.Use(cors.Default())
	}

	// Public routes
	// Health check
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	// Sign up
	r.POST("/register", authHandler.Register)
	// Log in (issues a JWT)
	r.POST("/login", authHandler.Login)

	// Routes behind the Auth Gate
	auth := r.Group("/")
	auth.Use(gate)
	{
		auth.GET("/logout", authHandler.Logout)
		auth.GET("/get_user", authHandler.GetUser)

		auth.Match([]string{http.MethodGet, http.MethodPost}, "/tasks", tasks.List)
		auth.GET("/tasks/:id", tasks.Show)
		auth.POST("/create", tasks.Create)
		auth.POST("/update", tasks.Update)
		auth.POST("/delete", tasks.Destroy)
	}

	return r
}
