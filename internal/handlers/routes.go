package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tribute-api/internal/config"
	"tribute-api/internal/middleware"
	"tribute-api/pkg/lambda"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	Tributes *TributeHandler
	Health   HealthChecker
	Logger   *logrus.Logger
}

// SetupMiddleware configures the middleware used by the local server
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestSizeLimit(1 << 20))
	router.Use(middleware.ErrorHandler(logger))
}

// SetupRoutes exposes the tribute functions on the paths the front-end calls
// in production and on a resource-style API.
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	tributes := cfg.Tributes

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthHandler(cfg.Health))

	// Function paths, method checks are left to the handlers
	functions := router.Group("/.netlify/functions")
	{
		functions.Any("/add-tribute", Gin(tributes.HandleCreate))
		functions.Any("/get-tributes", Gin(tributes.HandleList))
		functions.Any("/update-tribute", Gin(tributes.HandleUpdate))
		functions.Any("/delete-tribute", Gin(tributes.HandleDelete))
	}

	v1 := router.Group("/api/v1")
	{
		v1.POST("/tributes", Gin(tributes.HandleCreate))
		v1.GET("/tributes", Gin(tributes.HandleList))
		v1.PUT("/tributes", Gin(tributes.HandleUpdate))
		v1.DELETE("/tributes", Gin(tributes.HandleDelete))
	}
}

// Gin adapts a framework-agnostic handler to gin
func Gin(h lambda.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
				return
			}
			body = data
		}

		req := &lambda.Request{
			RequestID:   c.GetString(middleware.RequestIDKey),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			Headers:     firstValues(c.Request.Header),
			QueryParams: firstValues(c.Request.URL.Query()),
			Body:        body,
			PathParams:  map[string]string{},
		}
		for _, p := range c.Params {
			req.PathParams[p.Key] = p.Value
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			c.Error(err)
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}

func healthHandler(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"status":  "healthy",
			"service": "tribute-api",
			"mode":    config.GetDeploymentMode(),
		}

		if checker != nil {
			if err := checker.CheckHealth(c.Request.Context()); err != nil {
				status["status"] = "unhealthy"
				status["error"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, status)
				return
			}
		}

		c.JSON(http.StatusOK, status)
	}
}

func firstValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
