package routes

import (
	"net/http"

	"github.com/damoang/angple-notes/internal/common"
	"github.com/damoang/angple-notes/internal/handler"
	"github.com/damoang/angple-notes/internal/middleware"
	"github.com/damoang/angple-notes/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configure the engine built by NewRouter
type Options struct {
	// AllowOrigin is the single browser origin allowed by CORS
	AllowOrigin string
	// Health is mounted at /health when set
	Health *handler.HealthHandler
}

// NewRouter builds the gin engine with global middleware, the notes API and the fallbacks
func NewRouter(noteHandler *handler.NoteHandler, opts Options) *gin.Engine {
	router := gin.New()
	// /api/notes/ is an unknown route, not a redirect to /api/notes
	router.RedirectTrailingSlash = false

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.GetLogger().Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(opts.AllowOrigin))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.Health != nil {
		router.GET("/health", opts.Health.Check)
	}

	Setup(router, noteHandler)

	router.NoRoute(common.NoRoute)
	return router
}

// Setup configures the notes API routes. Preflight requests never reach them; middleware.CORS answers those.
// gin matches the static /search segment before the :id parameter.
func Setup(router *gin.Engine, h *handler.NoteHandler) {
	notes := router.Group("/api/notes")
	notes.GET("", h.ListNotes)
	notes.POST("", h.CreateNote)
	notes.GET("/search", h.SearchNotes)
	notes.GET("/:id", h.GetNote)
	notes.PUT("/:id", h.UpdateNote)
	notes.DELETE("/:id", h.DeleteNote)
}
