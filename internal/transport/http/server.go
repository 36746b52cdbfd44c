package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wecode-dev/wecode-server/internal/config"
	"github.com/wecode-dev/wecode-server/internal/core"
	"github.com/wecode-dev/wecode-server/internal/metrics"
	"github.com/wecode-dev/wecode-server/internal/runner"
)

// NewServer builds the HTTP server: WebSocket endpoint, REST surface,
// health and metrics.
func NewServer(hub *core.Hub, store *core.RoomStore, run runner.Runner, m *metrics.Metrics, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.AllowedOrigin))

	router.GET("/health", healthHandler)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	execHandlers := NewExecHandlers(run, m, logger)
	roomHandlers := NewRoomHandlers(store, logger)
	api := router.Group("/api")
	{
		api.POST("/execute", execHandlers.Execute)
		api.GET("/rooms/:id", roomHandlers.GetRoom)
	}

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
