package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avolkhin/relayhub/internal/config"
	"github.com/avolkhin/relayhub/internal/core"
)

const snapshotTimeout = 2 * time.Second

// NewServer builds the HTTP server: liveness, the read-only ops API, and
// the websocket endpoint.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/api/rooms", roomsHandler(hub))
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.AllowedOrigins, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func roomsHandler(hub *core.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), snapshotTimeout)
		defer cancel()

		rooms, err := hub.Snapshot(ctx)
		if err != nil {
			c.JSON(stdhttp.StatusServiceUnavailable, gin.H{"error": "hub unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, gin.H{"rooms": rooms})
	}
}
