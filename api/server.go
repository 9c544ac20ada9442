package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/search", h.CreateSearch)
		api.GET("/search/:id", h.GetSearch)
		api.GET("/search/:id/analysis", h.GetAnalysis)
		api.GET("/search/:id/comparison", h.GetComparison)
		api.GET("/search/:id/bestsellers", h.GetBestsellers)
		api.POST("/compare", h.Compare)
		api.GET("/history", h.GetHistory)
		api.GET("/platforms", h.GetPlatforms)
		api.GET("/status", h.GetStatus)
	}

	return r
}

// Serve runs the HTTP server on addr, blocking until it exits.
func Serve(h *Handlers, addr string) error {
	h.logger.Info("[api] listening on %s", addr)
	return NewRouter(h).Run(addr)
}
