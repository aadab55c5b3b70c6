package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/propflow/followup-notifier/internal/api/handlers/followup"
)

func New(handler *followup.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api")

	api.POST("/ingest", handler.Ingest)
	api.POST("/sweep", handler.Sweep)
	api.GET("/followups", handler.List)
	api.GET("/followups/:id/status", handler.GetStatus)

	return e
}
