package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/workspace-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/workspace-notifier/internal/middlewares"
)

func New(handler *notification.Handler, jwtSecret string) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/notifications")
	api.Use(middlewares.Auth(jwtSecret))
	{
		api.GET("/subscribe", handler.Subscribe)
		api.GET("/ws", handler.SubscribeWS)
		api.POST("/", handler.Publish)
		api.GET("/unread/:channel_id", handler.GetUnreadCount)
		api.DELETE("/unread/:channel_id", handler.MarkAsRead)
		api.GET("/stats/:workspace_id", handler.Stats)
	}

	return e
}
