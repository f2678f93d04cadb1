// Package server assembles the HTTP routes of the form bot.
package server

import (
	"messenger-formbot/internal/api"
	"messenger-formbot/internal/logger"
	"messenger-formbot/internal/metrics"
	"messenger-formbot/internal/webhook"
	"messenger-formbot/internal/ws"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Log       *logger.Logger
	Webhook   *webhook.Handler
	Dashboard *api.DashboardHandler
	Metrics   *metrics.Metrics
	Hub       *ws.Hub
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(d.Log))

	// Webhook Routes
	r.GET("/webhook", d.Webhook.VerifyWebhook)
	r.POST("/webhook", d.Webhook.HandleMessage)

	r.GET("/healthz", d.Dashboard.Health)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	if d.Hub != nil {
		r.GET("/ws", gin.WrapF(d.Hub.ServeWs))
	}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/messages", d.Dashboard.GetMessages)
		apiGroup.GET("/questions", d.Dashboard.GetQuestions)
	}
	return r
}
