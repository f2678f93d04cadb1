package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger-formbot/internal/api"
	"messenger-formbot/internal/automation"
	"messenger-formbot/internal/config"
	"messenger-formbot/internal/database"
	"messenger-formbot/internal/form"
	"messenger-formbot/internal/logger"
	"messenger-formbot/internal/messenger"
	"messenger-formbot/internal/metrics"
	"messenger-formbot/internal/questions"
	"messenger-formbot/internal/server"
	"messenger-formbot/internal/webhook"
	"messenger-formbot/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	qs, err := questions.Load(cfg.QuestionsPath)
	if err != nil {
		appLog.Fatal("Failed to load questions", "path", cfg.QuestionsPath, "error", err)
	}
	formEngine := form.NewEngine(qs)
	appLog.Info("Questions loaded", "count", formEngine.Len())

	db, err := database.Open(cfg)
	if err != nil {
		appLog.Fatal("Failed to open message log", "driver", cfg.DBDriver, "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	hub := ws.NewHub(appLog)
	go hub.Run(ctx)

	opts := []automation.Option{
		automation.WithLogger(appLog),
		automation.WithMetrics(m),
		automation.WithFeed(hub),
		automation.WithStartCommand(cfg.StartCommand),
	}
	var lister api.MessageLister
	if db != nil {
		messageLog := database.NewMessageLog(db)
		opts = append(opts, automation.WithRecorder(messageLog))
		lister = messageLog
	} else {
		appLog.Info("Message log disabled")
	}

	messengerClient := messenger.NewClient(cfg)
	automationEngine := automation.NewEngine(formEngine, messengerClient, opts...)

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	webhookHandler := webhook.NewHandler(cfg, automationEngine, appLog)
	r := server.NewRouter(server.Deps{
		Log:       appLog,
		Webhook:   webhookHandler,
		Dashboard: api.NewDashboardHandler(lister, formEngine),
		Metrics:   m,
		Hub:       hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLog.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to run server", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server shutdown", "error", err)
	}
	if err := webhookHandler.Wait(shutdownCtx); err != nil {
		appLog.Error("Pending events not finished", "error", err)
	}
	if db != nil {
		if err := database.Close(db); err != nil {
			appLog.Warn("Error closing message log", "error", err)
		}
	}
	appLog.Info("Server stopped")
}
