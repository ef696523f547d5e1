package main

import (
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"smartparking/internal/api"
	"smartparking/internal/auth"
	"smartparking/internal/backend"
	"smartparking/internal/config"
	"smartparking/internal/logger"
	"smartparking/internal/service"
)

func main() {
	godotenv.Load()
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg := config.Load()

	client := backend.NewClient(cfg.BackendURL, cfg.RequestTimeout)
	sessions := service.NewSessionManager()
	dashboardSvc := service.NewDashboardService(client, service.SimulatedGateway{}, cfg.SlotRefresh, cfg.BookingRefresh)
	adminSvc := service.NewAdminService(client)

	cookies := auth.Cookies{Name: cfg.CookieName}
	authHandler := api.NewAuthHandler(client, sessions, cookies)
	dashboardHandler := api.NewDashboardHandler(dashboardSvc, sessions)
	adminHandler := api.NewAdminHandler(adminSvc, sessions)

	jobs := service.NewJobService(sessions)
	c := cron.New()
	if err := jobs.Schedule(c); err != nil {
		logger.Log.WithField("err", err).Fatal("scheduling session sweep")
	}
	c.Start()

	r := api.NewRouter(authHandler, dashboardHandler, adminHandler, cookies)

	handler := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, r))

	logger.Log.WithField("addr", cfg.ListenAddr).Info("web frontend running")
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		logger.Log.WithField("err", err).Fatal("server stopped")
	}
}
