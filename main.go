package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storerating/configs"
	"storerating/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config failed")
	}
	logger := configs.NewLogger(cfg)
	gin.SetMode(cfg.GinMode)

	// DB
	db, err := configs.ConnectDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		logger.WithError(err).Fatal("connect database failed")
	}
	defer func() {
		if err := configs.CloseDB(db); err != nil {
			logger.WithError(err).Error("close database failed")
		}
	}()

	// migrate
	if err := configs.SetupDatabase(db); err != nil {
		logger.WithError(err).Fatal("migrate failed")
	}
	if err := configs.SeedAdmin(db, cfg, logger); err != nil {
		logger.WithError(err).Fatal("seed admin failed")
	}

	// HTTP
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.NewRouter(db, cfg, logger),
		ReadHeaderTimeout: cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + cfg.RequestTimeout/2,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}
