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

	"TickerBoard/internal/collector"
	"TickerBoard/internal/config"
	"TickerBoard/internal/logging"
	"TickerBoard/internal/model"
	"TickerBoard/internal/recorder"
	"TickerBoard/internal/scheduler"
	"TickerBoard/internal/session"
	"TickerBoard/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("TickerBoard starting...")

	// Init fetcher
	fetcher := collector.NewGeminiFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	logger.Info("data source", zap.String("name", fetcher.Name()), zap.String("base_url", cfg.DataSource.BaseURL))

	pair, _ := model.ParsePair(cfg.DataSource.DefaultPair)
	sel := session.NewSelection(pair)
	hub := web.NewHub(sel.Get(), logger)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := session.New(fetcher, sel, hub, rec, logger)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, sess, logger)
	if err := sched.Register(scheduler.RefreshSpec); err != nil {
		logger.Fatal("register refresh task", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	handler := web.NewHandler(hub, sel, func(model.Pair) { sched.Trigger() }, logger)
	if cc, ok := rec.(web.CycleCounter); ok {
		handler.WithJournal(cc)
	}
	srv := handler.Server(cfg.Server.Addr)

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	sched.Start()
	logger.Info("TickerBoard is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := handler.Shutdown(shutdownCtx, srv); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
	logger.Info("TickerBoard stopped")
}
