package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"clipfetch/api"
	"clipfetch/internal/app"
	"clipfetch/internal/domain"
	"clipfetch/internal/infrastructure"
	"clipfetch/pkg/logger"
)

var configPath = flag.String("config", "", "Path to configuration file")

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting clipfetch server",
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("temp_dir", config.Download.TempDir),
		zap.Int("max_file_size_mb", config.Download.MaxFileSizeMB),
		zap.Duration("budget", config.Download.Budget))

	if err := os.MkdirAll(config.Download.TempDir, 0755); err != nil {
		log.Fatal("Failed to create temp directory", zap.Error(err))
	}

	// Clear orphans from prior crashes before accepting work
	infrastructure.SweepTempDir(config.Download.TempDir, log)

	ffmpegBinary, found := infrastructure.ResolveFFmpeg(config.Download.FFmpegBinary)
	if found {
		log.Info("FFmpeg found", zap.String("path", ffmpegBinary))
	} else {
		log.Warn("FFmpeg not found, validation will degrade to container checks only")
	}

	repo, err := infrastructure.NewSQLiteDownloadRepository(config.Download.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize repository", zap.Error(err))
	}

	profiles := domain.NewProfileRegistry(config.Download.TargetQuality)
	extractor := infrastructure.NewYTDLPExtractor(config.Download.SocketTimeout, config.Download.CookieFile, log)
	scrapers := map[domain.Platform]domain.DirectScraper{
		domain.PlatformInstagram: infrastructure.NewInstagramScraper(log),
	}
	validator := infrastructure.NewFFmpegValidator(ffmpegBinary, config.Download.MaxFileSizeMB, log)

	engine := app.NewEngine(profiles, extractor, scrapers, validator, &config.Download, log)
	notifier := infrastructure.NewNotificationService(&config.Notification, log)
	manager := app.NewDownloadManager(repo, engine, notifier, log)

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := api.SetupRouter(baseCtx, manager, repo, log)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("addr", server.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Let in-flight downloads observe cancellation before the final sweep
	manager.Wait()
	infrastructure.SweepTempDir(config.Download.TempDir, log)

	log.Info("Server stopped")
}
