package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"thirdcoast.systems/darkroom/cmd/web/auth"
	"thirdcoast.systems/darkroom/cmd/web/internal/web"
	"thirdcoast.systems/darkroom/internal/config"
	"thirdcoast.systems/darkroom/internal/editor"
	"thirdcoast.systems/darkroom/internal/objecturl"
	"thirdcoast.systems/darkroom/internal/render"
	"thirdcoast.systems/darkroom/pkg/ffmpeg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogging(conf)

	toolchain := ffmpeg.Toolchain{FFmpeg: conf.FFmpegPath, FFprobe: conf.FFprobePath}
	if err := toolchain.Check(); err != nil {
		slog.Warn("image export unavailable", "error", err)
	}

	urls := objecturl.New()
	profiles := editor.NewProfiles(conf.StandardMaxUploadBytes, conf.AdvancedMaxUploadBytes)
	store := editor.NewStore(urls, profiles, conf.SessionIdleTimeout)
	defer store.Close()
	go store.Run(ctx)

	exporter := render.NewExporter(toolchain, render.WithTimeout(conf.ExportTimeout))

	// Initialize session manager
	sessionMgr := auth.NewSessionManager(conf.SessionSecret)

	e, err := web.NewWebserver(store, exporter, sessionMgr)
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// setupLogging installs the default slog handler: readable text when
// debugging, JSON otherwise.
func setupLogging(conf *config.Config) {
	opts := &slog.HandlerOptions{Level: conf.SlogLevel()}
	var handler slog.Handler
	if conf.LogLevel == "debug" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
