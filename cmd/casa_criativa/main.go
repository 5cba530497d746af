package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"casa_criativa/internal/app"
	"casa_criativa/internal/config"
	"casa_criativa/internal/lib/logger"
	"casa_criativa/internal/lib/logger/sl"
)

func main() {
	cfg := config.MustLoad()

	log, sinks, err := logger.Setup(cfg.Env, cfg.LogLevel, cfg.LogDir)
	if err != nil {
		panic("cannot set up logger: " + err.Error())
	}

	log.Info("starting casa criativa", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	application, err := app.New(context.Background(), log, cfg, sinks)
	if err != nil {
		log.Error("failed to start application", sl.Err(err))
		sinks.Close()
		os.Exit(1)
	}

	go func() {
		application.HTTPServer.MustRun()
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	sign := <-stop
	log.Info("stopping application", slog.String("signal", sign.String()))

	application.Stop()
}
