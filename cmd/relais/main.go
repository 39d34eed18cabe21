package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/setup"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

var (
	configFile string = ""
	dumpConfig bool   = false
)

func init() {
	flag.StringVar(&configFile, "config", configFile, "configuration file")
	flag.BoolVar(&dumpConfig, "dump-config", dumpConfig, "dump default configuration file and exit")
}

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conf := config.NewDefaultConfig()

	if dumpConfig {
		if err := config.Dump(os.Stdout, conf); err != nil {
			slog.ErrorContext(ctx, "could not dump config file", log.Error(errors.WithStack(err)))
			os.Exit(1)
		}

		os.Exit(0)
	}

	if configFile != "" {
		if err := config.LoadFile(configFile, conf); err != nil {
			slog.ErrorContext(ctx, "could not parse config file", log.Error(errors.WithStack(err)), slog.String("file", configFile))
			os.Exit(1)
		}
	}

	if err := config.Interpolate(conf); err != nil {
		slog.ErrorContext(ctx, "could not interpolate config file", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	handlerOptions := &slog.HandlerOptions{
		Level:     slog.Level(conf.Logger.Level),
		AddSource: true,
	}

	var handler slog.Handler
	switch string(conf.Logger.Format) {
	case config.LoggerFormatJSON:
		handler = slog.NewJSONHandler(os.Stderr, handlerOptions)
	default:
		handler = slog.NewTextHandler(os.Stderr, handlerOptions)
	}

	logger := slog.New(log.ContextHandler{Handler: handler})

	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.Level(conf.Logger.Level))

	httpHandler, err := setup.NewHandlerFromConfig(ctx, conf)
	if err != nil {
		slog.ErrorContext(ctx, "could not generate handler from config", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    string(conf.HTTP.Address),
		Handler: httpHandler,
	}

	shutdown := make(chan struct{})

	go func() {
		defer close(shutdown)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(*conf.HTTP.ShutdownTimeout))
		defer cancel()

		slog.InfoContext(shutdownCtx, "shutting down http server")

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not shut down http server", log.Error(errors.WithStack(err)))
		}

		// Hijacked websocket connections are not tracked by the server
		if err := setup.Close(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "could not release resources", log.Error(errors.WithStack(err)))
		}
	}()

	slog.InfoContext(ctx, "http server listening", slog.String("addr", server.Addr), slog.String("baseUrl", string(conf.HTTP.BaseURL)))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.ErrorContext(ctx, "could not listen", log.Error(errors.WithStack(err)))
		os.Exit(1)
	}

	<-shutdown
}
