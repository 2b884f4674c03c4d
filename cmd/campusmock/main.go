package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campusmock/internal/catalog"
	"campusmock/internal/config"
	"campusmock/internal/logging"
	"campusmock/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file (built-in defaults when empty)")
	addr := flag.String("addr", "", "listen address, overrides server.address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.SetAddress(*addr)

	logger := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	srv, err := server.NewBuilder(cfg, logger).Build()
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	catalog.WriteBanner(os.Stdout, cfg.Server.PublicBaseURL)

	go func() {
		logger.Info("listening", "address", srv.HTTP.Addr, "h2c", cfg.Server.H2C)
		if err := srv.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.HTTP.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
}
