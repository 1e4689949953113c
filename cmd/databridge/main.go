package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/databridge-io/databridge/internal/api"
	"github.com/databridge-io/databridge/internal/config"
	"github.com/databridge-io/databridge/internal/dispatch"
	"github.com/databridge-io/databridge/internal/registry"
	"github.com/databridge-io/databridge/pkg/adapter"
	"github.com/databridge-io/databridge/pkg/dbcapabilities"
	"github.com/databridge-io/databridge/pkg/logger"

	// Register the database adapters.
	_ "github.com/databridge-io/databridge/internal/database/mongodb"
	_ "github.com/databridge-io/databridge/internal/database/mysql"
	_ "github.com/databridge-io/databridge/internal/database/postgres"
	_ "github.com/databridge-io/databridge/internal/database/redis"
	_ "github.com/databridge-io/databridge/internal/database/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	listen := flag.String("listen", "", "listen address (overrides config)")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := logger.New(&logger.Config{Level: cfg.LogLevel})
	logger.SetDefault(log)

	reg := registry.New(adapter.GlobalRegistry())
	defer reg.Close()

	// Seed connections from config. A database that is down at startup
	// should not keep the server from coming up.
	ctx := logger.WithContext(context.Background(), log)
	for _, conn := range cfg.Connections {
		id, ok := dbcapabilities.ParseID(conn.Type)
		if !ok {
			log.Warn("skipping seed connection with unknown type", "name", conn.Name, "type", conn.Type)
			continue
		}
		seed := adapter.ConnectionConfig{Name: conn.Name, DatabaseID: id, DSN: conn.DSN}
		if err := reg.Add(ctx, seed); err != nil {
			log.Warn("seed connection failed", "name", conn.Name, "error", err)
		}
	}

	disp := dispatch.New(reg, dispatch.Config{
		Timeout:   cfg.Timeout,
		BackupDir: cfg.BackupDir,
		ExportDir: cfg.ExportDir,
	})

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.NewRouter(reg, disp, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
