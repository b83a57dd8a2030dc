package main

import (
	"context"
	"log"

	_ "taskify/docs"
	"taskify/internal/config"
	"taskify/internal/logger"
	"taskify/internal/server"
	"taskify/internal/telemetry"
)

var version = "dev"

// @title           Taskify API
// @version         1.0
// @description     Task, project and team management.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http

// @tag.name auth
// @tag.description Registration and login

// @tag.name tasks
// @tag.description Task lifecycle

// @tag.name projects
// @tag.description Projects, rosters and progress

// @tag.name team
// @tag.description Team members, project membership and task assignment

// @tag.name activity
// @tag.description Activity feed
func main() {
	cfg := config.Load()

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer appLog.Sync()

	shutdown, err := telemetry.Init(context.Background(), appLog, telemetry.Config{
		Enabled:      cfg.TracingEnabled,
		ServiceName:  "taskify",
		Version:      version,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SampleRatio:  1,
	})
	if err != nil {
		appLog.Fatal("telemetry initialization failed", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			appLog.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	s, err := server.Init(cfg, appLog)
	if err != nil {
		appLog.Fatal("server initialization failed", "error", err)
	}

	s.Run()
}
