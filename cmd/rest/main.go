package main

import (
	"context"
	"log"

	"lexcircle-be/internal/bootstrap"
	"lexcircle-be/internal/config"
	"lexcircle-be/internal/server"
	"lexcircle-be/internal/tracer"
	"lexcircle-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	// The audit worker and websocket hub start inside the container.
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.DeliveryBus.Close()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
