package main

import (
	"context"
	"log"

	"github.com/mawuli2121/Priya-Project/internal/bootstrap"
	"github.com/mawuli2121/Priya-Project/internal/config"
	"github.com/mawuli2121/Priya-Project/internal/server"
	"github.com/mawuli2121/Priya-Project/internal/tracer"

	"github.com/fatih/color"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	color.Cyan("🛡️  ThreatLens Repository Analyzer")

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)

	// 3. Start Background Services
	go func() {
		log.Println("Background: Starting Analysis Event Consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
