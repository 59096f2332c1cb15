package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/hubview/hubview/pkg/api"
	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/config"
	"github.com/hubview/hubview/pkg/db"
	httpx "github.com/hubview/hubview/pkg/http"
	"github.com/hubview/hubview/pkg/hub"
	"github.com/hubview/hubview/pkg/lifecycle"
	"github.com/hubview/hubview/pkg/poller"
	"github.com/hubview/hubview/pkg/registry"
	"github.com/hubview/hubview/pkg/views"
)

// cmd/hubview/main.go

func main() {
	configPath := flag.String("config", "/etc/hubview/hubview.json", "Path to config file")
	flag.Parse()

	var cfg config.ServerConfig
	if err := config.LoadAndValidate(*configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	handle := hub.NewHandle()
	restoreHubConnection(database, handle)

	eventBus := bus.New(cfg.EventBacklog)

	registrySvc := registry.NewService(database, eventBus)
	viewSvc := views.NewService(database, eventBus)

	// The source indirection lets the loops pick up a swapped hub
	// client without restarting. The nil check matters: a typed nil
	// *hub.Client stuffed into the interface would not compare equal
	// to nil on the far side.
	source := func() poller.HubClient {
		if client := handle.Snapshot(); client != nil {
			return client
		}

		return nil
	}

	collector := poller.NewCollector(source, database, database, eventBus, time.Duration(cfg.CollectInterval))
	status := poller.NewStatusChecker(source, eventBus, time.Duration(cfg.StatusInterval))
	relay := poller.NewRelay(source, eventBus)
	runner := poller.NewRunner(collector, status, relay)

	apiServer := api.NewAPIServer(
		registrySvc,
		viewSvc,
		database,
		handle,
		eventBus,
		status.Status,
		&httpx.StaticTokenAuthorizer{Token: cfg.APIToken},
	)

	go func() {
		log.Printf("Starting HTTP server on %s", cfg.ListenAddr)

		if err := apiServer.Start(cfg.ListenAddr); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	if err := lifecycle.RunServer(context.Background(), &lifecycle.ServerOptions{
		HealthAddr:  cfg.HealthAddr,
		ServiceName: "hubview",
		Service:     runner,
	}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// restoreHubConnection loads the persisted hub address and token so
// collection resumes after a restart without re-registering the hub.
func restoreHubConnection(database db.Service, handle *hub.Handle) {
	conn, err := database.GetHubConnection()
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("Failed to load hub connection: %v", err)
		}

		return
	}

	handle.Set(hub.NewClient(conn.Address, conn.Token))
	log.Printf("Restored hub connection to %s", conn.Address)
}
