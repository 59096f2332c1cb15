// Package lifecycle pkg/lifecycle/server.go
package lifecycle

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ShutdownTimeout = 10 * time.Second
)

// Service defines the interface that all services must implement.
type Service interface {
	Start(context.Context) error
	Stop(context.Context) error
}

// ServerOptions holds configuration for creating a server.
type ServerOptions struct {
	// HealthAddr is where the gRPC health endpoint listens. Empty
	// disables the health server.
	HealthAddr  string
	ServiceName string
	Service     Service
}

// RunServer starts a service with the provided options and handles lifecycle.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	grpcServer, err := setupHealthServer(opts.ServiceName, opts.HealthAddr)
	if err != nil {
		return fmt.Errorf("failed to setup health server: %w", err)
	}

	// Create error channel for service errors
	errChan := make(chan error, 1)

	// Start the service
	go func() {
		if err := opts.Service.Start(ctx); err != nil {
			select {
			case errChan <- err:
			default:
				log.Printf("Service error: %v", err)
			}
		}
	}()

	// Handle shutdown
	return handleShutdown(ctx, cancel, grpcServer, opts.Service, errChan)
}

func setupHealthServer(serviceName, addr string) (*grpc.Server, error) {
	if addr == "" {
		return nil, nil
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)

	go func() {
		log.Printf("Starting health server on %s", addr)

		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("Health server error: %v", err)
		}
	}()

	return grpcServer, nil
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc, grpcServer *grpc.Server, svc Service, errChan chan error) error {
	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var svcErr error

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		svcErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
		svcErr = ctx.Err()
	}

	// Create timeout context for shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	// Cancel main context
	cancel()

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	// Stop the service
	if err := svc.Stop(shutdownCtx); err != nil {
		log.Printf("Error during service shutdown: %v", err)
		return fmt.Errorf("shutdown error: %w", err)
	}

	return svcErr
}
