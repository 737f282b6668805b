package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"syscall"
	"time"

	"myapp_backend/internal/config"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "audit-avatars" {
		auditCmd := flag.NewFlagSet("audit-avatars", flag.ExitOnError)
		timeout := auditCmd.Duration("timeout", 5*time.Minute, "Maximum time the audit may take")
		_ = auditCmd.Parse(os.Args[2:])

		if err := runAvatarAudit(*timeout); err != nil {
			log.Fatalf("FATAL: Avatar audit failed: %v", err)
		}
		return
	}

	startServer()
}

// runAvatarAudit prints every upload no profile references. Nothing is deleted.
func runAvatarAudit(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	job, cleanup, err := initializeAvatarAudit(cfg)
	if err != nil {
		return fmt.Errorf("initialize audit: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := job.RunOnce(ctx)
	if err != nil {
		return err
	}
	for _, orphan := range report.Orphans {
		fmt.Println(orphan)
	}
	fmt.Fprintf(os.Stderr, "%d files, %d referenced, %d orphaned, %d missing\n",
		report.Files, report.Referenced, len(report.Orphans), len(report.Missing))
	return nil
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}
