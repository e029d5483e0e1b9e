package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rollmark/rollmark/internal/config"
	"github.com/rollmark/rollmark/internal/encoder"
	"github.com/rollmark/rollmark/internal/recognition"
	"github.com/rollmark/rollmark/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the attendance API server",
	Long: `Start the Rollmark API server.
The server exposes recognition, enrollment, student and attendance
endpoints consumed by the camera front-end.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "", "Host to bind to (overrides WEB_HOST)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	fmt.Println("Connecting to PostgreSQL database...")
	pool, studentRepo, attendanceRepo, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := recognition.NewRegistry(studentRepo)
	if err := registry.Refresh(context.Background()); err != nil {
		return fmt.Errorf("loading identity registry: %w", err)
	}
	candidates, _ := registry.All(context.Background())
	fmt.Printf("Identity registry loaded with %d students\n", len(candidates))

	pipeline := recognition.NewPipeline(registry, recognition.NewLedger(attendanceRepo), cfg.Recognition.Tolerance)
	enc := encoder.NewClient(cfg.Encoder.URL)

	host, port := cfg.Web.Host, cfg.Web.Port
	if flagHost := mustGetString(cmd, "host"); flagHost != "" {
		host = flagHost
	}
	if flagPort := mustGetInt(cmd, "port"); flagPort != 0 {
		port = flagPort
	}

	server := web.NewServer(host, port, web.Deps{
		Pipeline:   pipeline,
		Registry:   registry,
		Encoder:    enc,
		Students:   studentRepo,
		Attendance: attendanceRepo,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Rollmark API on http://%s:%d (tolerance %.2f)\n", host, port, cfg.Recognition.Tolerance)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
