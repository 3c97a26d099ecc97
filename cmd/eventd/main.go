package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cuemby/eventchannel/pkg/config"
	"github.com/cuemby/eventchannel/pkg/log"
	"github.com/cuemby/eventchannel/pkg/server"
	"github.com/spf13/cobra"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "eventd",
	Short: "eventd - push-model event channel server",
	Long: `eventd hosts named event channels. Producers push opaque payloads
to a channel; eventd pushes every event to the channel's subscribed
consumers and counts it delivered once at least one of them accepts it.

Persistent channels keep events in a local bbolt database until they are
delivered, and failed events can be reset for retry through the admin
channel.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"eventd version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(watchCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the event channel server",
	Long: `Run the event channel server.

Channels are read from the YAML configuration file. Flags override the
matching server settings of the file.

Examples:
  # Run with a configuration file
  eventd serve --config eventd.yaml

  # Run with defaults and debug logging
  eventd serve --log-level debug`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to the YAML configuration file")
	cmd.Flags().String("grpc-addr", "", "Address for the gRPC API")
	cmd.Flags().String("http-addr", "", "Address for health and metrics")
	cmd.Flags().String("data-dir", "", "Directory of the event database")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().Bool("log-json", false, "Write logs as JSON")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log.Init(cfg.LogConfig())

	srv, err := server.New(cfg, Version)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Start(); err != nil {
		_ = srv.Stop(context.Background())
		return fmt.Errorf("failed to start server: %w", err)
	}

	fmt.Printf("✓ eventd %s running\n", Version)
	fmt.Printf("  gRPC API: %s\n", srv.GRPCAddr())
	fmt.Printf("  Health/metrics: %s\n", srv.HTTPAddr())
	fmt.Printf("  Data directory: %s\n", cfg.Server.DataDir)
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		return err
	}
	fmt.Println("✓ Shutdown complete")
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if v, _ := cmd.Flags().GetString("grpc-addr"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v, _ := cmd.Flags().GetString("http-addr"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.Server.DataDir = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Server.LogLevel = v
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Server.LogJSON, _ = cmd.Flags().GetBool("log-json")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
