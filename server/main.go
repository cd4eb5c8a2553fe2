package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fishy-flock/logging"
	"fishy-flock/sim"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fishy-flock",
		Short: "Fish flocking simulation with shark evasion",
		Long: `fishy-flock simulates a school of fish that separate, align and cohere,
flee from sharks, and steer clear of the walls of their tank.

Run 'fishy-flock serve' to stream frames to websocket viewers or
'fishy-flock simulate' to run headless and print population summaries.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed (overrides config)")
	rootCmd.PersistentFlags().String("habitat", "", "Habitat shape: circle or rectangle")
	rootCmd.PersistentFlags().Bool("spatial-index", false, "Use the quadtree perception scan")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newSimulateCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fishy-flock version %s\n", version)
		},
	}
}

// loadAppConfig resolves defaults, file, environment and flags, then validates
func loadAppConfig(cmd *cobra.Command) (*AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		config.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		config.Logging.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("seed") {
		config.Sim.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("habitat") {
		habitat, _ := flags.GetString("habitat")
		config.Sim.Habitat = sim.Habitat(habitat)
	}
	if flags.Changed("spatial-index") {
		config.Sim.SpatialIndex, _ = flags.GetBool("spatial-index")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		config.Server.Addr, _ = flags.GetString("addr")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// newWorld builds and populates a world from config
func newWorld(config *AppConfig, logger *slog.Logger) (*sim.World, error) {
	world, err := sim.NewWorld(config.Sim, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}
	world.Populate()
	return world, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the simulation and stream frames to websocket viewers",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadAppConfig(cmd)
			if err != nil {
				return err
			}
			logger := logging.NewLogger(config.Logging.Level, config.Logging.Format, os.Stderr)

			world, err := newWorld(config, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hub := NewHub(world, config.Server.BroadcastRate, logger)
			world.Subscribe(hub)

			go world.Run(ctx)
			go hub.BroadcastLoop(ctx)

			return serve(ctx, config.Server.Addr, NewMux(world, hub), logger)
		},
	}
	cmd.Flags().String("addr", DefaultAddr, "Listen address")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
func serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	server := &http.Server{Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("starting server", "addr", ln.Addr().String(), "websocket", "/ws", "stats", "/stats")
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
