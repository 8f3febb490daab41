package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/crypto-monitor/internal/config"
	"github.com/JaimeStill/crypto-monitor/web/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

var (
	serviceEnv string
	backendURL string
)

// Execute runs the command tree. The root command serves.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "crypto-monitor",
		Short:        "Web front end for the crypto market monitor backend",
		SilenceUsage: true,
		RunE:         runServe,
		Args:         cobra.NoArgs,
	}

	root.PersistentFlags().StringVar(&serviceEnv, "env", "", "configuration overlay to apply (sets "+config.EnvServiceEnv+")")
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "backend base URL, overrides configuration")

	root.AddCommand(serveCmd(), routesCmd(), versionCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion())
			return nil
		},
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv, err := NewServer(cfg)
	if err != nil {
		return fmt.Errorf("server init failed: %w", err)
	}

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server start failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return srv.Shutdown(cfg.ShutdownTimeoutDuration())
}

func loadConfig() (*config.Config, error) {
	if serviceEnv != "" {
		if err := os.Setenv(config.EnvServiceEnv, serviceEnv); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("config finalize failed: %w", err)
	}

	if backendURL != "" {
		cfg.Backend.BaseURL = backendURL
		if err := cfg.Backend.Finalize(nil); err != nil {
			return nil, fmt.Errorf("backend: %w", err)
		}
	}
	if version != "" {
		cfg.Version = version
	}
	return cfg, nil
}

func printRoutes(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tVIEW\tTEMPLATE")
	for _, r := range app.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, r.Title, r.Template)
	}
	return tw.Flush()
}

func buildVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}
