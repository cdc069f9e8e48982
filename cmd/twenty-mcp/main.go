package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/config"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/registry"
	"github.com/atilladeniz/twenty-crm-mcp-server/pkg/server"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configPath string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "twenty-mcp",
		Short: "MCP server exposing a Twenty CRM workspace as typed tools",
		Long: `twenty-mcp compiles a Twenty workspace's object metadata into per-object
tool contracts and serves them over the Model Context Protocol on stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies the CLI log level override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger writes human-readable logs to stderr. Stdout belongs to the
// MCP stdio transport.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			srv, err := server.New(cfg, Version, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newSchemaCommand() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the compiled schema registry without serving",
	}
	schemaCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the objects the registry would expose",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := buildSnapshot()
			if err != nil {
				return err
			}
			if snap.FromFallback() {
				fmt.Fprintln(os.Stderr, "warning: metadata unusable, showing the fallback contract set")
			}
			for _, contract := range snap.Contracts() {
				fmt.Printf("%-24s %-24s %d fields, %d relations\n",
					contract.NamePlural, contract.LabelPlural,
					len(contract.Properties), len(contract.Relations))
			}
			return nil
		},
	})
	schemaCmd.AddCommand(&cobra.Command{
		Use:   "describe <object>",
		Short: "Print one object's compiled contract as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := buildSnapshot()
			if err != nil {
				return err
			}
			contract := snap.Resolve(args[0])
			if contract == nil {
				return fmt.Errorf("unknown object %q", args[0])
			}
			encoded, err := json.MarshalIndent(contract, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(encoded))
			return nil
		},
	})
	return schemaCmd
}

// buildSnapshot compiles the registry once from the configured sources.
// The schema subcommands never touch the network, so no API key is needed.
func buildSnapshot() (*registry.Snapshot, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	builder := registry.NewBuilder(cfg.MetadataPath, cfg.OperationsPath, newLogger(cfg))
	return builder.Rebuild(), nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("twenty-mcp %s (commit %s, built %s, %s)\n",
				Version, GitCommit, BuildDate, runtime.Version())
		},
	}
}
