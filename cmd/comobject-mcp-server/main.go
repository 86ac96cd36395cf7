package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/negokaz/comobject-mcp-server/internal/apartment"
	"github.com/negokaz/comobject-mcp-server/internal/config"
	"github.com/negokaz/comobject-mcp-server/internal/oleauto"
	"github.com/negokaz/comobject-mcp-server/internal/server"
	"github.com/negokaz/comobject-mcp-server/internal/session"
	"github.com/negokaz/comobject-mcp-server/internal/tools"
)

var version = "dev"

var (
	configFile string
	logLevel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "comobject-mcp-server",
		Short:         "MCP server for driving COM automation objects",
		Long:          `comobject-mcp-server exposes late-bound automation objects (Word, Excel, LibreOffice) to MCP clients over stdio.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (TOML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn or error")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	// stdout carries the MCP transport
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "comobject-mcp-server",
		Level:  hclog.LevelFromString(cfg.LogLevel),
		Output: os.Stderr,
	})

	apt, err := apartment.Start(apartment.Options{
		Init:   oleauto.Initialize,
		Uninit: oleauto.Uninitialize,
		Logger: logger.Named("apartment"),
	})
	if err != nil {
		return err
	}
	sess := session.New(oleauto.NewBinder(), cfg.AllowedProgIDs, logger.Named("session"))
	host := tools.NewHost(apt, sess, tools.HostOptions{
		CallTimeout:   cfg.CallTimeout,
		AttachRunning: cfg.AttachRunning,
		Logger:        logger.Named("tools"),
	})
	srv := server.New(version, host)

	logger.Info("starting", "version", version, "allowed_prog_ids", cfg.AllowedProgIDs)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := srv.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	err = g.Wait()

	if cerr := apt.Close(sess.Close); cerr != nil {
		logger.Warn("failed to release automation objects", "error", cerr)
	}
	logger.Info("stopped")
	return err
}
