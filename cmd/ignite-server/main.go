// Command ignite-server runs a standalone Ignite TCP server, exposing a
// single store.Store over the network protocol implemented in
// internal/netsrv.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iamNilotpal/ignite/internal/bolten"
	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/internal/netsrv"
	"github.com/iamNilotpal/ignite/internal/store"
	"github.com/iamNilotpal/ignite/pkg/filesys"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dataDir             string
		bindAddr            string
		engineKind          string
		compactionThreshold uint64
	)

	cmd := &cobra.Command{
		Use:   "ignite-server",
		Short: "Run the Ignite key-value store server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New("ignite-server")

			opts := options.NewDefaultOptions()
			options.WithDataDir(dataDir)(&opts)
			options.WithBindAddr(bindAddr)(&opts)
			options.WithCompactionThreshold(compactionThreshold)(&opts)
			options.WithEngineKind(options.EngineKind(engineKind))(&opts)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var s store.Store
			var err error
			switch opts.Engine {
			case options.EngineKindBolt:
				s, err = bolten.New(ctx, &bolten.Config{Options: &opts, Logger: log})
			default:
				s, err = engine.New(ctx, &engine.Config{Options: &opts, Logger: log})
			}
			if err != nil {
				return err
			}
			defer s.Close()

			srv := netsrv.New(opts.BindAddr, s, log)
			log.Infow("starting ignite-server", "addr", opts.BindAddr, "engine", opts.Engine, "dataDir", opts.DataDir)

			return srv.ListenAndServe(ctx)
		},
	}

	defaults := options.NewDefaultOptions()
	cmd.Flags().StringVar(&dataDir, "data-dir", defaults.DataDir, "directory (or, for the bolt engine, file path) holding Ignite's data")
	cmd.Flags().StringVar(&bindAddr, "addr", defaults.BindAddr, "TCP address to listen on")
	cmd.Flags().StringVar(&engineKind, "engine", string(defaults.Engine), "storage engine to use: log or bolt")
	cmd.Flags().Uint64Var(&compactionThreshold, "compaction-threshold", defaults.CompactionThreshold, "stale bytes tolerated before compaction runs (log engine only)")

	cmd.AddCommand(newBackupCmd())

	return cmd
}

// newBackupCmd copies a log-engine data directory elsewhere on disk. It
// operates directly on segment files and must not be run against a
// directory an ignite-server instance currently has open, since it takes
// no lock on the keydir or the active segment.
func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup SRC DEST",
		Short: "Copy a data directory's segment files to a new location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dest := args[0], args[1]

			exists, err := filesys.Exists(src)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("source data directory %s does not exist", src)
			}

			return filesys.CopyDir(src, dest)
		},
	}
}
