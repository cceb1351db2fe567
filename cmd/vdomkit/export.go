package main

import (
	"context"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/snapshot"
	"github.com/vango-dev/vdomkit/pkg/render"
)

func exportCmd(g *globals) *cobra.Command {
	var (
		clicks []string
		format string
		dir    string
		bucket string
	)

	cmd := &cobra.Command{
		Use:   "export [app]",
		Short: "Write a snapshot of a demo app",
		Long: `Mount a demo app, fire the given clicks and write a snapshot of
the result. Snapshots go to snapshot.bucket on S3 when one is configured and
to snapshot.dir otherwise.

Examples:
  vdomkit export todo
  vdomkit export counter --click .0.0 --format msgpack
  vdomkit export buttons --bucket my-bucket`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if format != "" {
				cfg.Snapshot.Format = format
			}
			if dir != "" {
				cfg.Snapshot.Dir = dir
			}
			if bucket != "" {
				cfg.Snapshot.Bucket = bucket
			}
			f, err := snapshot.ParseFormat(cfg.Snapshot.Format)
			if err != nil {
				return err
			}

			name := "hello"
			if len(args) > 0 {
				name = args[0]
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			m, err := mountApp(name, clicks,
				render.WithLogger(logger),
				render.WithMiddleware(cycleMiddleware(cfg, logger, prometheus.NewRegistry())...),
			)
			if err != nil {
				return err
			}

			snap, err := snapshot.Capture(name, m.renderer, m.doc)
			if err != nil {
				return err
			}
			data, contentType, err := snap.Encode(f)
			if err != nil {
				return err
			}

			key := snap.Key(f)
			store, err := storeFor(cmd.Context(), cfg.Snapshot)
			if err != nil {
				return err
			}
			if err := store.Put(cmd.Context(), key, data, contentType); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Exported %s (%d bytes)", destination(cfg.Snapshot, key), len(data))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&clicks, "click", nil, "Address to click before capturing (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Snapshot format: html or msgpack (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from config)")

	return cmd
}

func storeFor(ctx context.Context, cfg config.SnapshotConfig) (snapshot.Store, error) {
	if cfg.Bucket != "" {
		client, err := snapshot.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return snapshot.NewS3Store(client, cfg.Bucket, cfg.Prefix), nil
	}
	return snapshot.NewFileStore(cfg.Dir), nil
}

func destination(cfg config.SnapshotConfig, key string) string {
	if cfg.Bucket != "" {
		prefix := cfg.Prefix
		if prefix != "" && prefix[len(prefix)-1] != '/' {
			prefix += "/"
		}
		return "s3://" + cfg.Bucket + "/" + prefix + key
	}
	return filepath.Join(cfg.Dir, key)
}
