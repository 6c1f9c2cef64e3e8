package main

import (
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/cache"
	"github.com/skanbot/skanbot/internal/cache/disk"
	"github.com/skanbot/skanbot/internal/config"
)

var (
	cacheExportOut    string
	cacheExportUpload bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the recognized-answer cache",
}

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the answer cache to JSON",
	Long: `Export the answer cache to a JSON file under ~/.skanbot/exports.

With --upload, the export is also pushed to the configured remote disk.
The upload token comes from the cache.upload_token config value, which
may reference an environment variable with ${VAR} syntax.

Examples:
  skanbot cache export
  skanbot cache export --out /tmp/cache.json
  skanbot cache export --upload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger()

		h, err := getHome()
		if err != nil {
			return err
		}
		cm, err := getConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()

		store, err := cache.Open(h.CachePath(), cfg.Cache.FuzzyThreshold, logger)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		defer store.Close()

		out := cacheExportOut
		if out == "" {
			out = h.ExportPath("cache_export.json")
		}
		if err := store.ExportJSON(ctx, out); err != nil {
			return err
		}
		fmt.Printf("Cache exported to %s\n", out)

		if !cacheExportUpload {
			return nil
		}

		uploader, err := disk.NewUploader(disk.UploaderConfig{
			Token: config.ResolveEnvVars(cfg.Cache.UploadToken),
		}, logger)
		if err != nil {
			return fmt.Errorf("upload not configured: %w", err)
		}

		remote := path.Join(cfg.Cache.UploadDir, "cache_export.json")
		if err := uploader.Upload(ctx, out, remote); err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		fmt.Printf("Uploaded to %s\n", remote)
		return nil
	},
}

func init() {
	cacheExportCmd.Flags().StringVar(&cacheExportOut, "out", "", "Export file path (default: ~/.skanbot/exports/cache_export.json)")
	cacheExportCmd.Flags().BoolVar(&cacheExportUpload, "upload", false, "Upload the export to remote disk storage")

	cacheCmd.AddCommand(cacheExportCmd)
	rootCmd.AddCommand(cacheCmd)
}
