package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and recognize new files",
	Long: `Watch the home inbox directory (~/.skanbot/inbox) and run the
recognition pipeline over every image or PDF dropped into it.

Runs until interrupted with Ctrl+C.`,
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

		svc, closeSvc := buildService(cm.Get(), h, logger, os.Stdout)
		defer closeSvc()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		if err := watcher.Add(h.InboxPath()); err != nil {
			return err
		}
		logger.Info("watching inbox", "path", h.InboxPath())

		for {
			select {
			case <-ctx.Done():
				logger.Info("watch stopped")
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Create) || !isRecognizable(event.Name) {
					continue
				}
				logger.Info("new inbox file", "path", event.Name)
				if _, err := svc.ProcessFile(ctx, uuid.NewString(), event.Name); err != nil {
					logger.Error("recognition failed", "path", event.Name, "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Error("watch error", "error", err)
			}
		}
	},
}

// isRecognizable reports whether the file extension is one the pipeline
// accepts.
func isRecognizable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".pdf":
		return true
	}
	return false
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
