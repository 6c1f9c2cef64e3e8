package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/api"
	"github.com/skanbot/skanbot/internal/garbage"
)

var garbageCmd = &cobra.Command{
	Use:   "garbage",
	Short: "Inspect and edit the garbage dictionary",
	Long: `Inspect and edit the learned garbage dictionary.

The pipeline learns lines it classifies as noise and filters them from
future results. Entries are never pruned automatically; use 'garbage
list' to review them and edit the JSON file by hand to remove entries.`,
}

var garbageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learned garbage lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getGarbageStore()
		if err != nil {
			return err
		}
		return api.Output(store.Load())
	},
}

var garbageAddCmd = &cobra.Command{
	Use:   "add <line> [line...]",
	Short: "Add lines to the garbage dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getGarbageStore()
		if err != nil {
			return err
		}
		if err := store.Learn(args); err != nil {
			return fmt.Errorf("failed to store garbage lines: %w", err)
		}
		fmt.Printf("Stored %d line(s)\n", len(args))
		return nil
	},
}

func init() {
	garbageCmd.AddCommand(garbageListCmd)
	garbageCmd.AddCommand(garbageAddCmd)

	rootCmd.AddCommand(garbageCmd)
}

func getGarbageStore() (*garbage.Store, error) {
	h, err := getHome()
	if err != nil {
		return nil, err
	}
	return garbage.NewStore(h.GarbagePath(), newLogger()), nil
}
