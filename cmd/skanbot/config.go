package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/api"
	"github.com/skanbot/skanbot/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage skanbot configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Write the default configuration to ~/.skanbot/config.yaml.

Fails if the file already exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := getHome()
		if err != nil {
			return err
		}
		if h.ConfigExists() {
			return fmt.Errorf("config already exists at %s", h.ConfigPath())
		}
		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := getConfig()
		if err != nil {
			return err
		}
		return api.OutputTo(os.Stdout, api.GetOutputFormat(), cm.Get())
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(configCmd)
}
