package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/langtool"
)

var langtoolCmd = &cobra.Command{
	Use:   "langtool",
	Short: "Manage the LanguageTool container",
	Long: `Manage the LanguageTool grammar-service container lifecycle.

Grammar correction of assembled text runs against a local LanguageTool
server in a Docker container.

Examples:
  skanbot langtool start   # Start the LanguageTool container
  skanbot langtool stop    # Stop the container
  skanbot langtool status  # Check container status
  skanbot langtool logs    # View container logs`,
}

var langtoolStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the LanguageTool container",
	Long: `Start the LanguageTool container.

If the container doesn't exist, it will be created and started.
If it exists but is stopped, it will be started.
If it's already running, this is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		fmt.Println("Starting LanguageTool...")
		if err := mgr.Start(ctx); err != nil {
			return fmt.Errorf("failed to start LanguageTool: %w", err)
		}

		fmt.Printf("LanguageTool is running at %s\n", mgr.URL())
		return nil
	},
}

var langtoolStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the LanguageTool container",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		fmt.Println("Stopping LanguageTool...")
		if err := mgr.Stop(ctx); err != nil {
			return fmt.Errorf("failed to stop LanguageTool: %w", err)
		}

		fmt.Println("LanguageTool stopped")
		return nil
	},
}

var langtoolStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show LanguageTool container status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		status, err := mgr.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get status: %w", err)
		}

		switch status {
		case langtool.StatusRunning:
			fmt.Printf("Status: %s\n", status)
			fmt.Printf("URL: %s\n", mgr.URL())

			client := langtool.NewClient(mgr.URL(), "", newLogger())
			if err := client.Health(ctx); err != nil {
				fmt.Printf("Health: unhealthy (%v)\n", err)
			} else {
				fmt.Println("Health: healthy")
			}
		case langtool.StatusStopped:
			fmt.Printf("Status: %s (use 'skanbot langtool start' to start)\n", status)
		case langtool.StatusNotFound:
			fmt.Printf("Status: %s (use 'skanbot langtool start' to create)\n", status)
		default:
			fmt.Printf("Status: %s\n", status)
		}

		return nil
	},
}

var langtoolLogsTail string

var langtoolLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show LanguageTool container logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		logs, err := mgr.Logs(cmd.Context(), langtoolLogsTail)
		if err != nil {
			return fmt.Errorf("failed to get logs: %w", err)
		}

		fmt.Print(logs)
		return nil
	},
}

var langtoolRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the LanguageTool container",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		fmt.Println("Removing LanguageTool container...")
		if err := mgr.Remove(cmd.Context()); err != nil {
			return fmt.Errorf("failed to remove container: %w", err)
		}

		fmt.Println("LanguageTool container removed")
		return nil
	},
}

var langtoolWaitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for LanguageTool to be ready",
	Long: `Wait for LanguageTool to be ready to accept requests.

Useful in scripts to ensure the grammar service is fully started before
running recognition.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := getLangToolManager()
		if err != nil {
			return err
		}
		defer mgr.Close()

		timeout, _ := cmd.Flags().GetDuration("timeout")
		fmt.Printf("Waiting for LanguageTool (timeout: %s)...\n", timeout)

		if err := mgr.WaitReady(cmd.Context(), timeout); err != nil {
			return fmt.Errorf("LanguageTool not ready: %w", err)
		}

		fmt.Println("LanguageTool is ready")
		return nil
	},
}

func init() {
	langtoolCmd.AddCommand(langtoolStartCmd)
	langtoolCmd.AddCommand(langtoolStopCmd)
	langtoolCmd.AddCommand(langtoolStatusCmd)
	langtoolCmd.AddCommand(langtoolLogsCmd)
	langtoolCmd.AddCommand(langtoolRemoveCmd)
	langtoolCmd.AddCommand(langtoolWaitCmd)

	langtoolLogsCmd.Flags().StringVar(&langtoolLogsTail, "tail", "100", "Number of lines to show from the end")
	langtoolWaitCmd.Flags().Duration("timeout", 90*time.Second, "Timeout waiting for LanguageTool")

	rootCmd.AddCommand(langtoolCmd)
}

// getLangToolManager creates a DockerManager from the current config.
func getLangToolManager() (*langtool.DockerManager, error) {
	cm, err := getConfig()
	if err != nil {
		return nil, err
	}
	cfg := cm.Get()

	return langtool.NewDockerManager(langtool.DockerConfig{
		ContainerName: cfg.LangTool.ContainerName,
		Image:         cfg.LangTool.Image,
		HostPort:      cfg.LangTool.Port,
	})
}
