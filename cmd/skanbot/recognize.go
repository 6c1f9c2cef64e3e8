package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skanbot/skanbot/internal/api"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image-or-pdf>",
	Short: "Recognize text on a photo or PDF document",
	Long: `Recognize text on a photo or a scanned PDF document.

The image is run through every recognition template, the candidates are
scored and assembled, and the winning text is printed after garbage
filtering. When cleanup is enabled, a cleaned rendition follows.

Examples:
  skanbot recognize photo.jpg
  skanbot recognize scan.pdf -o json`,
	Args: cobra.ExactArgs(1),
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

		results, err := svc.ProcessFile(ctx, uuid.NewString(), args[0])
		if err != nil {
			return err
		}
		return api.Output(results)
	},
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
}
