package cli

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/mobile-next/ghostcli/commands"
	"github.com/mobile-next/ghostcli/types"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform overlay commands",
	Long:  `Commands for working with the transform overlay image.`,
}

var transformPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render an image under a replayed transform",
	Long:  `Captures the given image into transform mode, replays the event script over the overlay and writes the transformed image. Use '-o -' to write the image to stdout.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var events []types.TouchEvent
		if eventsFile != "" {
			loaded, err := commands.LoadEvents(eventsFile)
			if err != nil {
				return finish(commands.NewErrorResponse(err))
			}
			events = loaded
		}

		response := commands.TransformPreviewCommand(commands.TransformPreviewRequest{
			ImagePath:  imagePath,
			Events:     events,
			Format:     previewFormat,
			Quality:    previewJpegQuality,
			OutputPath: previewOutputPath,
		})

		// Handle stdout output for binary data
		if previewOutputPath == "-" && response.Status == "ok" {
			if preview, ok := response.Data.(commands.TransformPreviewResponse); ok && preview.Data != "" {
				imageBytes, err := base64.StdEncoding.DecodeString(preview.Data)
				if err != nil {
					return fmt.Errorf("failed to decode image data: %v", err)
				}
				if _, err := os.Stdout.Write(imageBytes); err != nil {
					return fmt.Errorf("failed to write to stdout: %v", err)
				}
				return nil
			}
		}

		return finish(response)
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
	transformCmd.AddCommand(transformPreviewCmd)

	transformPreviewCmd.Flags().StringVar(&imagePath, "image", "", "image to capture into transform mode")
	transformPreviewCmd.Flags().StringVar(&eventsFile, "file", "", "event script to replay over the overlay, or '-' for stdin")
	transformPreviewCmd.Flags().StringVarP(&previewOutputPath, "output", "o", "", "output file path (e.g., preview.png, or '-' for stdout)")
	transformPreviewCmd.Flags().StringVarP(&previewFormat, "format", "f", "png", "output format (png or jpeg)")
	transformPreviewCmd.Flags().IntVarP(&previewJpegQuality, "quality", "q", 0, "JPEG quality (1-100, defaults to the configured quality)")
	_ = transformPreviewCmd.MarkFlagRequired("image")
}
