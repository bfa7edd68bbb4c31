package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"stegochat-backend/handlers"
	"stegochat-backend/imaging"
	"stegochat-backend/models"
	"stegochat-backend/pngparser"
	"stegochat-backend/stego"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect",
	Aliases: []string{"capacity"},
	Short:   "Show image format, PNG structure and message capacity as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		in, _ := cmd.Flags().GetString("in")
		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		img, metadata, err := imaging.NewImageDecoder(cfg.Stego.MaxPixels).DecodeImage(data)
		if err != nil {
			return err
		}

		capacity, err := stego.CalculateCapacity(stego.NewNRGBAPixels(img))
		if err != nil {
			return err
		}

		resp := models.InspectResponse{
			Success:  true,
			Metadata: metadata,
			Capacity: handlers.CapacityInfo(capacity),
		}
		if metadata.Format == "png" {
			file, err := pngparser.ParsePNG(data)
			if err != nil {
				return err
			}
			resp.PNG = pngparser.Summary(file)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("in", "i", "", "Image to inspect")
	inspectCmd.MarkFlagRequired("in")
}
