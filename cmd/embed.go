package cmd

import (
	"fmt"
	"os"

	"stegochat-backend/crypto"
	"stegochat-backend/imaging"
	"stegochat-backend/models"
	"stegochat-backend/stego"

	"github.com/spf13/cobra"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Embed a message into an image and write a PNG",
	Example: `  stegochat embed --in cover.png --out stego.png --message "meet at noon"
  stegochat embed --in cover.jpg --out stego.png --message "hi" --passkey secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		in, _ := cmd.Flags().GetString("in")
		out, _ := cmd.Flags().GetString("out")
		message, _ := cmd.Flags().GetString("message")
		passkey, _ := cmd.Flags().GetString("passkey")

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read cover image: %w", err)
		}

		payload := []byte(message)
		if passkey != "" {
			if err := crypto.ValidateKey(passkey); err != nil {
				return fmt.Errorf("invalid passkey: %w", err)
			}
			sealed, err := crypto.NewMessageCipher(passkey).Encrypt(payload)
			if err != nil {
				return err
			}
			payload = []byte(sealed)
		}

		original, metadata, err := imaging.NewImageDecoder(cfg.Stego.MaxPixels).DecodeImage(data)
		if err != nil {
			return err
		}

		stegoImage := imaging.ToNRGBA(original)
		lsb := stego.NewLSBSteganography(&models.StegoConfig{AllowTruncation: cfg.Stego.AllowTruncation})
		if err := lsb.Embed(stego.NewNRGBAPixels(stegoImage), payload); err != nil {
			return fmt.Errorf("failed to embed message: %w", err)
		}

		output, err := imaging.EncodePNG(stegoImage)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, output, 0644); err != nil {
			return fmt.Errorf("failed to write stego image: %w", err)
		}

		if metadata.Lossy {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %s cover written as PNG\n", metadata.Format)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Embedded %d bits into %s (PSNR %s dB)\n",
			len(payload)*8, out, imaging.FormatPSNR(imaging.CalculatePSNR(original, stegoImage)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().StringP("in", "i", "", "Cover image (PNG, GIF, BMP, TIFF, WebP or JPEG)")
	embedCmd.Flags().StringP("out", "o", "", "Output PNG path")
	embedCmd.Flags().StringP("message", "m", "", "Message to embed")
	embedCmd.Flags().String("passkey", "", "Encrypt the message with this passkey before embedding")
	embedCmd.MarkFlagRequired("in")
	embedCmd.MarkFlagRequired("out")
}
