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

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the message hidden in an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		in, _ := cmd.Flags().GetString("in")
		passkey, _ := cmd.Flags().GetString("passkey")
		if cmd.Flags().Changed("allow-truncation") {
			cfg.Stego.AllowTruncation, _ = cmd.Flags().GetBool("allow-truncation")
		}

		data, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read stego image: %w", err)
		}

		img, _, err := imaging.NewImageDecoder(cfg.Stego.MaxPixels).DecodeImage(data)
		if err != nil {
			return err
		}

		lsb := stego.NewLSBSteganography(&models.StegoConfig{AllowTruncation: cfg.Stego.AllowTruncation})
		message, err := lsb.Extract(stego.NewNRGBAPixels(img))
		if err != nil {
			return fmt.Errorf("failed to extract message: %w", err)
		}

		if passkey != "" {
			plain, err := crypto.NewMessageCipher(passkey).Decrypt(message)
			if err != nil {
				return err
			}
			message = string(plain)
		}

		fmt.Fprintln(cmd.OutOrStdout(), message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("in", "i", "", "Stego image")
	extractCmd.Flags().String("passkey", "", "Decrypt the extracted message with this passkey")
	extractCmd.Flags().Bool("allow-truncation", false, "Return a truncated message instead of failing when the image is too small")
	extractCmd.MarkFlagRequired("in")
}
