package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <svg-file>",
	Short: "Print the payload of a generated SVG QR code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file '%s': %w", args[0], err)
		}

		b, err := newBridge()
		if err != nil {
			return err
		}

		payload, err := b.Decode(string(contents))
		if err != nil {
			return fmt.Errorf("failed to decode '%s': %w", args[0], err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), payload)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
