package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrh3k5/qrsvg/logging"
)

var exportCmd = &cobra.Command{
	Use:   "export <svg-file|-> <destination>",
	Short: "Write SVG text verbatim to a destination file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, destination := args[0], args[1]

		var contents []byte
		var err error
		if source == "-" {
			contents, err = io.ReadAll(cmd.InOrStdin())
		} else {
			contents, err = os.ReadFile(source)
		}
		if err != nil {
			return fmt.Errorf("failed to read SVG from '%s': %w", source, err)
		}

		b, err := newBridge()
		if err != nil {
			return err
		}

		if err := b.Export(string(contents), destination); err != nil {
			return fmt.Errorf("failed to export SVG: %w", err)
		}

		logging.Info("Exported SVG", "path", destination, "bytes", len(contents))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
