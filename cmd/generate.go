package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jrh3k5/qrsvg/bridge"
	"github.com/jrh3k5/qrsvg/logging"
)

var (
	generateOut   string
	generateEmbed bool
)

// promptPayload asks for the payload when none is given on the command line.
var promptPayload = func() (string, error) {
	prompt := promptui.Prompt{
		Label: "Payload",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("the payload must not be empty")
			}
			return nil
		},
	}

	return prompt.Run()
}

var generateCmd = &cobra.Command{
	Use:   "generate [data]",
	Short: "Encode data as an SVG QR code",
	Long:  "Encode data as an SVG QR code. The SVG is printed unless --out names a file to export it to. Without data, the payload is prompted for.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := payloadFrom(args)
		if err != nil {
			return err
		}

		gen, err := newGenerator(generateEmbed)
		if err != nil {
			return err
		}
		b := bridge.New(gen)

		doc, err := b.Generate(data)
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}

		if generateOut == "" {
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		}

		if err := b.Export(doc, generateOut); err != nil {
			return fmt.Errorf("failed to export QR code: %w", err)
		}

		logging.Info("Exported QR code", "path", generateOut, "bytes", len(doc))
		return nil
	},
}

func payloadFrom(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	data, err := promptPayload()
	if err != nil {
		return "", fmt.Errorf("failed to read payload: %w", err)
	}

	return data, nil
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "the file to export the SVG to")
	generateCmd.Flags().BoolVar(&generateEmbed, "embed", false, "embed the payload in the SVG <desc> element")
	rootCmd.AddCommand(generateCmd)
}
