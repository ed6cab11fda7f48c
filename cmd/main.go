package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrh3k5/qrsvg/bridge"
	"github.com/jrh3k5/qrsvg/config"
	"github.com/jrh3k5/qrsvg/generator"
	"github.com/jrh3k5/qrsvg/logging"
	"github.com/jrh3k5/qrsvg/qr"
)

var (
	configFile string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "qrsvg",
	Short:         "Encode payloads as SVG QR codes and export them",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Read(configFile)
		if err != nil {
			return fmt.Errorf("failed to read configuration: %w", err)
		}

		logging.InitLogger(
			loaded.Logger.File,
			loaded.Logger.MaxSizeMB,
			loaded.Logger.MaxBackups,
			loaded.Logger.MaxAgeDays,
			loaded.Logger.Compress,
			loaded.Logger.Level,
		)
		if verbose {
			logging.SetLogLevel("debug")
		}

		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "file", "", "the location of the file to be read in as configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newGenerator builds the generator described by the loaded configuration.
func newGenerator(embedPayload bool) (*generator.Generator, error) {
	encoder, err := qr.NewEncoder(cfg.Encoder.Backend)
	if err != nil {
		return nil, err
	}

	qrOpts, err := cfg.QROptions()
	if err != nil {
		return nil, err
	}

	return generator.New(
		encoder,
		generator.WithQROptions(qrOpts),
		generator.WithSVGOptions(cfg.SVGOptions()),
		generator.WithEmbeddedPayload(embedPayload || cfg.Render.EmbedPayload),
	), nil
}

func newBridge() (*bridge.Bridge, error) {
	gen, err := newGenerator(false)
	if err != nil {
		return nil, err
	}

	return bridge.New(gen), nil
}
