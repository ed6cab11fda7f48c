package main

import (
	"github.com/mdp/qrterminal"
	"github.com/spf13/cobra"
	rscqr "rsc.io/qr"
)

var showCmd = &cobra.Command{
	Use:   "show [data]",
	Short: "Print data as a QR code in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := payloadFrom(args)
		if err != nil {
			return err
		}

		opts, err := cfg.QROptions()
		if err != nil {
			return err
		}

		// qr.Level and rsc.io/qr share the L, M, Q, H ordering.
		qrterminal.Generate(data, rscqr.Level(opts.Level), cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
