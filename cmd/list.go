package main

import (
	"fmt"
	"io"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/jrh3k5/qrsvg/archive"
	"github.com/jrh3k5/qrsvg/scan"
)

var listPick bool

// pickEntry lets the user choose one of the listed entries.
var pickEntry = func(entries []archive.Entry) (int, error) {
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = describeEntry(entry)
	}

	prompt := promptui.Select{
		Label: "Saved match",
		Items: labels,
		Size:  10,
	}

	index, _, err := prompt.Run()
	return index, err
}

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List saved match QR codes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Archive.Dir
		if len(args) > 0 {
			dir = args[0]
		}

		entries, err := archive.List(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(out, "No saved matches in '%s'\n", dir)
			return nil
		}

		if !listPick {
			for _, entry := range entries {
				fmt.Fprintln(out, describeEntry(entry))
			}
			return nil
		}

		index, err := pickEntry(entries)
		if err != nil {
			return fmt.Errorf("failed to select a saved match: %w", err)
		}

		return printPayload(out, entries[index])
	},
}

func describeEntry(entry archive.Entry) string {
	savedAt := "unknown time"
	if at, ok := entry.SavedAt(); ok {
		savedAt = at.Format(time.DateTime)
	}

	return fmt.Sprintf("Team: %s, Match: %s, Saved: %s (%s)", entry.TeamNumber, entry.MatchNumber, savedAt, entry.Name)
}

// printPayload prints the embedded payload, falling back to decoding the
// symbol for files saved without one.
func printPayload(out io.Writer, entry archive.Entry) error {
	payload := entry.Payload
	if payload == "" {
		decoded, err := scan.DecodeSVG(entry.SVG)
		if err != nil {
			return fmt.Errorf("failed to decode '%s': %w", entry.Name, err)
		}
		payload = decoded
	}

	fmt.Fprintln(out, payload)
	return nil
}

func init() {
	listCmd.Flags().BoolVar(&listPick, "pick", false, "choose a saved match and print its payload")
	rootCmd.AddCommand(listCmd)
}
