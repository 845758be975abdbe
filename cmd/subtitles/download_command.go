package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

func newDownloadCommand() *cobra.Command {
	var format string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Download a subtitle file and print its cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(config.GetConfig())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.downloader.DownloadSubtitle(cmd.Context(), models.DownloadRequest{
				URL:    strings.TrimSpace(args[0]),
				Format: format,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Cues)
			}
			return writeCues(out, result.Cues)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Container format: gz, zip, rar or empty for plain text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print cues as JSON")

	return cmd
}

// writeCues prints cues in SRT layout.
func writeCues(w io.Writer, cues []models.Cue) error {
	for _, c := range cues {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n", c.Index, formatOffset(c.Start), formatOffset(c.End), c.Text); err != nil {
			return err
		}
	}
	return nil
}

func formatOffset(ms int64) string {
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}
