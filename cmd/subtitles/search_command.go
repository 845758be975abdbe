package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/moviereview/subtitles/internal/config"
	"github.com/moviereview/subtitles/internal/models"
)

func newSearchCommand() *cobra.Command {
	var req models.SearchRequest
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search every configured provider for subtitles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				req.Query = args[0]
			}

			a, err := newApp(config.GetConfig())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.searcher.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				_, err = fmt.Fprintln(out, string(result.Body))
				return err
			}
			if len(result.Subtitles) == 0 {
				_, err = fmt.Fprintln(out, "No subtitles found")
				return err
			}
			_, err = fmt.Fprintln(out, renderSubtitles(result.Subtitles))
			return err
		},
	}

	cmd.Flags().StringVar(&req.IMDBID, "imdb", "", "IMDB id, e.g. tt0133093")
	cmd.Flags().IntVar(&req.Season, "season", 0, "Season number")
	cmd.Flags().IntVar(&req.Episode, "episode", 0, "Episode number")
	cmd.Flags().StringVarP(&req.Language, "language", "l", "", "ISO 639-1 language code")
	cmd.Flags().StringVar(&req.MovieHash, "hash", "", "Video file hash")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw JSON response")

	return cmd
}

func renderSubtitles(subs []models.Subtitle) string {
	rows := lo.Map(subs, func(s models.Subtitle, i int) []string {
		size := ""
		if s.Size > 0 {
			size = humanize.Bytes(uint64(s.Size))
		}
		return []string{
			strconv.Itoa(i + 1),
			s.Source.String(),
			s.Language,
			s.Name,
			s.Format,
			size,
			humanize.Comma(int64(s.DownloadCount)),
			strconv.FormatFloat(s.Score, 'f', 1, 64),
		}
	})

	return renderTable(
		[]string{"#", "Source", "Lang", "Release", "Format", "Size", "Downloads", "Score"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}
