package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"giveaway-picker/internal/export"
	"giveaway-picker/internal/giveaway"

	"github.com/spf13/cobra"
)

var (
	pickWinners int
	pickFilter  string
	pickUser    string
	pickSeed    uint64
	pickFormat  string
)

var pickCmd = &cobra.Command{
	Use:   "pick <platform> <post_url>",
	Short: "Draw giveaway winners from a post's comments",
	Example: `  giveaway-picker pick instagram https://www.instagram.com/p/CxYz123/ -n 3 --exclude spam,promo
  giveaway-picker pick youtube "https://youtu.be/dQw4w9WgXcQ" --format csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		a, err := newApp(ctx, GetConfig())
		if err != nil {
			return err
		}
		defer a.close()

		sel := giveaway.NewSelector()
		if cmd.Flags().Changed("seed") {
			sel = giveaway.NewSeededSelector(pickSeed)
		}
		res, err := a.drawer(sel).Draw(ctx, giveaway.Request{
			Platform:       args[0],
			PostURL:        args[1],
			WinnerCount:    pickWinners,
			FilterKeywords: pickFilter,
			UserID:         pickUser,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch pickFormat {
		case "", "text":
			fmt.Fprintf(out, "%s post %s (%s): %d fetched, %d after filters, %d eligible\n",
				res.Platform, res.PostID, res.Source, res.Fetched, res.CommentsAnalyzed, res.Eligible)
			if res.FetchError != "" {
				fmt.Fprintf(os.Stderr, "warning: live fetch failed (%s), demo comments were used\n", res.FetchError)
			}
			for _, w := range res.Winners {
				fmt.Fprintf(out, "%d. @%s: %s\n", w.Position, w.Username, w.Text)
			}
			if res.Record != nil {
				fmt.Fprintf(out, "saved as %s\n", res.Record.ID)
			}
			return nil
		case "result":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		default:
			f, err := export.ParseFormat(pickFormat)
			if err != nil {
				return err
			}
			return export.Winners(out, f, res.Winners)
		}
	},
}

func init() {
	pickCmd.Flags().IntVarP(&pickWinners, "winners", "n", 1, "number of winners to draw")
	pickCmd.Flags().StringVar(&pickFilter, "exclude", "", "comma-separated keywords; matching comments are excluded")
	pickCmd.Flags().StringVar(&pickUser, "user", "", "save the draw to this user's history")
	pickCmd.Flags().Uint64Var(&pickSeed, "seed", 0, "seed for a reproducible draw")
	pickCmd.Flags().StringVar(&pickFormat, "format", "text", "output: text, result (full JSON), csv or json (winners only)")
	rootCmd.AddCommand(pickCmd)
}
