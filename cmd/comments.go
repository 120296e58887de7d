package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"giveaway-picker/internal/export"

	"github.com/spf13/cobra"
)

var (
	commentsFormat string
	commentsOut    string
)

var commentsCmd = &cobra.Command{
	Use:   "comments <platform> <post_url>",
	Short: "Fetch a post's comments and export them as CSV or JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(commentsFormat)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		a, err := newApp(ctx, GetConfig())
		if err != nil {
			return err
		}
		defer a.close()

		postID, ok := a.comments.ExtractPostID(args[1], args[0])
		if !ok {
			return fmt.Errorf("no %s post id found in %q", args[0], args[1])
		}
		res := a.comments.GetComments(ctx, args[0], postID)
		if !res.Success {
			return errors.New(res.Error)
		}
		fmt.Fprintf(os.Stderr, "%d comments (%s)\n", len(res.Data), res.Source)

		out := cmd.OutOrStdout()
		if commentsOut != "" {
			file, err := os.Create(commentsOut)
			if err != nil {
				return err
			}
			defer file.Close()
			out = file
		}
		return export.Comments(out, f, res.Data)
	},
}

func init() {
	commentsCmd.Flags().StringVarP(&commentsFormat, "format", "f", "csv", "csv or json")
	commentsCmd.Flags().StringVarP(&commentsOut, "output", "o", "", "write to file instead of stdout")
	rootCmd.AddCommand(commentsCmd)
}
