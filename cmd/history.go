package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"giveaway-picker/internal/history"

	"github.com/spf13/cobra"
)

var historyJSON bool

var historyCmd = &cobra.Command{
	Use:   "history <user_id>",
	Short: "List a user's saved giveaways",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := history.Open(ctx, cfg.Storage, cfg.Redis)
		if err != nil {
			return err
		}
		defer store.Close()

		recs, err := store.List(ctx, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(recs)
		}
		if len(recs) == 0 {
			fmt.Fprintln(out, "no giveaways")
			return nil
		}
		for _, r := range recs {
			names := make([]string, len(r.Winners))
			for i, w := range r.Winners {
				names[i] = "@" + w.Username
			}
			fmt.Fprintf(out, "%s  %s  %-9s %s  winners: %s\n",
				r.CreatedAt.Format(time.DateTime), r.ID, r.Platform, r.PostURL, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print records as JSON")
	rootCmd.AddCommand(historyCmd)
}
