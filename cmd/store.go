package cmd

import (
	"context"
	"fmt"
	"time"

	"giveaway-picker/internal/history"

	"github.com/spf13/cobra"
)

// storeCmd groups history backend utilities.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "History store utilities",
}

var storePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Ping the configured history backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := history.Open(ctx, cfg.Storage, cfg.Redis)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Ping(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", cfg.Storage.Backend)
		return nil
	},
}

func init() {
	storeCmd.AddCommand(storePingCmd)
	rootCmd.AddCommand(storeCmd)
}
