package cmd

import (
	"errors"
	"fmt"
	"time"

	"giveaway-picker/internal/auth"

	"github.com/spf13/cobra"
)

var tokenTTL string

var tokenCmd = &cobra.Command{
	Use:   "token <user_id>",
	Short: "Issue a development bearer token for the HTTP API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Auth.JWTSecret == "" {
			return errors.New("auth.jwt_secret (or JWT_SECRET) is not set")
		}
		raw := cfg.Auth.TokenTTL
		if tokenTTL != "" {
			raw = tokenTTL
		}
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid token ttl: %w", err)
		}
		tok, exp, err := auth.Issuer{Secret: []byte(cfg.Auth.JWTSecret)}.Issue(args[0], ttl, time.Time{})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenTTL, "ttl", "", "token lifetime (default: auth.token_ttl)")
	rootCmd.AddCommand(tokenCmd)
}
