package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"giveaway-picker/internal/ai"
	"giveaway-picker/internal/hashtag"

	"github.com/spf13/cobra"
)

var (
	hashtagCount       int
	hashtagDescription string
	hashtagAI          bool
	hashtagNoPopular   bool
	hashtagNoTrending  bool
)

var hashtagsCmd = &cobra.Command{
	Use:       "hashtags [niche]",
	Short:     "Generate TikTok hashtags for a niche",
	Long:      "Niches: " + strings.Join(hashtag.Niches(), ", "),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: hashtag.Niches(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		niche := "general"
		if len(args) == 1 {
			niche = args[0]
		}
		gen := &hashtag.Generator{}
		if hashtagAI {
			w, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL})
			if err != nil {
				slog.Warn("hashtags: ai disabled", "error", err)
			} else {
				gen.AI = w
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		res := gen.Generate(ctx, hashtag.Options{
			Niche:           niche,
			Description:     hashtagDescription,
			Count:           hashtagCount,
			IncludeNiche:    true,
			IncludePopular:  !hashtagNoPopular,
			IncludeTrending: !hashtagNoTrending,
			UseAI:           hashtagAI,
		})
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Hashtags, " "))
		return nil
	},
}

func init() {
	hashtagsCmd.Flags().IntVarP(&hashtagCount, "count", "n", hashtag.DefaultCount, "number of hashtags (10, 20 or 30)")
	hashtagsCmd.Flags().StringVarP(&hashtagDescription, "description", "d", "", "video description, used for AI suggestions")
	hashtagsCmd.Flags().BoolVar(&hashtagAI, "ai", false, "prepend AI suggestions (needs openai.api_key)")
	hashtagsCmd.Flags().BoolVar(&hashtagNoPopular, "no-popular", false, "skip the popular set")
	hashtagsCmd.Flags().BoolVar(&hashtagNoTrending, "no-trending", false, "skip the trending set")
	rootCmd.AddCommand(hashtagsCmd)
}
