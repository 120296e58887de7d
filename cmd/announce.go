package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"giveaway-picker/internal/ai"
	"giveaway-picker/internal/announce"
	"giveaway-picker/internal/config"
	"giveaway-picker/internal/history"
	"giveaway-picker/internal/model"

	"github.com/spf13/cobra"
)

var (
	announceRecordID string
	announceStdout   bool
	announceAttach   bool
	announceChannel  string
	announceAI       bool
)

var announceCmd = &cobra.Command{
	Use:   "announce",
	Short: "Render and publish winner announcements",
}

var announceRenderCmd = &cobra.Command{
	Use:   "render <user_id>",
	Short: "Render a saved giveaway as Markdown (latest unless --id is given)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		rec, err := findRecord(ctx, cfg, args[0], announceRecordID)
		if err != nil {
			return err
		}
		a := newAnnouncer(cfg)
		if announceStdout {
			md, err := a.Render(ctx, rec, "")
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		path, err := a.WriteFile(ctx, rec, cfg.Announce.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var announcePublishCmd = &cobra.Command{
	Use:   "publish <markdown_path|user_id>",
	Short: "Publish an announcement to the configured Quaily channel",
	Long: "If the argument is an existing Markdown file it is published as-is. Otherwise it is\n" +
		"treated as a user id and that user's latest (or --id) giveaway is rendered and published.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg.Announce.BaseURL == "" || cfg.Announce.APIKey == "" {
			return errors.New("announce config missing: set announce.base_url and announce.api_key in config.yaml")
		}
		if announceChannel != "" {
			cfg.Announce.Channel = announceChannel
		}
		if cfg.Announce.Channel == "" {
			return errors.New("no channel: set announce.channel or pass --channel")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		a := newAnnouncer(cfg)

		if _, err := os.Stat(args[0]); err == nil {
			doc, err := announce.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("read markdown: %w", err)
			}
			id, err := announce.PublishDocument(ctx, a.Client, doc, cfg.Announce.Channel)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published %s to %s (post %s)\n", args[0], cfg.Announce.Channel, id)
			return nil
		}

		rec, err := findRecord(ctx, cfg, args[0], announceRecordID)
		if err != nil {
			return err
		}
		id, err := a.Publish(ctx, rec, announceAttach)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published giveaway %s to %s (post %s)\n", rec.ID, cfg.Announce.Channel, id)
		return nil
	},
}

func newAnnouncer(cfg config.Config) *announce.Announcer {
	a := &announce.Announcer{
		Channel:  cfg.Announce.Channel,
		Title:    cfg.Announce.Title,
		Language: cfg.Announce.Language,
	}
	if cfg.Announce.BaseURL != "" && cfg.Announce.APIKey != "" {
		a.Client = announce.NewClient(cfg.Announce.BaseURL, cfg.Announce.APIKey, 20*time.Second)
	}
	if announceAI && cfg.OpenAI.APIKey != "" {
		if w, err := ai.NewOpenAI(ai.Config{APIKey: cfg.OpenAI.APIKey, Model: cfg.OpenAI.Model, BaseURL: cfg.OpenAI.BaseURL}); err == nil {
			a.Intro = w
		}
	}
	return a
}

func findRecord(ctx context.Context, cfg config.Config, userID, recordID string) (model.GiveawayRecord, error) {
	store, err := history.Open(ctx, cfg.Storage, cfg.Redis)
	if err != nil {
		return model.GiveawayRecord{}, err
	}
	defer store.Close()
	recs, err := store.List(ctx, userID)
	if err != nil {
		return model.GiveawayRecord{}, err
	}
	if len(recs) == 0 {
		return model.GiveawayRecord{}, fmt.Errorf("user %s has no saved giveaways", userID)
	}
	if recordID == "" {
		return recs[0], nil
	}
	for _, r := range recs {
		if r.ID == recordID {
			return r, nil
		}
	}
	return model.GiveawayRecord{}, fmt.Errorf("giveaway %s not found for user %s", recordID, userID)
}

func init() {
	announceCmd.PersistentFlags().StringVar(&announceRecordID, "id", "", "giveaway record id (default: latest)")
	announceCmd.PersistentFlags().BoolVar(&announceAI, "ai", false, "add an AI-written intro (needs openai.api_key)")
	announceRenderCmd.Flags().BoolVar(&announceStdout, "stdout", false, "print instead of writing to announce.output_dir")
	announcePublishCmd.Flags().BoolVar(&announceAttach, "attach-csv", false, "upload the winners as CSV and link it")
	announcePublishCmd.Flags().StringVar(&announceChannel, "channel", "", "override announce.channel")
	announceCmd.AddCommand(announceRenderCmd, announcePublishCmd)
	rootCmd.AddCommand(announceCmd)
}
