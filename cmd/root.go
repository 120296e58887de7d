package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"giveaway-picker/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "giveaway-picker",
	Short: "Comment retrieval and fair giveaway winner selection",
	Long: "Fetches comments from Instagram, Facebook, YouTube and TikTok and draws giveaway winners.\n" +
		"Platforms without a credential run in demo mode with canned comments.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

// envAliases maps config keys to the bare variable names deployments
// already use, in addition to the GP_ prefixed form.
var envAliases = map[string]string{
	"platforms.instagram.credential": "INSTAGRAM_ACCESS_TOKEN",
	"platforms.facebook.credential":  "FACEBOOK_ACCESS_TOKEN",
	"platforms.youtube.credential":   "YOUTUBE_API_KEY",
	"platforms.tiktok.credential":    "TIKTOK_ACCESS_TOKEN",
	"redis.url":                      "REDIS_URL",
	"storage.database_url":           "DATABASE_URL",
	"auth.jwt_secret":                "JWT_SECRET",
	"openai.api_key":                 "OPENAI_API_KEY",
	"events.nats_url":                "NATS_URL",
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	v := viper.GetViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/giveaway-picker")
		v.AddConfigPath("configs")
	}

	v.SetEnvPrefix("GP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		_ = v.BindEnv(key, "GP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
	setupLogging(appCfg.App)
}

func setupLogging(c config.AppConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
