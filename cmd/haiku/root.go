package main

import (
	"fmt"
	"os"

	"github.com/alwitt/haiku"
	"github.com/alwitt/haiku/config"
	"github.com/alwitt/haiku/generate"
	"github.com/alwitt/haiku/store"
	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	appCfg   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "haiku",
	Short: "Generate haikus with an LLM and keep a searchable history",
	Long: `Haiku requests short poems about a subject from an OpenAI chat model.

Generated haikus can be saved to a Sqlite or Postgres store, then listed,
searched by subject, and browsed from the bundled web UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level '%s' [%w]", logLevel, err)
		}
		log.SetHandler(text.New(os.Stderr))
		log.SetLevel(level)

		appCfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config [%w]", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./haiku.yaml or ~/.haiku/haiku.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "log level: debug, info, warn, error",
	)
}

// openStorage the haiku storage, or nil when persistence is not configured
func openStorage() (store.HaikuStorage, error) {
	storage, err := haiku.NewHaikuStorageFromConfig(appCfg.Store)
	if err != nil {
		return nil, err
	}
	if storage == nil {
		log.Debug("Haiku persistence not configured")
	}
	return storage, nil
}

// requireStorage the haiku storage, failing when persistence is not configured
func requireStorage() (store.HaikuStorage, error) {
	storage, err := openStorage()
	if err != nil {
		return nil, err
	}
	if storage == nil {
		return nil, fmt.Errorf(
			"haiku store not configured; set store.driver and store.dsn, or DATABASE_URL",
		)
	}
	return storage, nil
}

func newGenerator() (generate.Generator, error) {
	return generate.NewOpenAIGenerator(generate.OpenAIConfig{
		APIKey:     appCfg.OpenAI.APIKey,
		Model:      appCfg.OpenAI.Model,
		BaseURL:    appCfg.OpenAI.BaseURL,
		MaxRetries: appCfg.OpenAI.MaxRetries,
		Timeout:    appCfg.OpenAI.Timeout,
	})
}
