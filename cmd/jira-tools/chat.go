package main

import (
	"fmt"

	"jira-tools/internal/config"
	"jira-tools/internal/gemini"
	"jira-tools/internal/session"

	"github.com/spf13/cobra"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Log time by talking to the Gemini assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Validate() != nil && !config.Exists() {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration found. Let's set it up!")
				fmt.Fprintln(cmd.OutOrStdout())
				if cfg, err = config.RunSetup(); err != nil {
					return err
				}
			}
			if cfg.GeminiAPIKey == "" {
				return fmt.Errorf("gemini API key not configured (run 'jira-tools config' or set GEMINI_API_KEY)")
			}

			a, err := newAppFromConfig(cmd, opts, cfg)
			if err != nil {
				return err
			}

			assistant, err := gemini.NewAssistant(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel, a.tools, a.log)
			if err != nil {
				return fmt.Errorf("init gemini: %w", err)
			}

			return session.NewRunner(a.jira.Issues, a.accounts, assistant).Run(cmd.Context())
		},
	}
}
