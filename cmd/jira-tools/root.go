package main

import (
	"context"
	"fmt"
	"time"

	"jira-tools/internal/account"
	"jira-tools/internal/config"
	"jira-tools/internal/jira"
	"jira-tools/internal/logging"
	"jira-tools/internal/telemetry"
	"jira-tools/internal/tools"
	"jira-tools/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg      *config.Config
	log      *pterm.Logger
	jira     *jira.Client
	accounts *account.Service
	tools    *tools.Toolset
}

type rootOptions struct {
	logLevel string
	jsonOut  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "jira-tools",
		Short: "Log Jira time against accounts",
		Long: `jira-tools groups Jira projects into accounts and logs time against them,
from the command line or through a Gemini chat assistant.

Accounts come from ACCOUNT_MAPPINGS ("team-alpha:PROJ,DEV;team-beta:SUPPORT"),
an account YAML file, or default to a single account spanning every project.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return telemetry.Init(cmd.Context(), "jira-tools", Version)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			telemetry.Shutdown(ctx)
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")

	root.AddCommand(
		newAccountsCmd(opts),
		newLogCmd(opts),
		newToolCmd(opts),
		newChatCmd(opts),
		newConfigCmd(),
		newWhoamiCmd(opts),
		newVersionCmd(),
	)
	return root
}

// newApp loads configuration and wires the Jira client, account service
// and toolset.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return newAppFromConfig(cmd, opts, cfg)
}

func newAppFromConfig(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (run 'jira-tools config' or set JIRA_URL and JIRA_API_TOKEN)", err)
	}

	level := cfg.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, cfg.LogFormat == "json")

	client := jira.NewClient(jira.Options{
		BaseURL:  cfg.JiraURL,
		Email:    cfg.JiraEmail,
		APIToken: cfg.JiraAPIToken,
		Logger:   logger,
	})
	accounts := account.NewService(account.Options{
		Mappings:     cfg.AccountMappings,
		MappingsFile: cfg.AccountMappingsFile,
		Projects:     client.Projects,
		Worklogs:     client.Worklogs,
		Logger:       logger,
	})

	return &app{
		cfg:      cfg,
		log:      logger,
		jira:     client,
		accounts: accounts,
		tools:    tools.New(accounts, logger),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "jira-tools version", Version)
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Set up Jira, Gemini and account settings interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Exists() && !ui.ConfirmYesNo("Edit the existing configuration at "+config.Path()+"?") {
				return nil
			}
			_, err := config.RunSetup()
			return err
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the Jira user the credentials belong to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			u, err := a.jira.Users.Myself(cmd.Context())
			if err != nil {
				return err
			}
			if opts.jsonOut {
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(u.Simplified()))
				return nil
			}
			ui.PrintUser(u)
			return nil
		},
	}
}
