package main

import (
	"fmt"

	"jira-tools/internal/tools"
	"jira-tools/internal/ui"

	"github.com/spf13/cobra"
)

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Inspect accounts and their projects",
	}
	cmd.AddCommand(
		newAccountsListCmd(opts),
		newAccountsProjectsCmd(opts),
		newAccountsSummaryCmd(opts),
		newAccountsValidateCmd(opts),
	)
	return cmd
}

// runTool prints a tool result as JSON and turns a failure into an error.
func runTool(cmd *cobra.Command, a *app, name string, args map[string]any) (map[string]any, error) {
	result := a.tools.Call(cmd.Context(), name, args)
	if ok, _ := result["success"].(bool); !ok {
		return result, fmt.Errorf("%v", result["error"])
	}
	return result, nil
}

func newAccountsListCmd(opts *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				result, err := runTool(cmd, a, tools.ListAccounts, map[string]any{"search_filter": filter})
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(result))
				return err
			}
			ui.PrintAccounts(a.accounts.Accounts(cmd.Context(), filter))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "Only accounts whose name contains this text")
	return cmd
}

func newAccountsProjectsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects <account-id>",
		Short: "List the Jira projects of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				result, err := runTool(cmd, a, tools.GetAccountProjects, map[string]any{"account_id": args[0]})
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(result))
				return err
			}
			projects, err := a.accounts.AccountProjects(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ui.PrintProjects(args[0], projects)
			return nil
		},
	}
}

func newAccountsSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <account-id>",
		Short: "Show an account with its live projects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if opts.jsonOut {
				result, err := runTool(cmd, a, tools.GetAccountSummary, map[string]any{"account_id": args[0]})
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(result))
				return err
			}
			sum, err := a.accounts.Summary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ui.PrintSummary(sum)
			return nil
		},
	}
}

func newAccountsValidateCmd(opts *rootOptions) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "validate <account-id>",
		Short: "Check that an account exists, is active and covers a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			ok := a.accounts.ValidateAccess(cmd.Context(), args[0], project)
			if opts.jsonOut {
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(map[string]any{
					"account_id":  args[0],
					"project_key": project,
					"valid":       ok,
				}))
			} else if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", args[0])
			}
			if !ok {
				if project != "" {
					return fmt.Errorf("account %s cannot log time to project %s", args[0], project)
				}
				return fmt.Errorf("account %s is unknown or inactive", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project key the account must cover")
	return cmd
}
