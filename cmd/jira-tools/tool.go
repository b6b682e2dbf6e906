package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToolCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tool <name> [json-args]",
		Short: "Call an assistant tool directly and print its JSON result",
		Long: `Call one of the tools the chat assistant uses and print the JSON envelope.

Tools: list_accounts, get_account_projects, get_account_summary, log_time_with_account.`,
		Example: `  jira-tools tool list_accounts '{"search_filter":"team"}'
  jira-tools tool log_time_with_account '{"account_id":"team-alpha","time_spent":"2h","issue_key":"PROJ-1"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			raw := ""
			if len(args) == 2 {
				raw = args[1]
			}
			out, ok := a.tools.CallJSON(cmd.Context(), args[0], raw)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			if !ok {
				return fmt.Errorf("tool %s failed", args[0])
			}
			return nil
		},
	}
}
