package main

import (
	"errors"
	"fmt"

	"jira-tools/internal/account"
	"jira-tools/internal/tools"
	"jira-tools/internal/ui"

	"github.com/spf13/cobra"
)

func newLogCmd(opts *rootOptions) *cobra.Command {
	var req account.LogTimeRequest
	cmd := &cobra.Command{
		Use:   "log <account-id> <duration>",
		Short: "Log time against an account",
		Long: `Log time against an account. Durations look like 2h, 30m, 1.5h or 1d.

With --issue the time is added to that issue as a Jira worklog.`,
		Example: `  jira-tools log team-alpha 2h --issue PROJ-123 -m "Code review"
  jira-tools log team-beta 45m --project SUPPORT`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			req.AccountID, req.TimeSpent = args[0], args[1]

			res, err := a.accounts.LogTime(cmd.Context(), req)
			if errors.Is(err, account.ErrInvalidAccountAccess) {
				return fmt.Errorf("%w: check the account id and that it covers the project", err)
			}
			if err != nil {
				return err
			}

			if opts.jsonOut {
				fmt.Fprintln(cmd.OutOrStdout(), tools.Encode(res.Simplified()))
			} else {
				ui.PrintLogResult(res)
			}
			if !res.Success {
				return fmt.Errorf("log time: %s", res.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.IssueKey, "issue", "i", "", "Issue key to add a worklog to, e.g. PROJ-123")
	cmd.Flags().StringVarP(&req.ProjectKey, "project", "p", "", "Project key; must belong to the account")
	cmd.Flags().StringVarP(&req.Description, "message", "m", "", "Work description")
	cmd.Flags().StringVar(&req.Started, "started", "", "Start time, ISO 8601 (default now)")
	return cmd
}
