package tools

import (
	"context"
	"fmt"

	"jira-tools/internal/account"
)

func (t *Toolset) listAccounts(ctx context.Context, args map[string]any) map[string]any {
	accounts := t.accounts.Accounts(ctx, stringArg(args, "search_filter"))

	items := make([]map[string]any, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, a.Simplified())
	}
	out := map[string]any{
		"success":  true,
		"accounts": items,
		"count":    len(items),
	}
	if len(items) == 0 {
		out["message"] = "No accounts found"
	}
	return out
}

func (t *Toolset) getAccountProjects(ctx context.Context, args map[string]any) map[string]any {
	id := stringArg(args, "account_id")
	if id == "" {
		return failure("account_id is required")
	}

	projects, err := t.accounts.AccountProjects(ctx, id)
	if err != nil {
		return failure(err.Error())
	}

	items := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.Simplified())
	}
	out := map[string]any{
		"success":    true,
		"account_id": id,
		"projects":   items,
		"count":      len(items),
	}
	if len(items) == 0 {
		out["message"] = fmt.Sprintf("No projects found for account '%s'", id)
	}
	return out
}

func (t *Toolset) getAccountSummary(ctx context.Context, args map[string]any) map[string]any {
	id := stringArg(args, "account_id")
	if id == "" {
		return failure("account_id is required")
	}

	sum, err := t.accounts.Summary(ctx, id)
	if err != nil {
		return failure(err.Error())
	}
	out := sum.Simplified()
	out["success"] = true
	return out
}

func (t *Toolset) logTimeWithAccount(ctx context.Context, args map[string]any) map[string]any {
	req := account.LogTimeRequest{
		AccountID:   stringArg(args, "account_id"),
		TimeSpent:   stringArg(args, "time_spent"),
		Description: stringArg(args, "description"),
		ProjectKey:  stringArg(args, "project_key"),
		IssueKey:    stringArg(args, "issue_key"),
		Started:     stringArg(args, "started"),
	}
	if req.AccountID == "" {
		return failure("account_id is required")
	}
	if req.TimeSpent == "" {
		return failure("time_spent is required")
	}

	res, err := t.accounts.LogTime(ctx, req)
	if err != nil {
		return failure(err.Error())
	}
	if !res.Success {
		return failure(res.Error)
	}

	out := map[string]any{
		"success":      true,
		"message":      res.Message,
		"account_id":   req.AccountID,
		"account_name": res.AccountName,
		"issue_key":    req.IssueKey,
		"project_key":  req.ProjectKey,
		"time_spent":   req.TimeSpent,
		"description":  req.Description,
	}
	if e := res.Entry; e != nil {
		out["time_spent_seconds"] = e.TimeSpentSeconds
		out["worklog_id"] = e.ID
		out["started"] = e.Started
	}
	return out
}
