package gemini

import (
	"fmt"
	"strings"
	"time"

	"jira-tools/internal/account"
	"jira-tools/internal/jira"
)

// PromptContext is what the model is told about the user before the chat.
type PromptContext struct {
	Accounts []account.Account
	Issues   []jira.Issue
	Today    time.Time
}

func buildSystemPrompt(pc PromptContext) string {
	var accounts strings.Builder
	for _, a := range pc.Accounts {
		fmt.Fprintf(&accounts, "- %s (%s): %s\n", a.ID, a.Name, strings.Join(a.ProjectKeys, ", "))
	}
	if accounts.Len() == 0 {
		accounts.WriteString("- none configured\n")
	}

	var issues strings.Builder
	for _, issue := range pc.Issues {
		fmt.Fprintf(&issues, "- %s: %s\n", issue.Key, issue.Summary)
	}
	if issues.Len() == 0 {
		issues.WriteString("- no issues in progress\n")
	}

	today := pc.Today
	if today.IsZero() {
		today = time.Now()
	}

	return fmt.Sprintf(`You are a friendly assistant that helps the user log working time in Jira.

Today is %s. A working day is 8h.

Time is logged against ACCOUNTS. An account is a named group of Jira project keys:
%s
Issues the user has in progress:
%s
How to work:
1. Ask the user what they worked on. Let them describe it freely.
2. Match each activity to an account and, when possible, an issue. If the user names an issue key that is not listed, accept it. Ask when unsure.
3. Ask how long each activity took. Durations look like 2h, 30m, 1.5h or 1d.
4. Show a short summary (account | issue | time | description) and ask for confirmation.
5. Only after confirmation, call log_time_with_account once per activity. Pass project_key when the issue's project is known.
6. Report what was logged and any failures.

Use list_accounts, get_account_projects and get_account_summary whenever you need to check which projects an account covers.
Keep a casual, supportive tone. Never invent account ids.`,
		today.Format("Monday, 2 January 2006"), accounts.String(), issues.String())
}
