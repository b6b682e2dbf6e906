package ui

import (
	"fmt"
	"strings"

	"jira-tools/internal/account"
	"jira-tools/internal/jira"
	"jira-tools/internal/timeparse"

	"github.com/pterm/pterm"
)

func PrintWelcome() {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack, pterm.Bold)).
		Println("Jira Tools")
	pterm.Println(pterm.Gray("Account-based time logging, with a Gemini assistant"))
	pterm.Println()
}

func accountsTable(accounts []account.Account) pterm.TableData {
	data := pterm.TableData{{"ID", "Name", "Projects", "Status"}}
	for _, a := range accounts {
		status := pterm.FgGreen.Sprint("active")
		if !a.IsActive {
			status = pterm.FgRed.Sprint("inactive")
		}
		data = append(data, []string{a.ID, a.Name, strings.Join(a.ProjectKeys, ", "), status})
	}
	return data
}

func PrintAccounts(accounts []account.Account) {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(accountsTable(accounts)).Render()
	pterm.Println()
}

func projectsTable(projects []jira.Project) pterm.TableData {
	data := pterm.TableData{{"#", "Key", "Name"}}
	for i, p := range projects {
		data = append(data, []string{fmt.Sprintf("%d", i+1), p.Key, p.Name})
	}
	return data
}

func PrintProjects(accountID string, projects []jira.Project) {
	if len(projects) == 0 {
		pterm.Warning.Printfln("No projects found for account '%s'", accountID)
		return
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(projectsTable(projects)).Render()
	pterm.Println()
}

func PrintSummary(s *account.Summary) {
	pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold)).Println(s.AccountName)

	status := "active"
	if !s.IsActive {
		status = "inactive"
	}
	items := []pterm.BulletListItem{
		{Level: 0, Text: "ID: " + s.AccountID},
		{Level: 0, Text: "Status: " + status},
		{Level: 0, Text: "Project keys: " + strings.Join(s.ProjectKeys, ", ")},
		{Level: 0, Text: fmt.Sprintf("Live projects: %d", len(s.Projects))},
	}
	if s.Description != "" {
		items = append(items, pterm.BulletListItem{Level: 0, Text: s.Description})
	}
	pterm.DefaultBulletList.WithItems(items).Render()

	if len(s.Projects) > 0 {
		pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(projectsTable(s.Projects)).Render()
	}
	pterm.Println()
}

func logResultLine(r *account.LogTimeResult) string {
	if !r.Success {
		return r.Error
	}
	e := r.Entry
	if e == nil {
		return r.Message
	}
	target := r.AccountName
	if e.IssueKey != "" {
		target = e.IssueKey + " (" + r.AccountName + ")"
	}
	return fmt.Sprintf("%s logged to %s", timeparse.Format(e.TimeSpentSeconds), target)
}

func PrintLogResult(r *account.LogTimeResult) {
	if r.Success {
		pterm.Success.Println(logResultLine(r))
		return
	}
	pterm.Error.Println(logResultLine(r))
}

// PrintToolCall shows a tool run by the assistant.
func PrintToolCall(name string, result map[string]any) {
	ok, _ := result["success"].(bool)
	if ok {
		pterm.Println(pterm.Gray("  ↳ " + name))
		return
	}
	msg, _ := result["error"].(string)
	pterm.Println(pterm.Gray("  ↳ "+name+": ") + pterm.FgRed.Sprint(msg))
}

func PrintIssuesTable(issues []jira.Issue) {
	data := pterm.TableData{{"#", "Key", "Summary", "Status"}}
	for i, issue := range issues {
		data = append(data, []string{fmt.Sprintf("%d", i+1), issue.Key, issue.Summary, issue.Status})
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
	pterm.Println()
}

func PrintUser(u *jira.User) {
	pterm.Success.Printfln("Signed in as %s", u.DisplayName)
	if u.EmailAddress != "" {
		pterm.Println(pterm.Gray("  " + u.EmailAddress))
	}
	if u.AccountID != "" {
		pterm.Println(pterm.Gray("  account id " + u.AccountID))
	}
}

func PrintFarewell() {
	pterm.Println()
	pterm.Println(pterm.Gray("Bye!"))
	pterm.Println()
}

func PrintError(msg string) {
	pterm.Println(pterm.Gray("⚠ " + msg))
}

func PrintStatus(msg string) {
	pterm.Println(pterm.Gray(msg))
}
