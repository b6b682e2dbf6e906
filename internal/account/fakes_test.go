package account

import (
	"context"

	"jira-tools/internal/jira"
)

type fakeProjects struct {
	projects []jira.Project
	err      error
	calls    int
}

func (f *fakeProjects) GetAllProjects(ctx context.Context) ([]jira.Project, error) {
	f.calls++
	return f.projects, f.err
}

type worklogCall struct {
	issueKey string
	input    jira.WorklogInput
}

type fakeWorklogs struct {
	worklog *jira.Worklog
	err     error
	calls   []worklogCall
}

func (f *fakeWorklogs) AddWorklog(ctx context.Context, issueKey string, in jira.WorklogInput) (*jira.Worklog, error) {
	f.calls = append(f.calls, worklogCall{issueKey: issueKey, input: in})
	return f.worklog, f.err
}

func sampleProjects() []jira.Project {
	return []jira.Project{
		{ID: "10003", Key: "SUPPORT", Name: "Support"},
		{ID: "10002", Key: "DEV", Name: "Development Project"},
		{ID: "10001", Key: "PROJ", Name: "Project 1"},
	}
}

func sampleWorklog() *jira.Worklog {
	return &jira.Worklog{
		ID:               "12345",
		Author:           &jira.User{AccountID: "user123", DisplayName: "Test User"},
		TimeSpent:        "2h",
		TimeSpentSeconds: 7200,
		Started:          "2024-01-01T09:00:00.000+0000",
		Created:          "2024-01-01T10:00:00.000+0000",
		Updated:          "2024-01-01T10:00:00.000+0000",
	}
}
