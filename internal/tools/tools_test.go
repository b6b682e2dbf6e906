package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jira-tools/internal/account"
	"jira-tools/internal/jira"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJira struct {
	projects   []jira.Project
	listErr    error
	worklog    *jira.Worklog
	worklogErr error
	panicOn    string
	lastIssue  string
	lastInput  jira.WorklogInput
}

func (s *stubJira) GetAllProjects(ctx context.Context) ([]jira.Project, error) {
	if s.panicOn == "projects" {
		panic("projects exploded")
	}
	return s.projects, s.listErr
}

func (s *stubJira) AddWorklog(ctx context.Context, issueKey string, in jira.WorklogInput) (*jira.Worklog, error) {
	s.lastIssue, s.lastInput = issueKey, in
	return s.worklog, s.worklogErr
}

func newToolset(mappings string, stub *stubJira) *Toolset {
	svc := account.NewService(account.Options{
		Mappings: mappings,
		Projects: stub,
		Worklogs: stub,
	})
	return New(svc, nil)
}

func defaultStub() *stubJira {
	return &stubJira{
		projects: []jira.Project{
			{ID: "10001", Key: "PROJ", Name: "Project 1"},
			{ID: "10002", Key: "DEV", Name: "Development Project"},
			{ID: "10003", Key: "SUPPORT", Name: "Support"},
		},
		worklog: &jira.Worklog{
			ID:               "12345",
			TimeSpent:        "2h",
			TimeSpentSeconds: 7200,
			Started:          "2024-01-01T09:00:00.000+0000",
		},
	}
}

const mappings = "team-alpha:PROJ,DEV;team-beta:SUPPORT,DOCS;client-work:CLIENT1"

func TestDeclarations(t *testing.T) {
	ts := New(nil, nil)
	assert.Equal(t, []string{ListAccounts, GetAccountProjects, GetAccountSummary, LogTimeWithAccount}, ts.Names())

	decls := ts.Declarations()
	require.Len(t, decls, 4)
	for _, d := range decls {
		assert.NotEmpty(t, d.Description, d.Name)
		require.NotNil(t, d.Parameters, d.Name)
	}
	assert.Equal(t, []string{"account_id", "time_spent"}, decls[3].Parameters.Required)
	assert.Len(t, ts.GenaiTool().FunctionDeclarations, 4)
}

func TestListAccounts(t *testing.T) {
	ts := newToolset(mappings, defaultStub())
	ctx := context.Background()

	out := ts.Call(ctx, ListAccounts, nil)
	require.Equal(t, true, out["success"])
	accounts := out["accounts"].([]map[string]any)
	require.Len(t, accounts, 3)
	assert.Equal(t, "team-alpha", accounts[0]["id"])
	assert.Equal(t, "Team Alpha", accounts[0]["name"])
	assert.Equal(t, "client-work", accounts[2]["id"])
	assert.NotContains(t, out, "message")

	out = ts.Call(ctx, ListAccounts, map[string]any{"search_filter": "team"})
	assert.Len(t, out["accounts"], 2)

	out = ts.Call(ctx, ListAccounts, map[string]any{"search_filter": "nothing"})
	assert.Equal(t, true, out["success"])
	assert.Empty(t, out["accounts"])
	assert.Equal(t, "No accounts found", out["message"])
}

func TestGetAccountProjects(t *testing.T) {
	ts := newToolset(mappings, defaultStub())
	ctx := context.Background()

	out := ts.Call(ctx, GetAccountProjects, map[string]any{"account_id": "team-alpha"})
	require.Equal(t, true, out["success"])
	assert.Equal(t, "team-alpha", out["account_id"])
	projects := out["projects"].([]map[string]any)
	require.Len(t, projects, 2)
	assert.Equal(t, "PROJ", projects[0]["key"])
	assert.Equal(t, "Project 1", projects[0]["name"])
	assert.Equal(t, "DEV", projects[1]["key"])

	out = ts.Call(ctx, GetAccountProjects, map[string]any{"account_id": "client-work"})
	assert.Equal(t, true, out["success"])
	assert.Empty(t, out["projects"])
	assert.Equal(t, "No projects found for account 'client-work'", out["message"])

	out = ts.Call(ctx, GetAccountProjects, map[string]any{"account_id": "invalid-account"})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "invalid-account")
	assert.Contains(t, out["error"], "account not found")

	out = ts.Call(ctx, GetAccountProjects, map[string]any{})
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "account_id is required", out["error"])
}

func TestGetAccountSummary(t *testing.T) {
	ts := newToolset(mappings, defaultStub())

	out := ts.Call(context.Background(), GetAccountSummary, map[string]any{"account_id": "team-alpha"})
	require.Equal(t, true, out["success"])
	assert.Equal(t, "team-alpha", out["account_id"])
	assert.Equal(t, "Team Alpha", out["account_name"])
	assert.Equal(t, 2, out["project_count"])

	out = ts.Call(context.Background(), GetAccountSummary, map[string]any{"account_id": "missing"})
	assert.Equal(t, false, out["success"])
}

func TestLogTimeWithAccount(t *testing.T) {
	stub := defaultStub()
	ts := newToolset(mappings, stub)

	out := ts.Call(context.Background(), LogTimeWithAccount, map[string]any{
		"account_id":  "team-alpha",
		"issue_key":   "PROJ-123",
		"time_spent":  "2h",
		"description": "Development work with émojis 🚀",
		"project_key": "PROJ",
	})
	require.Equal(t, true, out["success"], out["error"])
	assert.Equal(t, "team-alpha", out["account_id"])
	assert.Equal(t, "Team Alpha", out["account_name"])
	assert.Equal(t, "PROJ-123", out["issue_key"])
	assert.Equal(t, "PROJ", out["project_key"])
	assert.Equal(t, "2h", out["time_spent"])
	assert.Equal(t, 7200, out["time_spent_seconds"])
	assert.Equal(t, "Development work with émojis 🚀", out["description"])
	assert.Equal(t, "12345", out["worklog_id"])

	assert.Equal(t, "PROJ-123", stub.lastIssue)
	assert.Equal(t, "2h", stub.lastInput.TimeSpent)
	assert.Equal(t, "Development work with émojis 🚀", stub.lastInput.Comment)
}

func TestLogTimeWithAccountStarted(t *testing.T) {
	stub := defaultStub()
	ts := newToolset(mappings, stub)

	out := ts.Call(context.Background(), LogTimeWithAccount, map[string]any{
		"account_id": "team-alpha",
		"issue_key":  "PROJ-123",
		"time_spent": "2h",
		"started":    "2024-01-01T09:00:00.000Z",
	})
	require.Equal(t, true, out["success"])
	assert.Equal(t, "2024-01-01T09:00:00.000Z", out["started"])
	assert.Equal(t, "2024-01-01T09:00:00.000Z", stub.lastInput.Started)
}

func TestLogTimeWithAccountFailures(t *testing.T) {
	tests := []struct {
		name    string
		stub    *stubJira
		args    map[string]any
		wantErr string
	}{
		{
			name:    "unknown account",
			stub:    defaultStub(),
			args:    map[string]any{"account_id": "invalid-account", "time_spent": "2h", "issue_key": "PROJ-1"},
			wantErr: "invalid account access",
		},
		{
			name:    "project outside account",
			stub:    defaultStub(),
			args:    map[string]any{"account_id": "team-alpha", "time_spent": "2h", "project_key": "INVALID"},
			wantErr: "invalid account access",
		},
		{
			name:    "api error",
			stub:    &stubJira{worklogErr: errors.New("API Error")},
			args:    map[string]any{"account_id": "team-alpha", "time_spent": "2h", "issue_key": "PROJ-1"},
			wantErr: "API Error",
		},
		{
			name:    "missing time",
			stub:    defaultStub(),
			args:    map[string]any{"account_id": "team-alpha"},
			wantErr: "time_spent is required",
		},
		{
			name:    "missing account",
			stub:    defaultStub(),
			args:    map[string]any{"time_spent": "1h"},
			wantErr: "account_id is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newToolset(mappings, tt.stub)
			out := ts.Call(context.Background(), LogTimeWithAccount, tt.args)
			assert.Equal(t, false, out["success"])
			assert.Contains(t, out["error"], tt.wantErr)
		})
	}
}

func TestMissingService(t *testing.T) {
	ts := New(nil, nil)
	for _, name := range ts.Names() {
		out := ts.Call(context.Background(), name, map[string]any{"account_id": "team-alpha", "time_spent": "2h"})
		assert.Equal(t, false, out["success"], name)
		assert.Contains(t, out, "error", name)
	}
}

func TestUnknownTool(t *testing.T) {
	ts := newToolset(mappings, defaultStub())
	out := ts.Call(context.Background(), "delete_everything", nil)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "unknown tool")
}

func TestPanicBecomesFailure(t *testing.T) {
	stub := defaultStub()
	stub.panicOn = "projects"
	ts := newToolset(mappings, stub)

	out := ts.Call(context.Background(), GetAccountProjects, map[string]any{"account_id": "team-alpha"})
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "projects exploded")
}

func TestCallJSON(t *testing.T) {
	ts := newToolset(mappings, defaultStub())

	var out map[string]any
	raw, ok := ts.CallJSON(context.Background(), ListAccounts, `{"search_filter":"beta"}`)
	assert.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["accounts"], 1)

	raw, ok = ts.CallJSON(context.Background(), ListAccounts, `{not json`)
	assert.False(t, ok)
	out = nil
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "invalid arguments")
}
