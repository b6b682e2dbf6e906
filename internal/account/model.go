package account

import (
	"math"
	"strconv"
	"strings"

	"jira-tools/internal/jira"
)

// Account is a named group of project keys. It is not a Jira entity.
type Account struct {
	ID          string
	Name        string
	Description string
	ProjectKeys []string
	IsActive    bool
	CreatedBy   *jira.User
}

// TimeLogEntry is a time record logged against an account, optionally
// backed by a Jira worklog.
type TimeLogEntry struct {
	ID               string
	AccountID        string
	ProjectID        string
	IssueKey         string
	User             *jira.User
	TimeSpent        string
	TimeSpentSeconds int
	Description      string
	Started          string
	Created          string
	Updated          string
}

// AccountFromAPIResponse converts a loosely-typed payload. Missing fields get
// zero values except is_active, which defaults to true.
func AccountFromAPIResponse(data map[string]any) Account {
	a := Account{IsActive: true}
	if len(data) == 0 {
		return a
	}

	a.ID = stringField(data, "id")
	a.Name = stringField(data, "name")
	a.Description = stringField(data, "description")
	a.ProjectKeys = stringSlice(data["project_keys"])
	if active, ok := data["is_active"].(bool); ok {
		a.IsActive = active
	}
	if creator, ok := data["created_by"].(map[string]any); ok {
		a.CreatedBy = jira.UserFromAPIResponse(creator)
	}
	return a
}

// Simplified is the account shape returned to tool callers.
func (a Account) Simplified() map[string]any {
	out := map[string]any{
		"id":            a.ID,
		"name":          a.Name,
		"is_active":     a.IsActive,
		"project_count": len(a.ProjectKeys),
	}
	if a.Description != "" {
		out["description"] = a.Description
	}
	if len(a.ProjectKeys) > 0 {
		out["project_keys"] = append([]string(nil), a.ProjectKeys...)
	}
	if a.CreatedBy != nil {
		out["created_by"] = a.CreatedBy.Simplified()
	}
	return out
}

// HasProject reports whether key is one of the account's project keys.
func (a Account) HasProject(key string) bool {
	for _, k := range a.ProjectKeys {
		if k == key {
			return true
		}
	}
	return false
}

// TimeLogEntryFromAPIResponse converts a loosely-typed payload.
// time_spent_seconds that is missing, unparseable or negative becomes 0.
func TimeLogEntryFromAPIResponse(data map[string]any) TimeLogEntry {
	if len(data) == 0 {
		return TimeLogEntry{}
	}

	e := TimeLogEntry{
		ID:               stringField(data, "id"),
		AccountID:        stringField(data, "account_id"),
		ProjectID:        stringField(data, "project_id"),
		IssueKey:         stringField(data, "issue_key"),
		TimeSpent:        stringField(data, "time_spent"),
		TimeSpentSeconds: seconds(data["time_spent_seconds"]),
		Description:      stringField(data, "description"),
		Started:          stringField(data, "started"),
		Created:          stringField(data, "created"),
		Updated:          stringField(data, "updated"),
	}
	if user, ok := data["user"].(map[string]any); ok {
		e.User = jira.UserFromAPIResponse(user)
	}
	return e
}

// Simplified is the entry shape returned to tool callers.
func (e TimeLogEntry) Simplified() map[string]any {
	out := map[string]any{
		"id":                 e.ID,
		"account_id":         e.AccountID,
		"time_spent":         e.TimeSpent,
		"time_spent_seconds": e.TimeSpentSeconds,
	}
	optional := []struct {
		key, value string
	}{
		{"project_id", e.ProjectID},
		{"issue_key", e.IssueKey},
		{"description", e.Description},
		{"started", e.Started},
		{"created", e.Created},
		{"updated", e.Updated},
	}
	for _, f := range optional {
		if f.value != "" {
			out[f.key] = f.value
		}
	}
	if e.User != nil {
		out["user"] = e.User.Simplified()
	}
	return out
}

func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func stringSlice(v any) []string {
	switch keys := v.(type) {
	case []string:
		return append([]string(nil), keys...)
	case []any:
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			if s, ok := k.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func seconds(v any) int {
	var n float64
	switch x := v.(type) {
	case int:
		n = float64(x)
	case int64:
		n = float64(x)
	case float64:
		n = x
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		n = f
	default:
		return 0
	}
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) || n >= float64(math.MaxInt) {
		return 0
	}
	return int(n)
}
