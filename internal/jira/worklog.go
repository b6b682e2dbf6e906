package jira

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// startedLayout is the timestamp format the worklog endpoint accepts.
const startedLayout = "2006-01-02T15:04:05.000-0700"

// WorklogService covers /issue/{key}/worklog.
type WorklogService service

// AddWorklog creates a worklog on issueKey and returns Jira's record of it.
func (s *WorklogService) AddWorklog(ctx context.Context, issueKey string, in WorklogInput) (*Worklog, error) {
	if issueKey == "" {
		return nil, fmt.Errorf("add worklog: issue key is required")
	}

	payload := worklogPayload{
		Comment: in.Comment,
		Started: FormatStarted(in.Started),
	}
	if in.TimeSpent != "" {
		payload.TimeSpent = in.TimeSpent
	} else {
		payload.TimeSpentSeconds = in.TimeSpentSeconds
	}
	if payload.TimeSpent == "" && payload.TimeSpentSeconds <= 0 {
		return nil, fmt.Errorf("add worklog to %s: time spent is required", issueKey)
	}

	var wl Worklog
	path := "/issue/" + url.PathEscape(issueKey) + "/worklog"
	if err := s.client.do(ctx, "POST", path, payload, &wl); err != nil {
		return nil, fmt.Errorf("add worklog to %s: %w", issueKey, err)
	}
	return &wl, nil
}

// FormatStarted rewrites RFC 3339 timestamps into the layout Jira expects.
// Anything else, including values already in Jira's layout, passes through.
func FormatStarted(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(startedLayout, s); err == nil {
		return s
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(startedLayout)
		}
	}
	return s
}
