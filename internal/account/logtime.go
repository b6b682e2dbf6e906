package account

import (
	"context"
	"fmt"
	"time"

	"jira-tools/internal/jira"
	"jira-tools/internal/telemetry"
	"jira-tools/internal/timeparse"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// fallbackSeconds is used when a standalone duration cannot be parsed.
const fallbackSeconds = 60

// LogTimeRequest describes time to log against an account. With IssueKey
// set the time becomes a Jira worklog; without it only a local entry is
// produced.
type LogTimeRequest struct {
	AccountID   string
	TimeSpent   string
	Description string
	ProjectKey  string
	IssueKey    string
	Started     string
}

// LogTimeResult is the success or failure envelope of LogTime.
type LogTimeResult struct {
	Success     bool
	Message     string
	AccountName string
	Entry       *TimeLogEntry
	Error       string
}

func (r *LogTimeResult) Simplified() map[string]any {
	if !r.Success {
		return map[string]any{"success": false, "error": r.Error}
	}
	out := map[string]any{
		"success":      true,
		"message":      r.Message,
		"account_name": r.AccountName,
	}
	if r.Entry != nil {
		out["time_log_entry"] = r.Entry.Simplified()
	}
	return out
}

// LogTime validates the account and project, then records the time.
//
// A failed validation is returned as an error wrapping
// ErrInvalidAccountAccess. Every other failure is reported in the envelope
// with a nil error; callers rely on that split.
func (s *Service) LogTime(ctx context.Context, req LogTimeRequest) (*LogTimeResult, error) {
	ctx, span := telemetry.Tracer("jira-tools/account").Start(ctx, "account.LogTime",
		trace.WithAttributes(
			attribute.String("account.id", req.AccountID),
			attribute.Bool("worklog", req.IssueKey != ""),
		))
	defer span.End()

	if !s.ValidateAccess(ctx, req.AccountID, req.ProjectKey) {
		span.SetStatus(codes.Error, "invalid account access")
		return nil, fmt.Errorf("account %s: %w", req.AccountID, ErrInvalidAccountAccess)
	}

	var (
		entry *TimeLogEntry
		err   error
	)
	if req.IssueKey != "" {
		entry, err = s.logWorklog(ctx, req)
	} else {
		entry = s.logStandalone(req)
	}
	if err != nil {
		s.log.Error("error logging time to account", s.log.Args("account", req.AccountID, "error", err.Error()))
		span.SetStatus(codes.Error, err.Error())
		return &LogTimeResult{Success: false, Error: err.Error()}, nil
	}

	name := req.AccountID
	if acct, ok := s.Account(ctx, req.AccountID); ok {
		name = acct.Name
	}
	return &LogTimeResult{
		Success:     true,
		Message:     fmt.Sprintf("Time logged successfully to account %s", req.AccountID),
		AccountName: name,
		Entry:       entry,
	}, nil
}

func (s *Service) logWorklog(ctx context.Context, req LogTimeRequest) (*TimeLogEntry, error) {
	if s.worklogs == nil {
		return nil, fmt.Errorf("add_worklog method not available")
	}

	wl, err := s.worklogs.AddWorklog(ctx, req.IssueKey, jira.WorklogInput{
		TimeSpent: req.TimeSpent,
		Comment:   req.Description,
		Started:   req.Started,
	})
	if err != nil {
		return nil, err
	}
	if wl == nil {
		return nil, fmt.Errorf("add worklog to %s: empty response", req.IssueKey)
	}

	started := req.Started
	if started == "" {
		started = wl.Started
	}
	secs := wl.TimeSpentSeconds
	if secs <= 0 {
		// Some Jira versions omit timeSpentSeconds from the create response.
		secs = max(timeparse.Parse(req.TimeSpent), 0)
	}
	return &TimeLogEntry{
		ID:               wl.ID,
		AccountID:        req.AccountID,
		ProjectID:        req.ProjectKey,
		IssueKey:         req.IssueKey,
		User:             wl.Author,
		TimeSpent:        req.TimeSpent,
		TimeSpentSeconds: secs,
		Description:      req.Description,
		Started:          started,
		Created:          wl.Created,
		Updated:          wl.Updated,
	}, nil
}

func (s *Service) logStandalone(req LogTimeRequest) *TimeLogEntry {
	secs, err := timeparse.Simple(req.TimeSpent)
	if err != nil {
		s.log.Warn("could not parse time, defaulting to 60 seconds",
			s.log.Args("time_spent", req.TimeSpent, "error", err.Error()))
		secs = fallbackSeconds
	}

	now := s.now()
	stamp := now.Format(time.RFC3339)
	started := req.Started
	if started == "" {
		started = stamp
	}
	return &TimeLogEntry{
		ID:               fmt.Sprintf("account_%s_%d", req.AccountID, now.Unix()),
		AccountID:        req.AccountID,
		ProjectID:        req.ProjectKey,
		TimeSpent:        req.TimeSpent,
		TimeSpentSeconds: secs,
		Description:      req.Description,
		Started:          started,
		Created:          stamp,
		Updated:          stamp,
	}
}
