package jira

import (
	"context"
	"fmt"
	"net/url"
)

const inProgressJQL = `assignee = currentUser() AND status = "In Progress" ORDER BY updated DESC`

// IssueService covers /search.
type IssueService service

// InProgress returns the caller's issues that are currently in progress.
func (s *IssueService) InProgress(ctx context.Context) ([]Issue, error) {
	return s.Search(ctx, inProgressJQL, 50)
}

// Search runs a JQL query and returns up to maxResults issues.
func (s *IssueService) Search(ctx context.Context, jql string, maxResults int) ([]Issue, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("fields", "summary,status")
	q.Set("maxResults", fmt.Sprintf("%d", maxResults))

	var sr searchResponse
	if err := s.client.do(ctx, "GET", "/search?"+q.Encode(), nil, &sr); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	issues := make([]Issue, 0, len(sr.Issues))
	for _, si := range sr.Issues {
		status := ""
		if si.Fields.Status != nil {
			status = si.Fields.Status.Name
		}
		issues = append(issues, Issue{
			Key:     si.Key,
			Summary: si.Fields.Summary,
			Status:  status,
		})
	}
	return issues, nil
}
