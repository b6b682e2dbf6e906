package jira

import (
	"context"
	"fmt"
)

// ProjectService covers /project.
type ProjectService service

// GetAllProjects lists every project visible to the credentials.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := s.client.do(ctx, "GET", "/project", nil, &projects); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
