package jira

import (
	"context"
	"fmt"
)

// UserService covers /myself.
type UserService service

// Myself returns the user the credentials belong to.
func (s *UserService) Myself(ctx context.Context) (*User, error) {
	var u User
	if err := s.client.do(ctx, "GET", "/myself", nil, &u); err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	return &u, nil
}
