package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"jira-tools/internal/jira"
	"jira-tools/internal/logging"

	"github.com/pterm/pterm"
)

var (
	// ErrAccountNotFound is returned by lookups that require the account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountAccess is returned by LogTime when validation fails.
	ErrInvalidAccountAccess = errors.New("invalid account access")
)

// ProjectLister lists the projects visible in Jira.
type ProjectLister interface {
	GetAllProjects(ctx context.Context) ([]jira.Project, error)
}

// WorklogCreator creates a worklog on an issue.
type WorklogCreator interface {
	AddWorklog(ctx context.Context, issueKey string, in jira.WorklogInput) (*jira.Worklog, error)
}

// Options configures a Service. Projects and Worklogs may be nil; the
// operations that need them degrade as documented on each method.
type Options struct {
	// Mappings is the raw ACCOUNT_MAPPINGS string.
	Mappings string
	// MappingsFile is a YAML account file, read only when Mappings is empty.
	MappingsFile string

	Projects ProjectLister
	Worklogs WorklogCreator
	Logger   *pterm.Logger
	Now      func() time.Time
}

// Service answers account queries and logs time against accounts.
type Service struct {
	opts     Options
	projects ProjectLister
	worklogs WorklogCreator
	log      *pterm.Logger
	now      func() time.Time

	once     sync.Once
	registry *Registry
}

func NewService(opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		opts:     opts,
		projects: opts.Projects,
		worklogs: opts.Worklogs,
		log:      logging.OrDiscard(opts.Logger),
		now:      now,
	}
}

// Load builds the registry on first call and returns it on every call.
// Configuration problems are logged and replaced by the default account.
func (s *Service) Load(ctx context.Context) *Registry {
	s.once.Do(func() {
		s.registry = s.load(ctx)
	})
	return s.registry
}

func (s *Service) load(ctx context.Context) *Registry {
	reg, err := s.loadConfigured()
	if reg != nil {
		for _, reason := range reg.skipped {
			s.log.Warn("skipping account mapping", s.log.Args("reason", reason))
		}
	}
	switch {
	case err != nil:
		s.log.Error("error loading account mappings", s.log.Args("error", err.Error()))
	case reg == nil:
		s.log.Info("no ACCOUNT_MAPPINGS configured, using default mapping")
	case reg.Len() == 0:
		s.log.Warn("account mappings produced no accounts, using default mapping")
	default:
		s.log.Info("loaded accounts from mappings", s.log.Args("count", reg.Len()))
		return reg
	}
	return s.defaultRegistry(ctx)
}

// loadConfigured returns nil, nil when no source is configured.
func (s *Service) loadConfigured() (*Registry, error) {
	switch {
	case s.opts.Mappings != "":
		return ParseMappings(s.opts.Mappings), nil
	case s.opts.MappingsFile != "":
		return LoadMappingsFile(s.opts.MappingsFile)
	default:
		return nil, nil
	}
}

func (s *Service) defaultRegistry(ctx context.Context) *Registry {
	if s.projects == nil {
		s.log.Warn("project listing not available, creating empty default account")
		return DefaultRegistry(nil)
	}

	projects, err := s.projects.GetAllProjects(ctx)
	if err != nil {
		s.log.Error("error listing projects for default account", s.log.Args("error", err.Error()))
		return DefaultRegistry(nil)
	}

	var keys []string
	for _, p := range projects {
		if p.Key != "" {
			keys = append(keys, p.Key)
		}
	}
	if len(keys) == 0 {
		s.log.Warn("no projects available to create default account mapping")
	} else {
		s.log.Info("created default account", s.log.Args("projects", len(keys)))
	}
	return DefaultRegistry(keys)
}

// Accounts lists accounts, filtered by display name when filter is set.
func (s *Service) Accounts(ctx context.Context, filter string) []Account {
	return s.Load(ctx).List(filter)
}

func (s *Service) Account(ctx context.Context, id string) (Account, bool) {
	return s.Load(ctx).Get(id)
}

// AccountProjects returns the live projects that belong to the account, in
// the order Jira lists them. Unknown accounts yield ErrAccountNotFound; a
// failing or missing project listing yields an empty result.
func (s *Service) AccountProjects(ctx context.Context, id string) ([]jira.Project, error) {
	acct, ok := s.Account(ctx, id)
	if !ok {
		return nil, fmt.Errorf("account '%s': %w", id, ErrAccountNotFound)
	}

	if s.projects == nil {
		s.log.Warn("project listing not available", s.log.Args("account", id))
		return []jira.Project{}, nil
	}
	all, err := s.projects.GetAllProjects(ctx)
	if err != nil {
		s.log.Error("error getting projects for account", s.log.Args("account", id, "error", err.Error()))
		return []jira.Project{}, nil
	}

	out := []jira.Project{}
	for _, p := range all {
		if acct.HasProject(p.Key) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ValidateAccess reports whether the account exists, is active and, when
// projectKey is set, includes that project.
func (s *Service) ValidateAccess(ctx context.Context, id, projectKey string) bool {
	acct, ok := s.Account(ctx, id)
	if !ok {
		s.log.Warn("account not found", s.log.Args("account", id))
		return false
	}
	if !acct.IsActive {
		s.log.Warn("account is not active", s.log.Args("account", id))
		return false
	}
	if projectKey != "" && !acct.HasProject(projectKey) {
		s.log.Warn("account does not have access to project", s.log.Args("account", id, "project", projectKey))
		return false
	}
	return true
}

// Summary describes an account together with its live projects.
type Summary struct {
	AccountID   string
	AccountName string
	Description string
	IsActive    bool
	ProjectKeys []string
	Projects    []jira.Project
}

func (s *Summary) Simplified() map[string]any {
	projects := make([]map[string]any, 0, len(s.Projects))
	for _, p := range s.Projects {
		projects = append(projects, p.Simplified())
	}
	out := map[string]any{
		"account_id":    s.AccountID,
		"account_name":  s.AccountName,
		"is_active":     s.IsActive,
		"project_keys":  append([]string{}, s.ProjectKeys...),
		"project_count": len(s.Projects),
		"projects":      projects,
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	return out
}

// Summary returns the account and its live projects.
func (s *Service) Summary(ctx context.Context, id string) (*Summary, error) {
	acct, ok := s.Account(ctx, id)
	if !ok {
		return nil, fmt.Errorf("account '%s': %w", id, ErrAccountNotFound)
	}
	projects, err := s.AccountProjects(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Summary{
		AccountID:   acct.ID,
		AccountName: acct.Name,
		Description: acct.Description,
		IsActive:    acct.IsActive,
		ProjectKeys: acct.ProjectKeys,
		Projects:    projects,
	}, nil
}
