// Package account groups Jira projects under named accounts and logs time
// against them.
//
// Accounts are configured with a single string of the form
//
//	team-alpha:PROJ,DEV;team-beta:SUPPORT
//
// and are rebuilt once per process. Nothing here is persisted.
package account

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAccountID   = "default"
	DefaultAccountName = "Default Account"
)

// Registry maps account ids to accounts and to their project keys.
// It is read-only once built.
type Registry struct {
	order    []string
	accounts map[string]Account
	mappings map[string][]string
	skipped  []string
}

func newRegistry() *Registry {
	return &Registry{
		accounts: make(map[string]Account),
		mappings: make(map[string][]string),
	}
}

// add inserts or replaces an account. A replaced account keeps its position.
func (r *Registry) add(a Account) {
	if _, ok := r.accounts[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	r.accounts[a.ID] = a
	r.mappings[a.ID] = a.ProjectKeys
}

// ParseMappings parses "name1:KEY1,KEY2;name2:KEY3". Segments without a
// colon are dropped silently. Segments with an empty account name are
// dropped and reported by Skipped.
func ParseMappings(raw string) *Registry {
	reg := newRegistry()
	for i, segment := range strings.Split(raw, ";") {
		name, keys, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		id := strings.TrimSpace(name)
		if id == "" {
			reg.skipped = append(reg.skipped, fmt.Sprintf("mapping %d: empty account name", i+1))
			continue
		}
		reg.add(Account{
			ID:          id,
			Name:        DisplayName(id),
			ProjectKeys: splitKeys(keys),
			IsActive:    true,
		})
	}
	return reg
}

// Skipped describes the mapping segments ParseMappings could not use.
func (r *Registry) Skipped() []string {
	return append([]string(nil), r.skipped...)
}

// LoadMappingsFile reads accounts from a YAML list of account payloads:
//
//	- id: team-alpha
//	  description: Alpha team projects
//	  project_keys: [PROJ, DEV]
//	  is_active: true
func LoadMappingsFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read account file: %w", err)
	}

	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse account file %s: %w", path, err)
	}

	reg := newRegistry()
	for i, item := range items {
		a := AccountFromAPIResponse(item)
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, fmt.Errorf("account file %s: entry %d has no id", path, i+1)
		}
		if a.Name == "" {
			a.Name = DisplayName(a.ID)
		}
		reg.add(a)
	}
	return reg, nil
}

// DefaultRegistry holds the single fallback account spanning keys.
func DefaultRegistry(keys []string) *Registry {
	description := "Default account containing all available projects"
	if len(keys) == 0 {
		description = "Default account (no projects available)"
	}
	reg := newRegistry()
	reg.add(Account{
		ID:          DefaultAccountID,
		Name:        DefaultAccountName,
		Description: description,
		ProjectKeys: keys,
		IsActive:    true,
	})
	return reg
}

func (r *Registry) Len() int { return len(r.order) }

// List returns accounts in configuration order. A non-empty filter keeps
// accounts whose display name contains it, ignoring case.
func (r *Registry) List(filter string) []Account {
	filter = strings.ToLower(filter)
	out := make([]Account, 0, len(r.order))
	for _, id := range r.order {
		a := r.accounts[id]
		if filter != "" && !strings.Contains(strings.ToLower(a.Name), filter) {
			continue
		}
		out = append(out, a.clone())
	}
	return out
}

func (r *Registry) Get(id string) (Account, bool) {
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, false
	}
	return a.clone(), true
}

// ProjectKeys returns the keys mapped to id, or nil for an unknown id.
func (r *Registry) ProjectKeys(id string) []string {
	keys, ok := r.mappings[id]
	if !ok {
		return nil
	}
	return append([]string{}, keys...)
}

func (a Account) clone() Account {
	a.ProjectKeys = append([]string(nil), a.ProjectKeys...)
	return a
}

// DisplayName turns an account id into a title: "team-alpha" → "Team Alpha".
func DisplayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(words) == 0 {
		return id
	}
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
