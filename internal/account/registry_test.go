package account

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMappings = "team-alpha:PROJ,DEV;team-beta:SUPPORT,DOCS;client-work:CLIENT1,CLIENT2"

func TestParseMappings(t *testing.T) {
	reg := ParseMappings(testMappings)
	require.Equal(t, 3, reg.Len())

	alpha, ok := reg.Get("team-alpha")
	require.True(t, ok)
	assert.Equal(t, "team-alpha", alpha.ID)
	assert.Equal(t, "Team Alpha", alpha.Name)
	assert.True(t, alpha.IsActive)

	assert.Equal(t, []string{"PROJ", "DEV"}, reg.ProjectKeys("team-alpha"))
	assert.Equal(t, []string{"SUPPORT", "DOCS"}, reg.ProjectKeys("team-beta"))
	assert.Equal(t, []string{"CLIENT1", "CLIENT2"}, reg.ProjectKeys("client-work"))

	var ids []string
	for _, a := range reg.List("") {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"team-alpha", "team-beta", "client-work"}, ids)
}

func TestParseMappingsEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		want        map[string][]string
		wantSkipped int
	}{
		{name: "empty", raw: "", want: map[string][]string{}},
		{name: "no separator", raw: "invalid-format", want: map[string][]string{}},
		{name: "skips bad segments", raw: "junk;ops:OPS;;", want: map[string][]string{"ops": {"OPS"}}},
		{name: "trims whitespace", raw: " ops : OPS , INFRA ", want: map[string][]string{"ops": {"OPS", "INFRA"}}},
		{name: "drops empty keys", raw: "ops:OPS,,", want: map[string][]string{"ops": {"OPS"}}},
		{name: "no keys", raw: "ops:", want: map[string][]string{"ops": nil}},
		{name: "later duplicate wins", raw: "ops:A;ops:B", want: map[string][]string{"ops": {"B"}}},
		{name: "colon in keys", raw: "ops:A:B", want: map[string][]string{"ops": {"A:B"}}},
		{name: "empty name", raw: ":PROJ", want: map[string][]string{}, wantSkipped: 1},
		{name: "empty name keeps others", raw: "team-alpha:PROJ;:DEV", want: map[string][]string{"team-alpha": {"PROJ"}}, wantSkipped: 1},
		{name: "blank name", raw: "  :DEV;ops:OPS;:X", want: map[string][]string{"ops": {"OPS"}}, wantSkipped: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := ParseMappings(tt.raw)
			require.Equal(t, len(tt.want), reg.Len())
			assert.Len(t, reg.Skipped(), tt.wantSkipped)
			for id, keys := range tt.want {
				_, ok := reg.Get(id)
				require.True(t, ok, id)
				if keys == nil {
					assert.Empty(t, reg.ProjectKeys(id))
				} else {
					assert.Equal(t, keys, reg.ProjectKeys(id))
				}
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"team-alpha":      "Team Alpha",
		"client-work":     "Client Work",
		"simple":          "Simple",
		"multi-word-name": "Multi Word Name",
		"snake_case":      "Snake Case",
		"API-team":        "API Team",
		"--":              "--",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, DisplayName(in))
		})
	}
}

func TestRegistryListFilter(t *testing.T) {
	reg := ParseMappings(testMappings)

	assert.Len(t, reg.List(""), 3)

	team := reg.List("team")
	require.Len(t, team, 2)
	assert.Equal(t, "team-alpha", team[0].ID)
	assert.Equal(t, "team-beta", team[1].ID)

	alpha := reg.List("ALPHA")
	require.Len(t, alpha, 1)
	assert.Equal(t, "team-alpha", alpha[0].ID)

	none := reg.List("nonexistent")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRegistryReturnsCopies(t *testing.T) {
	reg := ParseMappings("ops:OPS,INFRA")

	a, _ := reg.Get("ops")
	a.ProjectKeys[0] = "CHANGED"
	keys := reg.ProjectKeys("ops")
	keys[1] = "CHANGED"

	assert.Equal(t, []string{"OPS", "INFRA"}, reg.ProjectKeys("ops"))
	assert.Nil(t, reg.ProjectKeys("missing"))
	_, ok := reg.Get("missing")
	assert.False(t, ok)
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry([]string{"PROJ", "DEV"})
	require.Equal(t, 1, reg.Len())
	a, ok := reg.Get(DefaultAccountID)
	require.True(t, ok)
	assert.Equal(t, DefaultAccountName, a.Name)
	assert.Equal(t, []string{"PROJ", "DEV"}, a.ProjectKeys)
	assert.Contains(t, a.Description, "all available projects")

	empty, _ := DefaultRegistry(nil).Get(DefaultAccountID)
	assert.Empty(t, empty.ProjectKeys)
	assert.Contains(t, empty.Description, "no projects available")
}

func TestLoadMappingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := `
- id: team-alpha
  description: Alpha team projects
  project_keys: [PROJ, DEV]
  created_by:
    accountId: u1
    displayName: Alice
- id: archived
  name: Old Work
  project_keys: [OLD]
  is_active: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := LoadMappingsFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())

	alpha, _ := reg.Get("team-alpha")
	assert.Equal(t, "Team Alpha", alpha.Name)
	assert.Equal(t, "Alpha team projects", alpha.Description)
	assert.Equal(t, []string{"PROJ", "DEV"}, alpha.ProjectKeys)
	assert.True(t, alpha.IsActive)
	require.NotNil(t, alpha.CreatedBy)
	assert.Equal(t, "Alice", alpha.CreatedBy.DisplayName)

	archived, _ := reg.Get("archived")
	assert.Equal(t, "Old Work", archived.Name)
	assert.False(t, archived.IsActive)
}

func TestLoadMappingsFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMappingsFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("id: [unterminated"), 0o600))
	_, err = LoadMappingsFile(bad)
	assert.Error(t, err)

	noID := filepath.Join(dir, "noid.yaml")
	require.NoError(t, os.WriteFile(noID, []byte("- name: Nameless\n"), 0o600))
	_, err = LoadMappingsFile(noID)
	assert.ErrorContains(t, err, "has no id")
}
