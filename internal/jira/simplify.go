package jira

// Simplified returns the user shape exposed to tool callers.
func (u User) Simplified() map[string]any {
	out := map[string]any{
		"display_name": u.DisplayName,
	}
	if u.AccountID != "" {
		out["account_id"] = u.AccountID
	}
	if u.Name != "" {
		out["name"] = u.Name
	}
	if u.EmailAddress != "" {
		out["email"] = u.EmailAddress
	}
	return out
}

// UserFromAPIResponse builds a User from a loosely-typed payload. Both the
// Jira field names and the snake_case names used by Simplified are accepted.
func UserFromAPIResponse(data map[string]any) *User {
	if len(data) == 0 {
		return nil
	}
	u := &User{
		AccountID:    firstString(data, "accountId", "account_id"),
		Name:         firstString(data, "name"),
		DisplayName:  firstString(data, "displayName", "display_name"),
		EmailAddress: firstString(data, "emailAddress", "email"),
		Active:       true,
	}
	if active, ok := data["active"].(bool); ok {
		u.Active = active
	}
	return u
}

// Simplified returns the project shape exposed to tool callers.
func (p Project) Simplified() map[string]any {
	out := map[string]any{
		"id":   p.ID,
		"key":  p.Key,
		"name": p.Name,
	}
	if p.ProjectTypeKey != "" {
		out["project_type"] = p.ProjectTypeKey
	}
	if p.Lead != nil {
		out["lead"] = p.Lead.Simplified()
	}
	return out
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
