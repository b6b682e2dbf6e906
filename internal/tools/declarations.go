package tools

import "google.golang.org/genai"

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

var listAccountsDecl = &genai.FunctionDeclaration{
	Name:        ListAccounts,
	Description: "List the configured accounts. An account is a named group of Jira project keys used for time logging.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"search_filter": str("Optional case-insensitive text matched against account names"),
		},
	},
}

var getAccountProjectsDecl = &genai.FunctionDeclaration{
	Name:        GetAccountProjects,
	Description: "List the Jira projects that belong to an account.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"account_id": str("Account id, e.g. team-alpha"),
		},
		Required: []string{"account_id"},
	},
}

var getAccountSummaryDecl = &genai.FunctionDeclaration{
	Name:        GetAccountSummary,
	Description: "Describe an account: name, status, project keys and the live projects.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"account_id": str("Account id, e.g. team-alpha"),
		},
		Required: []string{"account_id"},
	},
}

var logTimeWithAccountDecl = &genai.FunctionDeclaration{
	Name: LogTimeWithAccount,
	Description: "Log time against an account. With issue_key a Jira worklog is created on that issue; " +
		"without it the time is only recorded against the account.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"account_id":  str("Account id, e.g. team-alpha"),
			"time_spent":  str("Duration such as 2h, 30m, 1.5h or 1d"),
			"description": str("What the time was spent on"),
			"project_key": str("Optional project key; must belong to the account"),
			"issue_key":   str("Optional issue key, e.g. PROJ-123"),
			"started":     str("Optional start time, ISO 8601"),
		},
		Required: []string{"account_id", "time_spent"},
	},
}
