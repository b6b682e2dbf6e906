package jira

// User is a Jira user as returned inside projects, worklogs and /myself.
type User struct {
	AccountID    string `json:"accountId"`
	Name         string `json:"name,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Active       bool   `json:"active"`
}

// Project is one entry of the project listing.
type Project struct {
	ID             string `json:"id"`
	Key            string `json:"key"`
	Name           string `json:"name"`
	ProjectTypeKey string `json:"projectTypeKey,omitempty"`
	Lead           *User  `json:"lead,omitempty"`
}

// Worklog is a time-tracking record attached to an issue.
type Worklog struct {
	ID               string `json:"id"`
	Author           *User  `json:"author,omitempty"`
	TimeSpent        string `json:"timeSpent"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment,omitempty"`
	Started          string `json:"started"`
	Created          string `json:"created"`
	Updated          string `json:"updated"`
}

// WorklogInput describes a worklog to create. Either TimeSpent ("2h 30m")
// or TimeSpentSeconds must be set; TimeSpent wins when both are.
type WorklogInput struct {
	TimeSpent        string
	TimeSpentSeconds int
	Comment          string
	Started          string
}

// Issue is the reduced issue shape used for chat context.
type Issue struct {
	Key     string
	Summary string
	Status  string
}

type searchResponse struct {
	StartAt    int           `json:"startAt"`
	MaxResults int           `json:"maxResults"`
	Total      int           `json:"total"`
	Issues     []searchIssue `json:"issues"`
}

type searchIssue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Summary string       `json:"summary"`
	Status  *issueStatus `json:"status"`
}

type issueStatus struct {
	Name string `json:"name"`
}

type worklogPayload struct {
	TimeSpent        string `json:"timeSpent,omitempty"`
	TimeSpentSeconds int    `json:"timeSpentSeconds,omitempty"`
	Comment          string `json:"comment,omitempty"`
	Started          string `json:"started,omitempty"`
}
