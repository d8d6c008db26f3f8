package models

// SearchResult is one row of the global search dropdown. Entity rows come from
// the backend search endpoint, user rows are mapped from the user directory.
type SearchResult struct {
	ID            string   `json:"id"`
	EntityType    string   `json:"entityType"`
	DisplayName   string   `json:"displayName"`
	Description   string   `json:"description"`
	ProcessName   string   `json:"processName,omitempty"`
	PiloteName    string   `json:"piloteName,omitempty"`
	TaskNames     []string `json:"taskNames,omitempty"`
	AssignedUsers []string `json:"assignedUsers,omitempty"`
}

// UserEntityType is the EntityType given to rows built from user summaries.
const UserEntityType = "User"
