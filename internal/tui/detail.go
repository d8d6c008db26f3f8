package tui

import (
	"strings"

	"github.com/ogdevs/backoffice-client/models"
)

func renderResultDetail(item models.SearchResult) string {
	var b strings.Builder
	b.WriteString("Type:        " + valueOrDash(item.EntityType) + "\n")
	b.WriteString("Id:          " + valueOrDash(item.ID) + "\n")
	b.WriteString("Name:        " + valueOrDash(item.DisplayName) + "\n")
	b.WriteString("Description: " + valueOrDash(item.Description) + "\n")
	if item.ProcessName != "" {
		b.WriteString("Process:     " + item.ProcessName + "\n")
	}
	if item.PiloteName != "" {
		b.WriteString("Pilot:       " + item.PiloteName + "\n")
	}
	if len(item.TaskNames) > 0 {
		b.WriteString("Tasks:       " + strings.Join(item.TaskNames, ", ") + "\n")
	}
	if len(item.AssignedUsers) > 0 {
		b.WriteString("Assigned:    " + strings.Join(item.AssignedUsers, ", ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
