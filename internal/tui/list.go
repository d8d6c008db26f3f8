package tui

import (
	"fmt"
	"strings"

	"github.com/ogdevs/backoffice-client/models"
)

// resultsModel is the search dropdown: one row per merged result.
type resultsModel struct {
	query string
	items []models.SearchResult
	idx   int
}

func (m resultsModel) current() (models.SearchResult, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.SearchResult{}, false
	}
	return m.items[m.idx], true
}

func (m *resultsModel) set(query string, items []models.SearchResult) {
	m.query = query
	m.items = items
	if m.idx >= len(items) {
		m.idx = len(items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func entityIcon(entityType string) string {
	switch strings.ToLower(entityType) {
	case "user":
		return "[U]"
	case "process", "processus":
		return "[P]"
	case "task", "tache":
		return "[T]"
	case "document":
		return "[D]"
	default:
		return "[?]"
	}
}

func (m resultsModel) View(focused bool) string {
	if len(m.items) == 0 {
		if m.query == "" {
			return helpStyle.Render("Type at least two characters to search")
		}
		return "No results for \"" + m.query + "\""
	}

	var b strings.Builder
	for i, item := range m.items {
		cursor := "  "
		line := fmt.Sprintf("%s %s  %s", entityIcon(item.EntityType), fitText(item.DisplayName, 40), helpStyle.Render(fitText(item.Description, 50)))
		if focused && i == m.idx {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
