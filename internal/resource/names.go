package resource

import "strings"

var singulars = map[string]string{
	"tickets":    "Ticket",
	"documents":  "Document",
	"contracts":  "Contract",
	"projects":   "Project",
	"postes":     "Poste",
	"objectives": "Objective",
	"audits":     "Audit",
	"job-offers": "Job offer",
	"trainings":  "Training",
}

// singularName turns a resource name into the label used in messages.
func singularName(name string) string {
	if s, ok := singulars[name]; ok {
		return s
	}
	s := strings.TrimSuffix(name, "s")
	if s == "" {
		return name
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
