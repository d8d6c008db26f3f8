package adapter

import "github.com/ogdevs/backoffice-client/models"

// Resource names accepted by the command line.
const (
	ResourceTickets    = "tickets"
	ResourceDocuments  = "documents"
	ResourceContracts  = "contracts"
	ResourceProjects   = "projects"
	ResourcePostes     = "postes"
	ResourceObjectives = "objectives"
	ResourceAudits     = "audits"
	ResourceJobOffers  = "job-offers"
	ResourceTrainings  = "trainings"
)

// Resources groups the CRUD clients of every back-office resource. Paths
// follow the backend's controllers, which are not uniform.
type Resources struct {
	Tickets    *ResourceClient[models.Ticket]
	Documents  *ResourceClient[models.Document]
	Contracts  *ResourceClient[models.Contract]
	Projects   *ResourceClient[models.Project]
	Postes     *ResourceClient[models.Poste]
	Objectives *ResourceClient[models.Objective]
	Audits     *ResourceClient[models.Audit]
	JobOffers  *ResourceClient[models.JobOffer]
	Trainings  *ResourceClient[models.Training]
}

// NewResources builds every resource client on top of rest.
func NewResources(rest *RESTClient) *Resources {
	return &Resources{
		Tickets: NewResourceClient[models.Ticket](rest, ResourceTickets, ResourcePaths{
			List:   "/api/tickets",
			Create: "/api/tickets",
			Update: "/api/tickets/{id}",
			Delete: "/api/tickets/{id}",
		}),
		Documents: NewResourceClient[models.Document](rest, ResourceDocuments, ResourcePaths{
			List:   "/documents/getallDocuments",
			Get:    "/documents/getDocument/{id}",
			Create: "/documents/createDocument",
			Update: "/documents/update/{id}",
			Delete: "/documents/deleteDocument/{id}",
			Upload: "/documents/upload",
		}),
		Contracts: NewResourceClient[models.Contract](rest, ResourceContracts, ResourcePaths{
			List:   "/api/contracts",
			Create: "/api/contracts",
			Update: "/api/contracts/{id}",
			Delete: "/api/contracts/{id}",
		}),
		Projects: NewResourceClient[models.Project](rest, ResourceProjects, ResourcePaths{
			List:   "/api/projects",
			Get:    "/api/projects/{id}",
			Delete: "/api/projects/delete/{id}",
		}),
		Postes: NewResourceClient[models.Poste](rest, ResourcePostes, ResourcePaths{
			List:   "/postes",
			Get:    "/postes/{id}",
			Create: "/postes",
			Update: "/postes/{id}",
			Delete: "/postes/{id}",
		}),
		Objectives: NewResourceClient[models.Objective](rest, ResourceObjectives, ResourcePaths{
			List:   "/Objective/getObjectives",
			Create: "/Objective",
			Delete: "/Objective/deleteObjective/{id}",
		}),
		Audits: NewResourceClient[models.Audit](rest, ResourceAudits, ResourcePaths{
			List:   "/audits",
			Get:    "/audits/{id}",
			Create: "/audits",
			Update: "/audits/{id}",
			Delete: "/audits/{id}",
		}),
		JobOffers: NewResourceClient[models.JobOffer](rest, ResourceJobOffers, ResourcePaths{
			List:   "/api/job-offers",
			Get:    "/api/job-offers/{id}",
			Create: "/api/job-offers",
			Update: "/api/job-offers/{id}",
			Delete: "/api/job-offers/{id}",
		}),
		Trainings: NewResourceClient[models.Training](rest, ResourceTrainings, ResourcePaths{
			List:   "/trainings",
			Create: "/trainings",
			Update: "/trainings/{id}",
			Delete: "/trainings/{id}",
		}),
	}
}
