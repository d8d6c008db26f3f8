// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// The back-office resources below share one shape: an int64 identifier that
// the server assigns on create, plus required fields checked client-side
// through `validate` tags before anything is sent.

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketClosed     TicketStatus = "CLOSED"
)

type TicketType string

const (
	TicketRequest  TicketType = "REQUEST"
	TicketIncident TicketType = "INCIDENT"
	TicketQuestion TicketType = "QUESTION"
)

// Ticket is a client support ticket.
type Ticket struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title" validate:"required,max=100"`
	Description string       `json:"description" validate:"required,max=1000"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	Status      TicketStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS CLOSED"`
	Type        TicketType   `json:"type" validate:"required,oneof=REQUEST INCIDENT QUESTION"`
}

func (t Ticket) EntityID() int64 { return t.ID }

// Document is a managed document (payslip, job sheet, contract, process sheet).
type Document struct {
	ID           int64    `json:"id,omitempty"`
	Title        string   `json:"title" validate:"required,max=200"`
	Content      string   `json:"content" validate:"required"`
	Type         string   `json:"type" validate:"required,oneof=FICHE_PAIE FICHE_POSTE CONTRAT PROCESSUS_REALISATION"`
	DateCreation string   `json:"dateCreation,omitempty"`
	Signature    string   `json:"signature,omitempty"`
	Employe      string   `json:"employe,omitempty"`
	Poste        string   `json:"poste,omitempty"`
	Taches       []string `json:"taches,omitempty"`
}

func (d Document) EntityID() int64 { return d.ID }

// Contract is a client contract.
type Contract struct {
	ID         int64   `json:"id,omitempty"`
	Title      string  `json:"title" validate:"required,max=200"`
	ClientName string  `json:"clientName" validate:"required"`
	StartDate  string  `json:"startDate" validate:"required"`
	EndDate    string  `json:"endDate,omitempty"`
	Amount     float64 `json:"amount" validate:"gte=0"`
	Status     string  `json:"status,omitempty"`
}

func (c Contract) EntityID() int64 { return c.ID }

// Project is a delivery project. The backend names its key idProjet.
type Project struct {
	ID          int64  `json:"idProjet,omitempty"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (p Project) EntityID() int64 { return p.ID }

// Poste is a job position inside a process.
type Poste struct {
	ID      int64   `json:"id,omitempty"`
	Mission string  `json:"mission" validate:"required,max=255"`
	Salaire float64 `json:"salaire" validate:"gt=0"`
}

func (p Poste) EntityID() int64 { return p.ID }

// Objective is a quality objective tracked by indicators.
type Objective struct {
	ID          int64  `json:"idObjective,omitempty"`
	Title       string `json:"title" validate:"required,max=150"`
	Axe         string `json:"axe,omitempty"`
	Description string `json:"description,omitempty"`
}

func (o Objective) EntityID() int64 { return o.ID }

// Audit is a scheduled quality audit.
type Audit struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,max=150"`
	Scope       string `json:"scope" validate:"required"`
	PlannedDate string `json:"plannedDate" validate:"required"`
	Status      string `json:"status,omitempty"`
}

func (a Audit) EntityID() int64 { return a.ID }

// JobOffer is a published recruitment offer.
type JobOffer struct {
	ID                 int64   `json:"id,omitempty"`
	Title              string  `json:"title" validate:"required,max=150"`
	Description        string  `json:"description" validate:"required"`
	Location           string  `json:"location" validate:"required"`
	Requirements       string  `json:"requirements,omitempty"`
	ContractType       string  `json:"contractType" validate:"required,oneof=CDI CDD CVP FREELANCE INTERIM"`
	Salary             float64 `json:"salary" validate:"gte=0"`
	SkillsAndExpertise string  `json:"skillsAndExpertise,omitempty"`
	WorkType           string  `json:"workType" validate:"required,oneof=PRESENTIAL REMOTE HYBRID"`
}

func (j JobOffer) EntityID() int64 { return j.ID }

// Training is an internal training session.
type Training struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty"`
	Trainer     string `json:"trainer,omitempty"`
}

func (t Training) EntityID() int64 { return t.ID }
