package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrExternalProject = errors.New("project is managed by the sheet sync")
)

type ProjectStatus string

const (
	StatusWaiting    ProjectStatus = "Em Espera"
	StatusInProgress ProjectStatus = "Em Andamento"
	StatusBlocked    ProjectStatus = "Impedido"
	StatusFinished   ProjectStatus = "Finalizado"
)

// StatusAll is the filter sentinel, never stored on a project.
const StatusAll ProjectStatus = "Todos"

func AllStatuses() []ProjectStatus {
	return []ProjectStatus{StatusWaiting, StatusInProgress, StatusBlocked, StatusFinished}
}

// ParseStatus matches a status label case-insensitively. Anything
// unrecognized falls back to StatusWaiting, imports rely on that.
func ParseStatus(s string) ProjectStatus {
	s = strings.TrimSpace(s)
	for _, known := range AllStatuses() {
		if strings.EqualFold(s, string(known)) {
			return known
		}
	}
	return StatusWaiting
}

type Environment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Value     Cents  `json:"value"`
	Completed bool   `json:"completed"`
	Material  string `json:"material,omitempty"`
}

type Project struct {
	ID                   string        `json:"id"`
	ClientName           string        `json:"clientName"`
	ClientEmail          string        `json:"clientEmail,omitempty"`
	ClientPhone          string        `json:"clientPhone,omitempty"`
	OrderNumber          string        `json:"orderNumber,omitempty"`
	Status               ProjectStatus `json:"status"`
	ReceivedDate         string        `json:"receivedDate"`
	MeasurementDate      string        `json:"measurementDate,omitempty"`
	DeadlineDate         string        `json:"deadlineDate,omitempty"`
	FinishedDate         string        `json:"finishedDate,omitempty"`
	Environments         []Environment `json:"environments"`
	CommissionPercentage float64       `json:"commissionPercentage"`
	Notes                string        `json:"notes,omitempty"`
	IsExternal           bool          `json:"isExternal"`
}

// DateLayout is the calendar-date wire format used everywhere (no time of day).
const DateLayout = "2006-01-02"

// Validate rejects payloads the project form never produces: a missing
// client name or negative money values.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.ClientName) == "" {
		return errors.New("nome do cliente é obrigatório")
	}
	if p.CommissionPercentage < 0 {
		return errors.New("comissão não pode ser negativa")
	}
	for _, env := range p.Environments {
		if env.Value < 0 {
			return errors.New("valor do ambiente não pode ser negativo")
		}
	}
	return nil
}

// Normalize fills the defaults a form submission may omit: ids for the
// project and its environments, received date, status, and the finish date
// once a project turns Finalizado.
func (p *Project) Normalize(now time.Time) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = StatusWaiting
	}
	if p.ReceivedDate == "" {
		p.ReceivedDate = now.Format(DateLayout)
	}
	if p.Status == StatusFinished && p.FinishedDate == "" {
		p.FinishedDate = now.Format(DateLayout)
	}
	for i := range p.Environments {
		if p.Environments[i].ID == "" {
			p.Environments[i].ID = uuid.NewString()
		}
	}
	if p.Environments == nil {
		p.Environments = []Environment{}
	}
}
