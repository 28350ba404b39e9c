package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOngoing   ProjectStatus = "ongoing"
	ProjectCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectOngoing, ProjectCompleted:
		return true
	}
	return false
}

// CountsAsActive reports whether the status contributes to the "active"
// bucket in dashboard counts. "ongoing" is a UI synonym of "active".
func (s ProjectStatus) CountsAsActive() bool {
	return s == ProjectActive || s == ProjectOngoing
}

// Project is the full read model. Client contact and money fields are
// nullable in the store, hence pointers. Rendering per role goes through the
// authz projection, never through this struct directly.
type Project struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Deliverables string           `json:"deliverables"`
	StartDate    time.Time        `json:"start_date"`
	Deadline     time.Time        `json:"deadline"`
	Status       ProjectStatus    `json:"status"`
	ClientName   *string          `json:"client_name"`
	ClientEmail  *string          `json:"client_email"`
	ClientPhone  *string          `json:"client_phone"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	AmountPaid   *decimal.Decimal `json:"amount_paid"`
	OutsourcedTo *string          `json:"outsourced_to"`
	CreatedAt    time.Time        `json:"created_at"`
}
