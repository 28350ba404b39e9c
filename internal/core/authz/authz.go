// Package authz is the view authorizer: a pure mapping from (role, entity)
// to a projected entity plus the set of permitted actions. It is a UX filter
// only; repositories and services enforce the same rules server-side.
package authz

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/founderflow/founderflow/internal/core/domain"
)

// Capability is a boolean predicate over (role, action/field).
type Capability string

const (
	// CapViewFinancials gates project total/paid/balance fields.
	CapViewFinancials Capability = "view_financials"
	// CapViewClientContact gates client name/email/phone fields.
	CapViewClientContact Capability = "view_client_contact"
	// CapViewEarnings gates the dashboard earnings/profit widgets.
	CapViewEarnings Capability = "view_earnings"
	// CapCreateTask gates task creation on a project.
	CapCreateTask Capability = "create_task"
	// CapListMembers gates the team member listing used for assignment.
	CapListMembers Capability = "list_members"
	// CapDeleteUser gates deletion of another principal.
	CapDeleteUser Capability = "delete_user"
)

// allCapabilities is ordered for stable action sets in responses.
var allCapabilities = []Capability{
	CapViewFinancials,
	CapViewClientContact,
	CapViewEarnings,
	CapCreateTask,
	CapListMembers,
	CapDeleteUser,
}

// Can reports whether role holds the capability. Total over the closed role
// set: an unknown role holds nothing.
func Can(role domain.Role, c Capability) bool {
	switch c {
	case CapViewFinancials, CapViewEarnings, CapCreateTask, CapListMembers, CapDeleteUser:
		return role == domain.RoleAdmin
	case CapViewClientContact:
		switch role {
		case domain.RoleAdmin, domain.RoleMember, domain.RoleClient:
			return true
		case domain.RoleOutsourced:
			return false
		}
	}
	return false
}

// Actions returns the capabilities the role holds, in a stable order.
func Actions(role domain.Role) []Capability {
	out := make([]Capability, 0, len(allCapabilities))
	for _, c := range allCapabilities {
		if Can(role, c) {
			out = append(out, c)
		}
	}
	return out
}

// ProjectView is a projection of a project. Redacted fields are nil, never
// zero or empty, so rendering can distinguish "hidden" from "zero". Money
// fields are pre-formatted to two decimals.
type ProjectView struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Deliverables string               `json:"deliverables"`
	StartDate    time.Time            `json:"start_date"`
	Deadline     time.Time            `json:"deadline"`
	Status       domain.ProjectStatus `json:"status"`
	ClientName   *string              `json:"client_name,omitempty"`
	ClientEmail  *string              `json:"client_email,omitempty"`
	ClientPhone  *string              `json:"client_phone,omitempty"`
	TotalAmount  *string              `json:"total_amount,omitempty"`
	AmountPaid   *string              `json:"amount_paid,omitempty"`
	Balance      *string              `json:"balance,omitempty"`
	OutsourcedTo *string              `json:"outsourced_to,omitempty"`
	Actions      []Capability         `json:"actions"`
}

// ProjectFor projects p for the given role. When the finance capability is
// granted, missing money inputs count as zero; without it the fields stay
// nil and no balance is computed.
func ProjectFor(role domain.Role, p domain.Project) ProjectView {
	v := ProjectView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Deliverables: p.Deliverables,
		StartDate:    p.StartDate,
		Deadline:     p.Deadline,
		Status:       p.Status,
		OutsourcedTo: p.OutsourcedTo,
		Actions:      Actions(role),
	}

	if Can(role, CapViewClientContact) {
		v.ClientName = p.ClientName
		v.ClientEmail = p.ClientEmail
		v.ClientPhone = p.ClientPhone
	}

	if Can(role, CapViewFinancials) {
		total := orZero(p.TotalAmount)
		paid := orZero(p.AmountPaid)
		v.TotalAmount = money(total)
		v.AmountPaid = money(paid)
		v.Balance = money(total.Sub(paid))
	}

	return v
}

// DashboardFinance holds the admin-only aggregation widgets.
type DashboardFinance struct {
	TotalEarnings decimal.Decimal `json:"total_earnings"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Profit        decimal.Decimal `json:"profit"`
}

// DashboardFor aggregates finance records for roles holding the earnings
// capability; everyone else gets zeros and no widgets.
func DashboardFor(role domain.Role, records []domain.FinanceRecord) DashboardFinance {
	agg := DashboardFinance{
		TotalEarnings: decimal.Zero,
		TotalExpenses: decimal.Zero,
		Profit:        decimal.Zero,
	}
	if !Can(role, CapViewEarnings) {
		return agg
	}
	for _, r := range records {
		switch r.Type {
		case domain.FinanceIncome:
			agg.TotalEarnings = agg.TotalEarnings.Add(r.Amount)
		case domain.FinanceExpense:
			agg.TotalExpenses = agg.TotalExpenses.Add(r.Amount)
		}
	}
	agg.Profit = agg.TotalEarnings.Sub(agg.TotalExpenses)
	return agg
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func money(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}
