package authz

import (
	"eod-reports/internal/models"

	"gorm.io/gorm"
)

// ReportScope is what slice of report data an identity may read.
// Either AllEmployees is true, or EmployeeID names the single employee
// the caller is restricted to.
type ReportScope struct {
	AllEmployees bool
	EmployeeID   uint
}

// ScopeFor computes the visible scope. Admins and viewers see everything
// and may optionally narrow to one employee via the request parameter;
// employees are always forced to their own records regardless of what the
// client sent.
func ScopeFor(ident Identity, requestedEmployeeID uint) ReportScope {
	if ident.Role == models.RoleEmployee {
		return ReportScope{EmployeeID: ident.EmployeeID}
	}
	if requestedEmployeeID > 0 {
		return ReportScope{EmployeeID: requestedEmployeeID}
	}
	return ReportScope{AllEmployees: true}
}

// Apply narrows a query to the scope. column is the qualified employee
// reference column, e.g. "employee_id" or "reports.employee_id" for joins.
func (s ReportScope) Apply(q *gorm.DB, column string) *gorm.DB {
	if s.AllEmployees {
		return q
	}
	return q.Where(column+" = ?", s.EmployeeID)
}
