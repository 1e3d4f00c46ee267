package authz

import (
	"testing"

	"eod-reports/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestScopeFor(t *testing.T) {
	admin := Identity{UserID: 1, Role: models.RoleAdmin}
	viewer := Identity{UserID: 2, Role: models.RoleViewer}
	employee := Identity{UserID: 3, Role: models.RoleEmployee, EmployeeID: 7}

	tests := []struct {
		name      string
		ident     Identity
		requested uint
		want      ReportScope
	}{
		{"admin sees all", admin, 0, ReportScope{AllEmployees: true}},
		{"admin may narrow", admin, 5, ReportScope{EmployeeID: 5}},
		{"viewer sees all", viewer, 0, ReportScope{AllEmployees: true}},
		{"viewer may narrow", viewer, 5, ReportScope{EmployeeID: 5}},
		{"employee forced to self", employee, 0, ReportScope{EmployeeID: 7}},
		{"employee cannot widen via parameter", employee, 99, ReportScope{EmployeeID: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScopeFor(tt.ident, tt.requested))
		})
	}
}
