package authz

import (
	"time"

	"eod-reports/internal/models"
)

const (
	// EditWindow is how long after creation an employee may still change
	// their own report. The boundary is inclusive: a report exactly this
	// old is still editable.
	EditWindow = 72 * time.Hour

	// GrantTTL is the lifetime of a viewer-access grant.
	GrantTTL = 72 * time.Hour
)

// CanMutateReport decides whether ident may update or delete the report.
// Admins always may, viewers never may, employees only their own reports
// and only within the edit window.
func CanMutateReport(ident Identity, report *models.Report, now time.Time) error {
	switch ident.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleViewer:
		return ErrViewerReadOnly
	case models.RoleEmployee:
		if report.EmployeeID != ident.EmployeeID {
			return ErrNotOwner
		}
		if now.Sub(report.CreatedAt) > EditWindow {
			return ErrWindowClosed
		}
		return nil
	}
	return ErrRoleForbidden
}

// CanCreateReport decides whether ident may create a report owned by
// employeeID. Employees may only file for themselves.
func CanCreateReport(ident Identity, employeeID uint) error {
	switch ident.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleViewer:
		return ErrViewerReadOnly
	case models.RoleEmployee:
		if employeeID != ident.EmployeeID {
			return ErrNotOwner
		}
		return nil
	}
	return ErrRoleForbidden
}

// LatestGrant returns the most recently created grant, or nil if none exist.
// Older grants are ignored even when still unexpired.
func LatestGrant(grants []models.ViewerAccess) *models.ViewerAccess {
	var latest *models.ViewerAccess
	for i := range grants {
		if latest == nil || grants[i].CreatedAt.After(latest.CreatedAt) {
			latest = &grants[i]
		}
	}
	return latest
}
