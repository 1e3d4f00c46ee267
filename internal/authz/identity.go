// Package authz holds the access-control decisions: role guards, the report
// edit window, viewer-grant validity and query scoping. Everything here is a
// pure function over already-loaded records; database round-trips stay with
// the callers.
package authz

import "eod-reports/internal/models"

// Identity is the snapshot of a logged-in account as captured at login time.
// It is stored in the session and deliberately never refreshed: role or
// linkage changes take effect on the next login, not on live sessions.
type Identity struct {
	UserID   uint
	Username string
	Role     models.UserRole

	// EmployeeID is the linked employee record; zero unless Role is employee.
	EmployeeID uint
}
