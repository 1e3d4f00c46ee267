package authz

import "errors"

var (
	ErrUnauthenticated = errors.New("authz: not authenticated")
	ErrRoleForbidden   = errors.New("authz: insufficient role")
	ErrViewerReadOnly  = errors.New("authz: viewers cannot modify reports")
	ErrNotOwner        = errors.New("authz: not the report owner")
	ErrWindowClosed    = errors.New("authz: report edit window closed")
)
