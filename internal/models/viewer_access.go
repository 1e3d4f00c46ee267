package models

import "time"

type GrantStatus string

const (
	GrantActive  GrantStatus = "active"
	GrantExpired GrantStatus = "expired"
	GrantRevoked GrantStatus = "revoked"
)

// ViewerAccess is a temporary read-only login grant for a viewer account.
// Grants are never deleted; revoked and expired rows stay as an audit trail.
type ViewerAccess struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `json:"user,omitempty"`

	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`

	CreatedBy uint   `json:"created_by"` // admin User.ID
	Notes     string `gorm:"type:text" json:"notes"`
}

// ValidAt reports whether the grant still allows login at the given time.
func (v *ViewerAccess) ValidAt(now time.Time) bool {
	return v.RevokedAt == nil && now.Before(v.ExpiresAt)
}

// Status derives the display state: revoked wins over expired.
func (v *ViewerAccess) Status(now time.Time) GrantStatus {
	if v.RevokedAt != nil {
		return GrantRevoked
	}
	if !now.Before(v.ExpiresAt) {
		return GrantExpired
	}
	return GrantActive
}
