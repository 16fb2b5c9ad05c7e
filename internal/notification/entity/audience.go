package entity

import (
	"time"
)

// AudienceUser is the read-only projection of the external users table that
// audience targeting and channel delivery need.
type AudienceUser struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	Role        string
	District    string
	State       string
	IsVerified  bool
	IsActive    bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

// AudienceFilter is a conjunctive predicate over user attributes. Nil fields
// impose no constraint.
type AudienceFilter struct {
	Role             *string `json:"role,omitempty"`
	District         *string `json:"district,omitempty"`
	State            *string `json:"state,omitempty"`
	IsVerified       *bool   `json:"is_verified,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	LastLoginDays    *int    `json:"last_login_days,omitempty"`
	RegistrationDays *int    `json:"registration_days,omitempty"`
}

// Matches reports whether the user satisfies every present predicate. Day
// windows convert to absolute cutoffs relative to now, so the same filter can
// match differently as time passes.
func (f AudienceFilter) Matches(u AudienceUser, now time.Time) bool {
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	if f.District != nil && u.District != *f.District {
		return false
	}
	if f.State != nil && u.State != *f.State {
		return false
	}
	if f.IsVerified != nil && u.IsVerified != *f.IsVerified {
		return false
	}
	if f.IsActive != nil && u.IsActive != *f.IsActive {
		return false
	}
	if f.LastLoginDays != nil {
		cutoff := now.AddDate(0, 0, -*f.LastLoginDays)
		if u.LastLoginAt == nil || u.LastLoginAt.Before(cutoff) {
			return false
		}
	}
	if f.RegistrationDays != nil {
		cutoff := now.AddDate(0, 0, -*f.RegistrationDays)
		if u.CreatedAt.Before(cutoff) {
			return false
		}
	}

	return true
}
