package entity

import (
	"fmt"
	"time"
)

// TimeOfDay is minutes past midnight, parsed from "HH:MM".
type TimeOfDay int16

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(raw, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", raw, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", raw)
	}

	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// Preferences is one user's notification configuration.
//
// A user without a stored row gets DefaultPreferences; a row is only
// materialized on the first explicit save.
type Preferences struct {
	UserID int64

	NewMessage          bool
	PriorityMessage     bool
	ConversationStarted bool
	AdminResponse       bool

	Push    bool
	Email   bool
	Sound   bool
	Desktop bool

	Frequency         Frequency
	QuietHoursEnabled bool
	QuietHoursStart   TimeOfDay
	QuietHoursEnd     TimeOfDay

	UpdatedAt time.Time
}

func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:              userID,
		NewMessage:          true,
		PriorityMessage:     true,
		ConversationStarted: true,
		AdminResponse:       true,
		Push:                true,
		Email:               true,
		Sound:               true,
		Desktop:             true,
		Frequency:           FrequencyImmediate,
		QuietHoursEnabled:   false,
		QuietHoursStart:     22 * 60,
		QuietHoursEnd:       8 * 60,
	}
}

// KindEnabled reports whether the toggle for the given kind is on.
// Unknown kinds are allowed through.
func (p Preferences) KindEnabled(kind Kind) bool {
	switch kind {
	case KindNewMessage:
		return p.NewMessage
	case KindPriorityMessage:
		return p.PriorityMessage
	case KindConversationStarted:
		return p.ConversationStarted
	case KindAdminResponse:
		return p.AdminResponse
	default:
		return true
	}
}

// ChannelEnabled reports whether the toggle for the given channel is on.
// In-app and SMS carry no user toggle and always pass.
func (p Preferences) ChannelEnabled(ch Channel) bool {
	switch ch {
	case ChannelPush:
		return p.Push
	case ChannelEmail:
		return p.Email
	default:
		return true
	}
}

// InQuietHours reports whether now falls inside [start, end), treating the
// window as wrapping past midnight when start > end.
func (p Preferences) InQuietHours(now time.Time) bool {
	if !p.QuietHoursEnabled {
		return false
	}

	cur := TimeOfDay(now.Hour()*60 + now.Minute())
	start, end := p.QuietHoursStart, p.QuietHoursEnd
	if start == end {
		return false
	}
	if start < end {
		return cur >= start && cur < end
	}

	return cur >= start || cur < end
}

// PreferencesPatch is a partial update; nil fields leave the current value.
type PreferencesPatch struct {
	NewMessage          *bool
	PriorityMessage     *bool
	ConversationStarted *bool
	AdminResponse       *bool

	Push    *bool
	Email   *bool
	Sound   *bool
	Desktop *bool

	Frequency         *Frequency
	QuietHoursEnabled *bool
	QuietHoursStart   *TimeOfDay
	QuietHoursEnd     *TimeOfDay
}

// Apply merges the patch over base and returns the result.
func (pp PreferencesPatch) Apply(base Preferences) Preferences {
	out := base

	if pp.NewMessage != nil {
		out.NewMessage = *pp.NewMessage
	}
	if pp.PriorityMessage != nil {
		out.PriorityMessage = *pp.PriorityMessage
	}
	if pp.ConversationStarted != nil {
		out.ConversationStarted = *pp.ConversationStarted
	}
	if pp.AdminResponse != nil {
		out.AdminResponse = *pp.AdminResponse
	}
	if pp.Push != nil {
		out.Push = *pp.Push
	}
	if pp.Email != nil {
		out.Email = *pp.Email
	}
	if pp.Sound != nil {
		out.Sound = *pp.Sound
	}
	if pp.Desktop != nil {
		out.Desktop = *pp.Desktop
	}
	if pp.Frequency != nil {
		out.Frequency = *pp.Frequency
	}
	if pp.QuietHoursEnabled != nil {
		out.QuietHoursEnabled = *pp.QuietHoursEnabled
	}
	if pp.QuietHoursStart != nil {
		out.QuietHoursStart = *pp.QuietHoursStart
	}
	if pp.QuietHoursEnd != nil {
		out.QuietHoursEnd = *pp.QuietHoursEnd
	}

	return out
}
