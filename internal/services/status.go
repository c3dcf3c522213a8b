package services

import (
	"time"

	types "github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/domain"
	"github.com/ankitsrivastava6773-gmb/gmb-lite-system/internal/platform/apierr"
)

const (
	MsgServiceInactive   = "Service inactive"
	MsgServiceNotStarted = "Service not started"
	MsgServiceExpired    = "Service expired"
)

// DefaultServiceLocation is UTC+05:30, used when no zone database entry is
// available.
var DefaultServiceLocation = time.FixedZone("IST", 5*60*60+30*60)

// StatusGuard decides whether a client may currently use the service.
// Subscription dates are calendar days in Location.
type StatusGuard struct {
	Location *time.Location
	Now      func() time.Time
}

func NewStatusGuard(loc *time.Location) StatusGuard {
	if loc == nil {
		loc = DefaultServiceLocation
	}
	return StatusGuard{Location: loc, Now: time.Now}
}

// LoadServiceLocation resolves a zone name, falling back to UTC+05:30.
func LoadServiceLocation(name string) *time.Location {
	if name == "" {
		return DefaultServiceLocation
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return DefaultServiceLocation
	}
	return loc
}

// Check returns a 403 *apierr.Error when the client is switched off or
// outside its start/end dates. Both bounds are inclusive.
func (g StatusGuard) Check(client *types.Client) error {
	if client == nil {
		return nil
	}
	if !client.IsActive {
		return apierr.Forbidden("service_inactive", MsgServiceInactive)
	}
	if client.StartDate == nil && client.EndDate == nil {
		return nil
	}
	loc := g.Location
	if loc == nil {
		loc = DefaultServiceLocation
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	today := dayOf(now().In(loc))
	if client.StartDate != nil && today < dayOf(*client.StartDate) {
		return apierr.Forbidden("service_not_started", MsgServiceNotStarted)
	}
	if client.EndDate != nil && today > dayOf(*client.EndDate) {
		return apierr.Forbidden("service_expired", MsgServiceExpired)
	}
	return nil
}

// dayOf packs a calendar date as yyyymmdd in the time's own location.
func dayOf(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// ParseDate accepts "YYYY-MM-DD"; blank input yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
