package reconcile

import (
	"time"

	"portops/internal/domain"
)

const day = 24 * time.Hour

// DaysRemaining is ceil((expiry - now) / 1 day). Overdue expiries are negative.
func DaysRemaining(expiry, now time.Time) int {
	d := expiry.Sub(now)
	days := d / day
	if d%day > 0 {
		days++
	}
	return int(days)
}

// ClassifyDetention places an expiry into an urgency tier relative to now.
// Overdue containers are urgent.
func ClassifyDetention(expiry time.Time, cfg domain.DetentionConfig, now time.Time) domain.DetentionTier {
	days := DaysRemaining(expiry, now)
	switch {
	case days <= cfg.UrgentDays:
		return domain.DetentionUrgent
	case days <= cfg.WarningDays:
		return domain.DetentionWarning
	default:
		return domain.DetentionSafe
	}
}

// ClassifyDetentionString classifies an expiry given as a timestamp or date
// string. An unreadable expiry has no deadline to approach and is safe.
func ClassifyDetentionString(expiry string, cfg domain.DetentionConfig, now time.Time) domain.DetentionTier {
	t, ok := parseExpiry(expiry)
	if !ok {
		return domain.DetentionSafe
	}
	return ClassifyDetention(t, cfg, now)
}

func parseExpiry(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return ParseDate(s)
}
