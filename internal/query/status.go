package query

import "time"

// DeriveStatus buckets a report by age for the live dashboard view. It is a
// display heuristic only and is never written back to the store; the persisted
// status field can and does disagree with it.
func DeriveStatus(now, createdAt time.Time) string {
	if createdAt.IsZero() {
		return "active"
	}
	daysOld := int(now.Sub(createdAt).Hours() / 24)
	switch {
	case daysOld > 30:
		return "resolved"
	case daysOld < 7:
		return "pending"
	case daysOld < 14:
		return "urgent"
	default:
		return "active"
	}
}
