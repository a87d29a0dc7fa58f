package query

import (
	"strings"
	"time"

	"github.com/rashidkhan4067/Rescue-Project/internal/identity"
	"github.com/rashidkhan4067/Rescue-Project/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mode selects which of the two presentation contracts a query serves. The
// paged pages filter on the persisted status field; the live dashboard
// approximates status from record age. The two are intentionally not unified.
type Mode int

const (
	ModePagedHuman Mode = iota
	ModeLiveCompact
)

// BuildFilter compiles criteria plus caller identity into a scoped GORM query
// with all WHERE conditions applied and no ordering. The ownership condition
// for non-admin callers is added first and cannot be removed by any criteria
// value.
func BuildFilter(db *gorm.DB, caller identity.Caller, crit Criteria, mode Mode, now time.Time) *gorm.DB {
	q := db.Model(&models.Report{})

	if !caller.IsAdmin {
		q = q.Where("owner_id = ?", caller.UserID)
	}

	if crit.Text != "" {
		pattern := likePattern(crit.Text)
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(area) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if crit.Gender != "" {
		q = q.Where("gender = ?", crit.Gender)
	}

	if crit.HasAgeRange {
		q = q.Where("age >= ? AND age <= ?", crit.AgeMin, crit.AgeMax)
	}

	if crit.Area != "" {
		q = q.Where("LOWER(area) LIKE ?", likePattern(crit.Area))
	}

	if crit.DateRange != "" {
		q = q.Where("created_at >= ?", windowStart(crit.DateRange, now))
	}

	if crit.Status != "" {
		switch mode {
		case ModePagedHuman:
			q = q.Where("status = ?", crit.Status)
		case ModeLiveCompact:
			// The live dashboard has no real status column semantics: it maps
			// the two tokens it understands onto record age and ignores the rest.
			switch crit.Status {
			case "resolved":
				q = q.Where("created_at < ?", now.AddDate(0, 0, -30))
			case "pending":
				q = q.Where("created_at > ?", now.AddDate(0, 0, -7))
			}
		}
	}

	return q
}

// ApplyOrder attaches the ordering for the criteria. A text query always wins:
// name matches sort before area matches, then recency. Otherwise the sort
// token applies with recency as tiebreak; status has no column of its own and
// orders by recency.
func ApplyOrder(q *gorm.DB, crit Criteria) *gorm.DB {
	if crit.Text != "" {
		pattern := likePattern(crit.Text)
		return q.Clauses(clause.OrderBy{
			Expression: clause.Expr{
				SQL:                "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, CASE WHEN LOWER(area) LIKE ? THEN 0 ELSE 1 END, created_at DESC",
				Vars:               []interface{}{pattern, pattern},
				WithoutParentheses: true,
			},
		})
	}

	switch crit.Sort {
	case "oldest":
		return q.Order("created_at ASC")
	case "name":
		return q.Order("name ASC, created_at DESC")
	case "age_asc":
		return q.Order("age ASC, created_at DESC")
	case "age_desc":
		return q.Order("age DESC, created_at DESC")
	case "area":
		return q.Order("area ASC, created_at DESC")
	default: // newest, status
		return q.Order("created_at DESC")
	}
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func windowStart(token string, now time.Time) time.Time {
	if token == "today" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return now.AddDate(0, 0, -dateWindows[token])
}
