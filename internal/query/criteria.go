package query

import (
	"strconv"
	"strings"
)

// Sort tokens accepted from callers. Anything else falls back to newest.
var sortTokens = map[string]bool{
	"newest":   true,
	"oldest":   true,
	"name":     true,
	"age_asc":  true,
	"age_desc": true,
	"area":     true,
	"status":   true,
}

// Date-window tokens and their length in days. "today" is special-cased to
// start of day rather than a fixed span.
var dateWindows = map[string]int{
	"today":   0,
	"week":    7,
	"month":   30,
	"3months": 90,
	"6months": 180,
	"year":    365,
}

// Raw carries the untrusted request parameters before normalization. Handlers
// fill it from query args or form fields; nothing downstream reads a raw
// parameter again.
type Raw struct {
	Text      string
	Gender    string
	AgeRange  string
	Area      string
	DateRange string
	Status    string
	Sort      string
}

// Criteria is the normalized, typed filter set. Zero values mean "no
// constraint".
type Criteria struct {
	Text        string
	Gender      string
	AgeMin      int
	AgeMax      int
	HasAgeRange bool
	Area        string
	DateRange   string
	Status      string
	Sort        string
}

// Parse normalizes raw parameters into Criteria. Malformed optional tokens
// (bad age range, unknown date window or sort) are dropped silently rather
// than surfaced as errors.
func Parse(raw Raw) Criteria {
	crit := Criteria{
		Text:   strings.TrimSpace(raw.Text),
		Gender: strings.TrimSpace(raw.Gender),
		Area:   strings.TrimSpace(raw.Area),
		Status: strings.TrimSpace(raw.Status),
		Sort:   "newest",
	}

	if min, max, ok := parseAgeRange(raw.AgeRange); ok {
		crit.AgeMin = min
		crit.AgeMax = max
		crit.HasAgeRange = true
	}

	if window := strings.TrimSpace(raw.DateRange); dateWindows[window] > 0 || window == "today" {
		crit.DateRange = window
	}

	if sort := strings.TrimSpace(raw.Sort); sortTokens[sort] {
		crit.Sort = sort
	}

	return crit
}

func parseAgeRange(s string) (int, int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !strings.Contains(s, "-") {
		return 0, 0, false
	}
	parts := strings.SplitN(s, "-", 2)
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return min, max, true
}
