package query

import (
	"fmt"
	"time"

	"github.com/rashidkhan4067/Rescue-Project/internal/identity"
	"github.com/rashidkhan4067/Rescue-Project/internal/models"
	"gorm.io/gorm"
)

const (
	// PageSize is fixed for paged search views.
	PageSize = 12
	// SuggestionLimit caps the header autocomplete list.
	SuggestionLimit = 5
	// descriptionLimit is where paged views cut long descriptions.
	descriptionLimit = 150
)

// Engine executes compiled predicates against the store and shapes results
// for the three consumer contracts: paged search, header suggestions and the
// live dashboard filter.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// SearchResult is one row of a paged search/filter view.
type SearchResult struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Area        string  `json:"area"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	URL         string  `json:"url"`
}

// PageMeta carries navigation state for a paged view.
type PageMeta struct {
	Page        int  `json:"page"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// PageResult is the full search page view model.
type PageResult struct {
	Results      []SearchResult `json:"results"`
	Query        string         `json:"query"`
	TotalResults int64          `json:"total_results"`
	Pagination   PageMeta       `json:"pagination"`
}

// Suggestion is one autocomplete entry.
type Suggestion struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	ID   uint   `json:"id"`
}

// LiveResult is one row of the live dashboard filter. Status here is the
// age-derived label, not the persisted field, and the timestamp format is
// compact; both differ deliberately from SearchResult.
type LiveResult struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Age         int     `json:"age"`
	Gender      string  `json:"gender"`
	Area        string  `json:"area"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// Search runs a paged query. An empty text query is the default listing view,
// not an error: it returns the caller's visible reports newest first.
func (e *Engine) Search(caller identity.Caller, crit Criteria, page int) (*PageResult, error) {
	if page < 1 {
		page = 1
	}
	now := time.Now()

	var total int64
	if err := BuildFilter(e.db, caller, crit, ModePagedHuman, now).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	var reports []models.Report
	q := ApplyOrder(BuildFilter(e.db, caller, crit, ModePagedHuman, now), crit)
	if err := q.Limit(PageSize).Offset((page - 1) * PageSize).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	results := make([]SearchResult, len(reports))
	for i, r := range reports {
		results[i] = SearchResult{
			ID:          r.ID,
			Name:        r.Name,
			Age:         r.Age,
			Gender:      r.Gender,
			Area:        r.Area,
			Description: truncate(r.Description, descriptionLimit),
			Image:       servableImage(r.Image),
			Status:      r.Status,
			CreatedAt:   humanDate(r.CreatedAt),
			URL:         reportURL(r.ID),
		}
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	return &PageResult{
		Results:      results,
		Query:        crit.Text,
		TotalResults: total,
		Pagination: PageMeta{
			Page:        page,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, nil
}

// Suggest returns at most SuggestionLimit autocomplete entries. An empty
// query returns an empty list without touching the store.
func (e *Engine) Suggest(caller identity.Caller, crit Criteria) ([]Suggestion, error) {
	if crit.Text == "" {
		return []Suggestion{}, nil
	}

	var reports []models.Report
	q := ApplyOrder(BuildFilter(e.db, caller, crit, ModePagedHuman, time.Now()), crit)
	if err := q.Limit(SuggestionLimit).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}

	suggestions := make([]Suggestion, len(reports))
	for i, r := range reports {
		suggestions[i] = Suggestion{
			Text: r.Name + " - " + r.Area,
			URL:  reportURL(r.ID),
			ID:   r.ID,
		}
	}
	return suggestions, nil
}

// FilterAll runs the advanced filter page query: the full matching set in
// paged-human formatting with persisted status, no pagination.
func (e *Engine) FilterAll(caller identity.Caller, crit Criteria) ([]SearchResult, error) {
	var reports []models.Report
	q := ApplyOrder(BuildFilter(e.db, caller, crit, ModePagedHuman, time.Now()), crit)
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	results := make([]SearchResult, len(reports))
	for i, r := range reports {
		results[i] = SearchResult{
			ID:          r.ID,
			Name:        r.Name,
			Age:         r.Age,
			Gender:      r.Gender,
			Area:        r.Area,
			Description: truncate(r.Description, descriptionLimit),
			Image:       servableImage(r.Image),
			Status:      r.Status,
			CreatedAt:   humanDate(r.CreatedAt),
			URL:         reportURL(r.ID),
		}
	}
	return results, nil
}

// LiveFilter runs the unpaginated dashboard query with age-derived status and
// compact timestamps.
func (e *Engine) LiveFilter(caller identity.Caller, crit Criteria) ([]LiveResult, error) {
	now := time.Now()

	var reports []models.Report
	q := ApplyOrder(BuildFilter(e.db, caller, crit, ModeLiveCompact, now), crit)
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}

	results := make([]LiveResult, len(reports))
	for i, r := range reports {
		results[i] = LiveResult{
			ID:          r.ID,
			Name:        r.Name,
			Age:         r.Age,
			Gender:      r.Gender,
			Area:        r.Area,
			Description: r.Description,
			Image:       r.Image,
			Status:      DeriveStatus(now, r.CreatedAt),
			CreatedAt:   compactTime(r.CreatedAt),
		}
	}
	return results, nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func servableImage(filename *string) *string {
	if filename == nil || *filename == "" {
		return nil
	}
	url := "/uploads/" + *filename
	return &url
}

func reportURL(id uint) string {
	return fmt.Sprintf("/api/reports/%d", id)
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return "Recent"
	}
	return t.Format("January 2, 2006")
}

func compactTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006-01-02 15:04")
}
