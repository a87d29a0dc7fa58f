package query

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rashidkhan4067/Rescue-Project/internal/identity"
	"github.com/rashidkhan4067/Rescue-Project/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Report{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

type seed struct {
	owner     uuid.UUID
	name      string
	area      string
	desc      string
	age       int
	gender    string
	status    string
	createdAt time.Time
	image     string
}

func insertReport(t *testing.T, db *gorm.DB, s seed) models.Report {
	t.Helper()
	if s.gender == "" {
		s.gender = "Male"
	}
	if s.status == "" {
		s.status = "active"
	}
	if s.desc == "" {
		s.desc = "last seen wearing a blue jacket"
	}
	if s.createdAt.IsZero() {
		s.createdAt = time.Now()
	}
	r := models.Report{
		Name:        s.name,
		Age:         s.age,
		Gender:      s.gender,
		Area:        s.area,
		Description: s.desc,
		OwnerID:     s.owner,
		Status:      s.status,
		CreatedAt:   s.createdAt,
	}
	if s.image != "" {
		r.Image = &s.image
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}
	return r
}

func TestSearchVisibilityScoping(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)

	alice := uuid.New()
	bob := uuid.New()

	mine := insertReport(t, db, seed{owner: alice, name: "Casey Park", area: "Downtown", age: 30})
	insertReport(t, db, seed{owner: bob, name: "Jordan Reyes", area: "Downtown", age: 45})

	result, err := engine.Search(identity.Caller{UserID: alice}, Parse(Raw{}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if result.TotalResults != 1 {
		t.Fatalf("TotalResults = %d, want 1", result.TotalResults)
	}
	if result.Results[0].ID != mine.ID {
		t.Errorf("got report %d, want own report %d", result.Results[0].ID, mine.ID)
	}

	adminResult, err := engine.Search(identity.Caller{UserID: uuid.New(), IsAdmin: true}, Parse(Raw{}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if adminResult.TotalResults != 2 {
		t.Errorf("admin TotalResults = %d, want 2", adminResult.TotalResults)
	}
}

func TestSearchRelevanceRanking(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()
	now := time.Now()

	// Description-only match, most recent: would be first under newest sort.
	descHit := insertReport(t, db, seed{
		owner: owner, name: "Morgan Diaz", area: "Harbor",
		desc: "last seen near the riverside path", age: 25, createdAt: now,
	})
	areaHit := insertReport(t, db, seed{
		owner: owner, name: "Taylor Kim", area: "Riverside", age: 31,
		createdAt: now.Add(-2 * time.Hour),
	})
	nameHit := insertReport(t, db, seed{
		owner: owner, name: "River Stone", area: "Hilltop", age: 19,
		createdAt: now.Add(-4 * time.Hour),
	})
	insertReport(t, db, seed{
		owner: owner, name: "Alex Pine", area: "Meadow", age: 52,
		createdAt: now.Add(-1 * time.Hour),
	})

	result, err := engine.Search(identity.Caller{UserID: owner}, Parse(Raw{Text: "river"}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if result.TotalResults != 3 {
		t.Fatalf("TotalResults = %d, want 3", result.TotalResults)
	}
	wantOrder := []uint{nameHit.ID, areaHit.ID, descHit.ID}
	for i, want := range wantOrder {
		if result.Results[i].ID != want {
			t.Errorf("result[%d].ID = %d, want %d", i, result.Results[i].ID, want)
		}
	}
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()
	now := time.Now()

	for i := 0; i < 30; i++ {
		insertReport(t, db, seed{
			owner: owner, name: fmt.Sprintf("Person %02d", i), area: "Midtown",
			age: 20 + i%50, createdAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	caller := identity.Caller{UserID: owner}
	seen := make(map[uint]bool)
	var total int64

	for page := 1; page <= 3; page++ {
		result, err := engine.Search(caller, Parse(Raw{}), page)
		if err != nil {
			t.Fatalf("Search(page=%d) error = %v", page, err)
		}
		if result.TotalResults != 30 {
			t.Errorf("page %d TotalResults = %d, want 30", page, result.TotalResults)
		}
		if page == 1 {
			total = result.TotalResults
		} else if result.TotalResults != total {
			t.Errorf("TotalResults drifted across pages: %d vs %d", result.TotalResults, total)
		}

		wantLen := PageSize
		if page == 3 {
			wantLen = 6
		}
		if len(result.Results) != wantLen {
			t.Errorf("page %d len = %d, want %d", page, len(result.Results), wantLen)
		}
		for _, r := range result.Results {
			if seen[r.ID] {
				t.Errorf("report %d appeared on more than one page", r.ID)
			}
			seen[r.ID] = true
		}

		wantNext := page < 3
		if result.Pagination.HasNext != wantNext {
			t.Errorf("page %d HasNext = %v, want %v", page, result.Pagination.HasNext, wantNext)
		}
		if result.Pagination.HasPrevious != (page > 1) {
			t.Errorf("page %d HasPrevious = %v", page, result.Pagination.HasPrevious)
		}
	}

	if len(seen) != 30 {
		t.Errorf("pages concatenated to %d distinct ids, want 30", len(seen))
	}
}

func TestSuggestEmptyQuerySkipsStore(t *testing.T) {
	// A nil DB proves the fast path never touches the store.
	engine := NewEngine(nil)
	suggestions, err := engine.Suggest(identity.Caller{UserID: uuid.New()}, Parse(Raw{}))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if suggestions == nil || len(suggestions) != 0 {
		t.Errorf("Suggest(\"\") = %v, want empty list", suggestions)
	}
}

func TestSuggestLimitAndShape(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()

	for i := 0; i < 8; i++ {
		insertReport(t, db, seed{
			owner: owner, name: fmt.Sprintf("Jamie %d", i), area: "Old Town", age: 40,
			createdAt: time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}

	suggestions, err := engine.Suggest(identity.Caller{UserID: owner}, Parse(Raw{Text: "jamie"}))
	if err != nil {
		t.Fatalf("Suggest() error = %v", err)
	}
	if len(suggestions) != SuggestionLimit {
		t.Fatalf("len = %d, want %d", len(suggestions), SuggestionLimit)
	}
	first := suggestions[0]
	if first.Text != "Jamie 0 - Old Town" {
		t.Errorf("Text = %q, want %q", first.Text, "Jamie 0 - Old Town")
	}
	if !strings.HasPrefix(first.URL, "/api/reports/") {
		t.Errorf("URL = %q", first.URL)
	}
}

func TestDateWindowWeek(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()
	now := time.Now()

	in := insertReport(t, db, seed{owner: owner, name: "Recent Case", area: "North", age: 10, createdAt: now.Add(-6 * 24 * time.Hour)})
	insertReport(t, db, seed{owner: owner, name: "Stale Case", area: "North", age: 11, createdAt: now.Add(-8 * 24 * time.Hour)})

	results, err := engine.FilterAll(identity.Caller{UserID: owner}, Parse(Raw{DateRange: "week"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	if results[0].ID != in.ID {
		t.Errorf("got %d, want %d", results[0].ID, in.ID)
	}
}

func TestMalformedAgeRangeIgnored(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()

	insertReport(t, db, seed{owner: owner, name: "One", area: "East", age: 8})
	insertReport(t, db, seed{owner: owner, name: "Two", area: "East", age: 80})

	caller := identity.Caller{UserID: owner}
	malformed, err := engine.Search(caller, Parse(Raw{AgeRange: "abc"}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	unfiltered, err := engine.Search(caller, Parse(Raw{}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if malformed.TotalResults != unfiltered.TotalResults {
		t.Errorf("malformed age range changed results: %d vs %d", malformed.TotalResults, unfiltered.TotalResults)
	}

	ranged, err := engine.Search(caller, Parse(Raw{AgeRange: "5-10"}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if ranged.TotalResults != 1 {
		t.Errorf("valid range TotalResults = %d, want 1", ranged.TotalResults)
	}
}

func TestLiveFilterDerivedStatus(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()

	// Persisted status stays "active"; the live view derives "resolved" from age.
	insertReport(t, db, seed{
		owner: owner, name: "Old Case", area: "South", age: 60,
		status: "active", createdAt: time.Now().Add(-31 * 24 * time.Hour),
	})

	live, err := engine.LiveFilter(identity.Caller{UserID: owner}, Parse(Raw{}))
	if err != nil {
		t.Fatalf("LiveFilter() error = %v", err)
	}
	if len(live) != 1 {
		t.Fatalf("len = %d, want 1", len(live))
	}
	if live[0].Status != "resolved" {
		t.Errorf("live status = %q, want resolved", live[0].Status)
	}
	if matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, live[0].CreatedAt); !matched {
		t.Errorf("live created_at = %q, want compact format", live[0].CreatedAt)
	}

	paged, err := engine.Search(identity.Caller{UserID: owner}, Parse(Raw{}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if paged.Results[0].Status != "active" {
		t.Errorf("paged status = %q, want persisted active", paged.Results[0].Status)
	}
	if matched, _ := regexp.MatchString(`^[A-Z][a-z]+ \d{1,2}, \d{4}$`, paged.Results[0].CreatedAt); !matched {
		t.Errorf("paged created_at = %q, want human format", paged.Results[0].CreatedAt)
	}
}

func TestLiveFilterStatusTokenUsesAge(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()
	now := time.Now()

	fresh := insertReport(t, db, seed{owner: owner, name: "Fresh", area: "West", age: 5, createdAt: now.Add(-2 * 24 * time.Hour)})
	insertReport(t, db, seed{owner: owner, name: "Aging", area: "West", age: 6, createdAt: now.Add(-20 * 24 * time.Hour)})

	live, err := engine.LiveFilter(identity.Caller{UserID: owner}, Parse(Raw{Status: "pending"}))
	if err != nil {
		t.Fatalf("LiveFilter() error = %v", err)
	}
	if len(live) != 1 || live[0].ID != fresh.ID {
		t.Errorf("pending filter = %+v, want only report %d", live, fresh.ID)
	}

	// The paged path matches the persisted column instead.
	paged, err := engine.FilterAll(identity.Caller{UserID: owner}, Parse(Raw{Status: "pending"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if len(paged) != 0 {
		t.Errorf("paged status filter matched %d persisted-active reports, want 0", len(paged))
	}
}

func TestSearchFormatting(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()

	longDesc := strings.Repeat("a", 200)
	insertReport(t, db, seed{owner: owner, name: "With Image", area: "Plaza", age: 33, desc: longDesc, image: "abc123.jpg"})

	result, err := engine.Search(identity.Caller{UserID: owner}, Parse(Raw{}), 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	r := result.Results[0]
	if len(r.Description) != 153 || !strings.HasSuffix(r.Description, "...") {
		t.Errorf("description not truncated: len=%d", len(r.Description))
	}
	if r.Image == nil || *r.Image != "/uploads/abc123.jpg" {
		t.Errorf("image = %v, want /uploads/abc123.jpg", r.Image)
	}
}

func TestSortTokens(t *testing.T) {
	db := newTestDB(t)
	engine := NewEngine(db)
	owner := uuid.New()
	now := time.Now()

	insertReport(t, db, seed{owner: owner, name: "Zed", area: "B", age: 50, createdAt: now.Add(-1 * time.Hour)})
	insertReport(t, db, seed{owner: owner, name: "Amy", area: "C", age: 30, createdAt: now.Add(-2 * time.Hour)})
	insertReport(t, db, seed{owner: owner, name: "Mia", area: "A", age: 40, createdAt: now})

	caller := identity.Caller{UserID: owner}

	byName, err := engine.FilterAll(caller, Parse(Raw{Sort: "name"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if byName[0].Name != "Amy" || byName[2].Name != "Zed" {
		t.Errorf("name sort order wrong: %s, %s, %s", byName[0].Name, byName[1].Name, byName[2].Name)
	}

	byAge, err := engine.FilterAll(caller, Parse(Raw{Sort: "age_desc"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if byAge[0].Age != 50 || byAge[2].Age != 30 {
		t.Errorf("age_desc order wrong: %d, %d, %d", byAge[0].Age, byAge[1].Age, byAge[2].Age)
	}

	// status has no ordering of its own: newest first.
	byStatus, err := engine.FilterAll(caller, Parse(Raw{Sort: "status"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if byStatus[0].Name != "Mia" {
		t.Errorf("status sort should fall back to newest, got %s first", byStatus[0].Name)
	}

	oldest, err := engine.FilterAll(caller, Parse(Raw{Sort: "oldest"}))
	if err != nil {
		t.Fatalf("FilterAll() error = %v", err)
	}
	if oldest[0].Name != "Amy" {
		t.Errorf("oldest sort should start with Amy, got %s", oldest[0].Name)
	}
}
