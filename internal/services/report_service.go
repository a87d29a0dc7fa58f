package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rashidkhan4067/Rescue-Project/internal/identity"
	"github.com/rashidkhan4067/Rescue-Project/internal/media"
	"github.com/rashidkhan4067/Rescue-Project/internal/models"
	"github.com/rashidkhan4067/Rescue-Project/internal/notify"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("report not found")

const (
	adminAlertLimit = 50
	ownerAlertLimit = 20
)

// ReportService owns the report lifecycle: validated creation with optional
// image ingestion, detail lookup, and the dashboard/alerts listings.
type ReportService struct {
	db       *gorm.DB
	media    *media.Pipeline
	notifier notify.Notifier
}

func NewReportService(db *gorm.DB, pipeline *media.Pipeline, notifier notify.Notifier) *ReportService {
	return &ReportService{db: db, media: pipeline, notifier: notifier}
}

// CreateReportInput carries the raw form fields of a submission. Image is nil
// when the caller attached no file.
type CreateReportInput struct {
	Name         string
	Age          string
	Gender       string
	Area         string
	Description  string
	LastSeenDate string
	LastSeenTime string
	Image        *media.Upload
}

// Create validates the submission and persists it. Field problems come back
// as a message list with nothing persisted; a rejected or failed image upload
// never blocks the report.
func (s *ReportService) Create(caller identity.Caller, in CreateReportInput) (*models.Report, []string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Gender = strings.TrimSpace(in.Gender)
	in.Area = strings.TrimSpace(in.Area)
	in.Description = strings.TrimSpace(in.Description)

	var errs []string
	age := 0

	if in.Name == "" {
		errs = append(errs, "Name is required")
	} else if len(in.Name) < 2 || len(in.Name) > 100 {
		errs = append(errs, "Name must be between 2-100 characters")
	}

	if strings.TrimSpace(in.Age) == "" {
		errs = append(errs, "Age is required")
	} else {
		parsed, err := strconv.Atoi(strings.TrimSpace(in.Age))
		if err != nil {
			errs = append(errs, "Age must be a valid number")
		} else if parsed < 0 || parsed > 120 {
			errs = append(errs, "Age must be between 0 and 120")
		} else {
			age = parsed
		}
	}

	if in.Gender == "" {
		errs = append(errs, "Gender is required")
	} else if !validGender(in.Gender) {
		errs = append(errs, "Gender selection is invalid")
	}

	if in.Area == "" {
		errs = append(errs, "Location is required")
	} else if len(in.Area) < 3 || len(in.Area) > 200 {
		errs = append(errs, "Location must be between 3-200 characters")
	}

	if in.Description == "" {
		errs = append(errs, "Description is required")
	} else if len(in.Description) < 10 || len(in.Description) > 2000 {
		errs = append(errs, "Description must be between 10-2000 characters")
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}

	// Missing or unparseable date/time fall back to defaults by policy.
	lastSeenDate := parseDateOrToday(in.LastSeenDate)
	lastSeenTime := parseTimeOrNoon(in.LastSeenTime)

	var image *string
	if in.Image != nil {
		if filename := s.media.Ingest(*in.Image); filename != "" {
			image = &filename
		}
	}

	report := models.Report{
		Name:         in.Name,
		Age:          age,
		Gender:       in.Gender,
		Area:         in.Area,
		Description:  in.Description,
		LastSeenDate: &lastSeenDate,
		LastSeenTime: lastSeenTime,
		Image:        image,
		OwnerID:      caller.UserID,
		Status:       "active",
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create report: %w", err)
	}

	slog.Info("report submitted", "report_id", report.ID, "user_id", caller.UserID)
	s.notifier.Send(
		fmt.Sprintf("New missing person report #%d", report.ID),
		fmt.Sprintf("%s reported %s missing in %s.", caller.Username, report.Name, report.Area),
	)

	return &report, nil, nil
}

// Get returns a report visible to the caller. Reports of other owners are
// indistinguishable from missing ones for non-admin callers.
func (s *ReportService) Get(caller identity.Caller, id uint) (*models.Report, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	if !caller.IsAdmin && report.OwnerID != caller.UserID {
		return nil, ErrReportNotFound
	}

	return &report, nil
}

// Dashboard lists the caller's visible reports, newest first.
func (s *ReportService) Dashboard(caller identity.Caller) ([]models.Report, error) {
	var reports []models.Report
	q := s.db.Order("created_at DESC")
	if !caller.IsAdmin {
		q = q.Where("owner_id = ?", caller.UserID)
	}
	if err := q.Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}
	return reports, nil
}

// Alerts returns the recent-report feed plus the hero counters: the first
// three entries count as urgent and recent means the last 24 hours.
func (s *ReportService) Alerts(caller identity.Caller) ([]models.Report, int, int, error) {
	limit := ownerAlertLimit
	q := s.db.Order("created_at DESC")
	if caller.IsAdmin {
		limit = adminAlertLimit
	} else {
		q = q.Where("owner_id = ?", caller.UserID)
	}

	var reports []models.Report
	if err := q.Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, 0, fmt.Errorf("failed to load alerts: %w", err)
	}

	urgent := len(reports)
	if urgent > 3 {
		urgent = 3
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	recent := 0
	for _, r := range reports {
		if r.CreatedAt.After(cutoff) {
			recent++
		}
	}

	return reports, urgent, recent, nil
}

// Feedback records the message and notifies the operators best-effort.
func (s *ReportService) Feedback(caller identity.Caller, subject, message string) error {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return errors.New("subject and message are required")
	}

	fb := models.Feedback{
		UserID:  caller.UserID,
		Subject: subject,
		Message: message,
	}
	if err := s.db.Create(&fb).Error; err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	s.notifier.Send("Feedback: "+subject, "From: "+caller.Username+"\n\n"+message)
	return nil
}

func validGender(g string) bool {
	for _, v := range models.Genders {
		if v == g {
			return true
		}
	}
	return false
}

func parseDateOrToday(s string) time.Time {
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err == nil {
		return t
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseTimeOrNoon(s string) string {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err == nil {
		return strings.TrimSpace(s)
	}
	return "12:00"
}
