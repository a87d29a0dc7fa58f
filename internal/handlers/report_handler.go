package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rashidkhan4067/Rescue-Project/internal/dto"
	"github.com/rashidkhan4067/Rescue-Project/internal/identity"
	"github.com/rashidkhan4067/Rescue-Project/internal/media"
	"github.com/rashidkhan4067/Rescue-Project/internal/models"
	"github.com/rashidkhan4067/Rescue-Project/internal/query"
	"github.com/rashidkhan4067/Rescue-Project/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
	engine  *query.Engine
}

func NewReportHandler(reports *services.ReportService, engine *query.Engine) *ReportHandler {
	return &ReportHandler{reports: reports, engine: engine}
}

// Create handles POST /reports - multipart report submission with optional image.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	in := services.CreateReportInput{
		Name:         c.FormValue("name"),
		Age:          c.FormValue("age"),
		Gender:       c.FormValue("gender"),
		Area:         c.FormValue("area"),
		Description:  c.FormValue("description"),
		LastSeenDate: c.FormValue("last_seen_date"),
		LastSeenTime: c.FormValue("last_seen_time"),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		src, err := file.Open()
		if err == nil {
			defer src.Close()
			in.Image = &media.Upload{
				Filename: file.Filename,
				Size:     file.Size,
				Reader:   src,
			}
		}
	}

	report, fieldErrs, err := h.reports.Create(caller, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to submit report",
		})
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Errors: fieldErrs,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		ID:      report.ID,
		Message: "Report submitted successfully!",
	})
}

// Details handles GET /reports/:id.
func (h *ReportHandler) Details(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.reports.Get(caller, uint(id))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load report",
		})
	}

	return c.JSON(reportDetail(report))
}

// Search handles GET /search?q=&page=&suggestions= - the paged search view
// and the header autocomplete share one predicate.
func (h *ReportHandler) Search(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	crit := query.Parse(query.Raw{Text: c.Query("q")})

	if c.Query("suggestions") == "true" {
		suggestions, err := h.engine.Suggest(caller, crit)
		if err != nil {
			return searchFailed(c, err)
		}
		return c.JSON(suggestions)
	}

	page := c.QueryInt("page", 1)
	result, err := h.engine.Search(caller, crit, page)
	if err != nil {
		return searchFailed(c, err)
	}
	return c.JSON(result)
}

// Filter handles GET /filter - the full-page advanced filter. Unpaginated,
// persisted status semantics.
func (h *ReportHandler) Filter(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	crit := query.Parse(query.Raw{
		Text:      c.Query("q"),
		Gender:    c.Query("gender"),
		AgeRange:  c.Query("age_range"),
		Area:      c.Query("area"),
		DateRange: c.Query("date_range"),
		Status:    c.Query("status"),
		Sort:      c.Query("sort"),
	})

	results, err := h.engine.FilterAll(caller, crit)
	if err != nil {
		return searchFailed(c, err)
	}
	return c.JSON(fiber.Map{"reports": results})
}

// FilterReports handles POST /filter_reports - the live dashboard filter
// (form-encoded, derived status, compact timestamps).
func (h *ReportHandler) FilterReports(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	crit := query.Parse(query.Raw{
		Text:      c.FormValue("search"),
		Status:    c.FormValue("status"),
		Area:      c.FormValue("area"),
		DateRange: c.FormValue("date"),
		Sort:      c.FormValue("sort"),
	})

	results, err := h.engine.LiveFilter(caller, crit)
	if err != nil {
		return searchFailed(c, err)
	}
	return c.JSON(results)
}

// Dashboard handles GET /dashboard.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.reports.Dashboard(caller)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load dashboard",
		})
	}

	return c.JSON(fiber.Map{"reports": detailList(reports)})
}

// Alerts handles GET /alerts.
func (h *ReportHandler) Alerts(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, urgent, recent, err := h.reports.Alerts(caller)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load alerts",
		})
	}

	return c.JSON(dto.AlertsResponse{
		Alerts:      detailList(reports),
		UrgentCount: urgent,
		RecentCount: recent,
	})
}

// Feedback handles POST /feedback.
func (h *ReportHandler) Feedback(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.reports.Feedback(caller, req.Subject, req.Message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Feedback submitted successfully!"})
}

func reportDetail(r *models.Report) dto.ReportDetail {
	d := dto.ReportDetail{
		ID:           r.ID,
		Name:         r.Name,
		Age:          r.Age,
		Gender:       r.Gender,
		Area:         r.Area,
		Description:  r.Description,
		LastSeenTime: r.LastSeenTime,
		Image:        r.Image,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
	if r.LastSeenDate != nil {
		d.LastSeenDate = r.LastSeenDate.Format("2006-01-02")
	}
	return d
}

func detailList(reports []models.Report) []dto.ReportDetail {
	out := make([]dto.ReportDetail, len(reports))
	for i := range reports {
		out[i] = reportDetail(&reports[i])
	}
	return out
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func searchFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Search failed: " + err.Error(),
	})
}
