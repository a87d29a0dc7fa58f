package dto

// CreateReportResponse is returned after a successful submission.
type CreateReportResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries per-field validation messages; nothing was
// persisted when this is returned.
type ValidationErrorResponse struct {
	Error  bool     `json:"error"`
	Errors []string `json:"errors"`
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// AlertsResponse is the premium alerts view: recent reports plus headline
// counters for the hero section.
type AlertsResponse struct {
	Alerts      []ReportDetail `json:"alerts"`
	UrgentCount int            `json:"urgent_count"`
	RecentCount int            `json:"recent_count"`
}

// ReportDetail is the full record shape used by the details, dashboard and
// alerts views.
type ReportDetail struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Age          int     `json:"age"`
	Gender       string  `json:"gender"`
	Area         string  `json:"area"`
	Description  string  `json:"description"`
	LastSeenDate string  `json:"last_seen_date,omitempty"`
	LastSeenTime string  `json:"last_seen_time,omitempty"`
	Image        *string `json:"image"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}
