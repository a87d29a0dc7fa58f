package models

import (
	"time"

	"github.com/google/uuid"
)

// Genders lists the accepted values for Report.Gender.
var Genders = []string{"Male", "Female", "Non-binary", "Other", "Prefer not to say"}

// Statuses lists the persisted status labels. The stored status is set at
// creation and is independent from the age-derived label the live dashboard
// shows; the two are not reconciled.
var Statuses = []string{"active", "resolved", "pending", "urgent"}

// Report is a missing-person record. OwnerID is immutable after creation;
// only the owner or an admin may see the row (enforced by the query layer,
// not by the store).
type Report struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Subject
	Name   string `gorm:"size:100;not null;index" json:"name"`
	Age    int    `gorm:"not null" json:"age"`
	Gender string `gorm:"size:20;not null" json:"gender"`

	// Location
	Area         string     `gorm:"size:200;not null;index" json:"area"`
	LastSeenDate *time.Time `gorm:"type:date" json:"last_seen_date,omitempty"`
	LastSeenTime string     `gorm:"size:5" json:"last_seen_time,omitempty"`

	// Description and media. Image holds a generated filename inside the
	// upload directory, never a caller-supplied path.
	Description string  `gorm:"type:text;not null" json:"description"`
	Image       *string `gorm:"size:100" json:"image,omitempty"`

	// Ownership and lifecycle
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
