package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User owns reports and carries the caller identity (role gates admin visibility).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email    string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;default:'user'" json:"role"`

	AvatarURL   string         `gorm:"size:200" json:"avatar_url,omitempty"`
	SocialLinks datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"social_links"`

	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	PushNotifications  bool `gorm:"default:true" json:"push_notifications"`

	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
