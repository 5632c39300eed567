package event

import (
	"time"

	"gorm.io/datatypes"
)

// ============================
// 🔷 GORM Event Model
//
// Date is stored as a zero-padded ISO "YYYY-MM-DD" string (always exactly 10
// characters) so range filters compare lexicographically.
type Event struct {
	ID            uint                      `gorm:"primaryKey" json:"id"`
	Title         string                    `gorm:"type:varchar(255);not null;index" json:"title"`
	Description   string                    `gorm:"type:text" json:"description"`
	Location      string                    `gorm:"type:text" json:"location"`
	Image         string                    `gorm:"type:text" json:"image"`
	Name          string                    `gorm:"type:varchar(255)" json:"name"` // organizer display name
	Date          string                    `gorm:"type:varchar(10);not null;index" json:"date"`
	Time          string                    `gorm:"type:varchar(20)" json:"time"`
	AttendeeCount int                       `gorm:"not null;default:0" json:"attendeeCount"`
	CreatedBy     uint                      `gorm:"not null;index" json:"createdBy"`
	JoinedUsers   datatypes.JSONSlice[uint] `gorm:"type:jsonb" json:"joinedUsers"`
	CreatedAt     time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Date        string `json:"date" binding:"required"` // 🛠 string format: "2006-01-02"
	Time        string `json:"time"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Name        string `json:"name"`
	Date        string `json:"date" binding:"required"` // 🛠 string
	Time        string `json:"time"`
}
