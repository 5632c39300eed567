package auditlog

import (
	"time"
)

// Audit actions recorded by this service
const (
	ActionUserRegistered = "USER_REGISTERED"
	ActionUserLogin      = "USER_LOGIN"
	ActionEventCreated   = "EVENT_CREATED"
	ActionEventUpdated   = "EVENT_UPDATED"
	ActionEventDeleted   = "EVENT_DELETED"
	ActionEventJoined    = "EVENT_JOINED"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`  // nullable (e.g. failed login)
	EventID   *uint     `gorm:"index" json:"event_id"` // nullable (auth actions)
	Action    string    `gorm:"size:100;not null;index" json:"action"`
	Details   string    `gorm:"type:jsonb" json:"details"` // freeform JSON details
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	RequestID string    `gorm:"size:36;index" json:"request_id"`
	Status    string    `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}
