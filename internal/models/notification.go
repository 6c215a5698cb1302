package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationType mirrors the severity levels shown to the user
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

// Notification is a user-visible message produced as a side effect of a
// document review or an order status change. Read/Archived are server-owned
// so dismissal survives device changes.
type Notification struct {
	ID      string           `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID  string           `gorm:"type:uuid;not null;index" json:"userId"`
	Type    NotificationType `gorm:"not null" json:"type"`
	Title   string           `gorm:"not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Data    datatypes.JSON   `json:"data,omitempty"`

	Read     bool `gorm:"default:false" json:"read"`
	Archived bool `gorm:"default:false;index" json:"archived"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
