package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType enumerates notification kinds
type NotificationType string

const NotificationLike NotificationType = "like"

// Notification represents a user notification (MongoDB)
type Notification struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	From      primitive.ObjectID `json:"from" bson:"from"`
	To        primitive.ObjectID `json:"to" bson:"to"`
	Type      NotificationType   `json:"type" bson:"type"`
	Read      bool               `json:"read" bson:"read"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// NotificationRecord is the PostgreSQL row for a notification when
// notifications are kept in the relational store
type NotificationRecord struct {
	ID        string    `gorm:"primaryKey;size:24"`
	FromID    string    `gorm:"size:24;index:idx_notification_from_to_type"`
	ToID      string    `gorm:"size:24;index:idx_notification_from_to_type"`
	Type      string    `gorm:"size:20;index:idx_notification_from_to_type"`
	Read      bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName pins the table name
func (NotificationRecord) TableName() string {
	return "notifications"
}
