package models

// NotificationType tags the kind of event a notification was created for
type NotificationType string

const (
	NotificationTypeMessage NotificationType = "message"
)

// Notification is created for the receiver of a direct message, exactly once,
// in the same transaction as the message write.
type Notification struct {
	BaseModel
	UserID    string           `gorm:"size:36;index;not null" json:"userId"`
	MessageID string           `gorm:"size:36;index;not null" json:"messageId"`
	Type      NotificationType `gorm:"size:20;default:'message'" json:"type"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	IsRead    bool             `gorm:"default:false" json:"isRead"`

	Message Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
}
