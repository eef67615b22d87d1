package models

import (
	"time"
)

// MessageHistory is an append-only log entry recording the content a message
// had before an edit. Rows are never mutated or deleted once written.
type MessageHistory struct {
	BaseModel
	MessageID  string    `gorm:"size:36;index;not null" json:"messageId"`
	OldContent string    `gorm:"type:text;not null" json:"oldContent"`
	EditedByID string    `gorm:"size:36;not null" json:"editedById"`
	EditedAt   time.Time `gorm:"index;not null" json:"editedAt"`

	EditedBy User `gorm:"foreignKey:EditedByID" json:"editedBy,omitempty"`
}
