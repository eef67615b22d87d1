package models

import (
	"time"
)

// Message represents a message inside a conversation. A message with a
// non-null receiver is a direct message; a message with a non-null parent
// is a reply. The parent, when set, must belong to the same conversation.
type Message struct {
	BaseModel
	SenderID       string     `gorm:"size:36;index;not null" json:"senderId"`
	ReceiverID     *string    `gorm:"size:36;index" json:"receiverId,omitempty"`
	ConversationID string     `gorm:"size:36;index:idx_conversation_parent,priority:1;not null" json:"conversationId"`
	ParentID       *string    `gorm:"size:36;index:idx_conversation_parent,priority:2" json:"parentId,omitempty"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	Read           bool       `gorm:"default:false;index" json:"read"`
	Edited         bool       `gorm:"default:false" json:"edited"`
	EditedAt       *time.Time `json:"editedAt,omitempty"`

	// Relations
	Sender   User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`

	// History rows cascade-delete with the message
	History []MessageHistory `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsReply reports whether the message is a reply to another message.
func (m *Message) IsReply() bool {
	return m.ParentID != nil
}

// IsDirect reports whether the message is addressed to a specific receiver.
func (m *Message) IsDirect() bool {
	return m.ReceiverID != nil
}
