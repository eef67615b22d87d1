package models

// Conversation represents a group of users exchanging messages.
// A conversation with zero messages is valid.
type Conversation struct {
	BaseModel
	Participants []User `gorm:"many2many:conversation_participants;" json:"participants,omitempty"`

	// Messages cascade-delete with the conversation
	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}
