// internal/models/chat_message.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessage struct {
	ID         uuid.UUID   `json:"id" gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID   `json:"order_id" gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID   `json:"sender_id" gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID   `json:"receiver_id" gorm:"type:uuid;not null;index"`
	Type       MessageType `json:"message_type" gorm:"type:varchar(10);default:'text'"`
	Content    string      `json:"content" gorm:"type:text;not null"`
	IsRead     bool        `json:"is_read" gorm:"default:false"`
	CreatedAt  time.Time   `json:"created_at"`

	// Relationships
	Order    Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Sender   User  `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver User  `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
