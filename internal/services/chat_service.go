// internal/services/chat_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

// ChatService stores the in-order message thread. There is no push transport;
// clients poll ListMessages.
type ChatService struct {
	db *gorm.DB
}

type SendMessageRequest struct {
	OrderID uuid.UUID          `json:"order_id" validate:"required"`
	Type    models.MessageType `json:"message_type,omitempty" validate:"omitempty,oneof=text image video"`
	Content string             `json:"content" validate:"required"`
}

type MarkAsReadRequest struct {
	MessageIDs []uuid.UUID `json:"message_ids" validate:"required,min=1"`
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// SendMessage appends a message to an order thread. The sender must be a
// participant; the receiver is always the other participant.
func (s *ChatService) SendMessage(senderID uuid.UUID, req *SendMessageRequest) (*models.ChatMessage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !order.IsParticipant(senderID) {
		return nil, fmt.Errorf("%w: sender is not an order participant", ErrForbidden)
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	message := &models.ChatMessage{
		OrderID:    order.ID,
		SenderID:   senderID,
		ReceiverID: order.Counterparty(senderID),
		Type:       msgType,
		Content:    req.Content,
	}

	if err := s.db.Create(message).Error; err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.db.Preload("Sender").Preload("Receiver").First(message, "id = ?", message.ID)

	return message, nil
}

// ListMessages returns the messages a user can see: everything where they are
// sender or receiver, optionally scoped to one order, oldest first.
func (s *ChatService) ListMessages(userID uuid.UUID, orderID *uuid.UUID, params utils.PaginationParams) ([]models.ChatMessage, int64, error) {
	query := s.db.Model(&models.ChatMessage{}).
		Preload("Sender").Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", userID, userID)

	if orderID != nil {
		query = query.Where("order_id = ?", *orderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count messages: %w", err)
	}

	query = query.Order("created_at")
	query = utils.ApplyPagination(query, params)

	var messages []models.ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return messages, total, nil
}

// MarkAsRead flips the read flag on the given messages, restricted to those
// the caller actually received. Ids the caller does not own are ignored.
func (s *ChatService) MarkAsRead(userID uuid.UUID, req *MarkAsReadRequest) (int64, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	result := s.db.Model(&models.ChatMessage{}).
		Where("id IN ? AND receiver_id = ?", req.MessageIDs, userID).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark messages as read: %w", result.Error)
	}

	return result.RowsAffected, nil
}
