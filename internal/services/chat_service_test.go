// internal/services/chat_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

type ChatServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	chat     *ChatService
	buyer    *models.User
	seller   *models.User
	stranger *models.User
	order    *models.Order
}

func (suite *ChatServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.chat = NewChatService(suite.db)
	suite.buyer = createTestUser(suite.T(), suite.db, "buyer")
	suite.seller = createTestUser(suite.T(), suite.db, "seller")
	suite.stranger = createTestUser(suite.T(), suite.db, "stranger")

	orders := NewOrderService(suite.db, newTestPaymentService())
	product := createTestProduct(suite.T(), suite.db, suite.seller.ID, "Chat Python", 100, models.ProductStatusAvailable)
	suite.order = createTestOrder(suite.T(), suite.db, orders, suite.buyer.ID, product.ID)
}

func (suite *ChatServiceTestSuite) TestSendMessageRoutesToCounterparty() {
	msg, err := suite.chat.SendMessage(suite.buyer.ID, &SendMessageRequest{
		OrderID: suite.order.ID,
		Content: "发货前可以再拍一段视频吗",
	})
	suite.NoError(err)
	suite.Equal(suite.order.ID, msg.OrderID)
	suite.Equal(suite.buyer.ID, msg.SenderID)
	suite.Equal(suite.seller.ID, msg.ReceiverID)
	suite.Equal(models.MessageTypeText, msg.Type)
	suite.False(msg.IsRead)

	reply, err := suite.chat.SendMessage(suite.seller.ID, &SendMessageRequest{
		OrderID: suite.order.ID,
		Type:    models.MessageTypeImage,
		Content: "https://cdn.example.com/proof.jpg",
	})
	suite.NoError(err)
	suite.Equal(suite.buyer.ID, reply.ReceiverID)
	suite.Equal(models.MessageTypeImage, reply.Type)
}

func (suite *ChatServiceTestSuite) TestSendMessageRejectsNonParticipants() {
	_, err := suite.chat.SendMessage(suite.stranger.ID, &SendMessageRequest{
		OrderID: suite.order.ID,
		Content: "let me in",
	})
	suite.ErrorIs(err, ErrForbidden)
}

func (suite *ChatServiceTestSuite) TestSendMessageUnknownOrder() {
	_, err := suite.chat.SendMessage(suite.buyer.ID, &SendMessageRequest{
		OrderID: uuid.New(),
		Content: "hello?",
	})
	suite.ErrorIs(err, ErrNotFound)
}

func (suite *ChatServiceTestSuite) TestListMessagesChronological() {
	for _, content := range []string{"first", "second", "third"} {
		_, err := suite.chat.SendMessage(suite.buyer.ID, &SendMessageRequest{
			OrderID: suite.order.ID,
			Content: content,
		})
		suite.Require().NoError(err)
	}

	params := utils.PaginationParams{Page: 1, Limit: 20}

	messages, total, err := suite.chat.ListMessages(suite.buyer.ID, &suite.order.ID, params)
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(messages, 3)
	suite.Equal("first", messages[0].Content)
	suite.Equal("third", messages[2].Content)

	// the seller sees the same thread
	_, total, err = suite.chat.ListMessages(suite.seller.ID, &suite.order.ID, params)
	suite.NoError(err)
	suite.Equal(int64(3), total)

	// a stranger sees nothing
	_, total, err = suite.chat.ListMessages(suite.stranger.ID, &suite.order.ID, params)
	suite.NoError(err)
	suite.Equal(int64(0), total)
}

func (suite *ChatServiceTestSuite) TestMarkAsReadReceiverOnly() {
	msg, err := suite.chat.SendMessage(suite.buyer.ID, &SendMessageRequest{
		OrderID: suite.order.ID,
		Content: "please mark me",
	})
	suite.Require().NoError(err)

	// sender cannot mark their own message
	updated, err := suite.chat.MarkAsRead(suite.buyer.ID, &MarkAsReadRequest{MessageIDs: []uuid.UUID{msg.ID}})
	suite.NoError(err)
	suite.Equal(int64(0), updated)

	updated, err = suite.chat.MarkAsRead(suite.seller.ID, &MarkAsReadRequest{MessageIDs: []uuid.UUID{msg.ID, uuid.New()}})
	suite.NoError(err)
	suite.Equal(int64(1), updated)

	var reloaded models.ChatMessage
	suite.Require().NoError(suite.db.First(&reloaded, "id = ?", msg.ID).Error)
	suite.True(reloaded.IsRead)
}

func (suite *ChatServiceTestSuite) TestMarkAsReadRequiresIDs() {
	_, err := suite.chat.MarkAsRead(suite.buyer.ID, &MarkAsReadRequest{})
	suite.Error(err)
}

func TestChatServiceSuite(t *testing.T) {
	suite.Run(t, new(ChatServiceTestSuite))
}
