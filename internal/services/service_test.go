// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petbao/petbao-backend/internal/config"
	"github.com/petbao/petbao-backend/internal/database"
	"github.com/petbao/petbao-backend/internal/models"
)

var userSeq int

// setupTestDB opens a fresh in-memory database. The pool is pinned to a
// single connection so every goroutine sees the same sqlite instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	return db
}

func newTestPaymentService() *PaymentService {
	return NewPaymentService(&config.PaymentConfig{Currency: "cny"})
}

func createTestUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()

	userSeq++
	openid := fmt.Sprintf("test-openid-%d", userSeq)
	user := &models.User{
		Username:     fmt.Sprintf("wx_test_%d", userSeq),
		WechatOpenID: &openid,
		Nickname:     nickname,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, title string, price float64, status models.ProductStatus) *models.Product {
	t.Helper()

	product := &models.Product{
		SellerID:    sellerID,
		Title:       title,
		Description: "captive bred, feeding well",
		Species:     "ball python",
		Sex:         models.ProductSexUnknown,
		Price:       price,
		Status:      status,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func createTestOrder(t *testing.T, db *gorm.DB, svc *OrderService, buyerID uuid.UUID, productID uuid.UUID) *models.Order {
	t.Helper()

	order, err := svc.CreateOrder(buyerID, &CreateOrderRequest{
		ProductID:       productID,
		ReceiverName:    "王小明",
		ReceiverPhone:   "13800138000",
		ReceiverAddress: "上海市浦东新区张江路 100 号",
	})
	require.NoError(t, err)
	return order
}
