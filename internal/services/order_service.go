// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/petbao/petbao-backend/internal/models"
	"github.com/petbao/petbao-backend/internal/utils"
)

// OrderService owns the order lifecycle:
//
//	pending_payment -> pending_shipment -> pending_receipt -> completed
//	pending_payment | pending_shipment -> cancelled
//
// Every transition runs in one database transaction that locks the order row
// and writes the order together with its product side effect, so no reader
// ever observes the pair half-updated. The transition table below is the only
// authority over status changes; nothing else in the codebase writes
// orders.status.
type OrderService struct {
	db       *gorm.DB
	payments *PaymentService
}

type CreateOrderRequest struct {
	ProductID       uuid.UUID `json:"product_id" validate:"required"`
	ReceiverName    string    `json:"receiver_name" validate:"required,max=100"`
	ReceiverPhone   string    `json:"receiver_phone" validate:"required,max=20"`
	ReceiverAddress string    `json:"receiver_address" validate:"required"`
	BuyerNote       string    `json:"buyer_note,omitempty"`
}

type ShipOrderRequest struct {
	ShippingCompany string `json:"shipping_company" validate:"required,max=100"`
	ShippingNo      string `json:"shipping_no" validate:"required,max=100"`
	SellerNote      string `json:"seller_note,omitempty"`
}

// OrderScope selects which side of the order a listing query covers.
type OrderScope string

const (
	OrderScopeAll       OrderScope = "all"
	OrderScopePurchases OrderScope = "purchases"
	OrderScopeSales     OrderScope = "sales"
)

type orderOp string

const (
	opPay            orderOp = "pay"
	opShip           orderOp = "ship"
	opConfirmReceipt orderOp = "confirm_receipt"
	opCancel         orderOp = "cancel"
)

// transitionRule captures one row of the transition table: who may perform
// the operation, from which statuses, into which status, and what the linked
// product becomes alongside.
type transitionRule struct {
	from          []models.OrderStatus
	to            models.OrderStatus
	authorized    func(o *models.Order, actor uuid.UUID) bool
	productStatus *models.ProductStatus
}

func byBuyer(o *models.Order, actor uuid.UUID) bool  { return o.BuyerID == actor }
func bySeller(o *models.Order, actor uuid.UUID) bool { return o.SellerID == actor }

func productTo(s models.ProductStatus) *models.ProductStatus { return &s }

var transitions = map[orderOp]transitionRule{
	opPay: {
		from:          []models.OrderStatus{models.OrderStatusPendingPayment},
		to:            models.OrderStatusPendingShipment,
		authorized:    byBuyer,
		productStatus: productTo(models.ProductStatusReserved),
	},
	opShip: {
		from:       []models.OrderStatus{models.OrderStatusPendingShipment},
		to:         models.OrderStatusPendingReceipt,
		authorized: bySeller,
	},
	opConfirmReceipt: {
		from:          []models.OrderStatus{models.OrderStatusPendingReceipt},
		to:            models.OrderStatusCompleted,
		authorized:    byBuyer,
		productStatus: productTo(models.ProductStatusSold),
	},
	opCancel: {
		from: []models.OrderStatus{
			models.OrderStatusPendingPayment,
			models.OrderStatusPendingShipment,
		},
		to:            models.OrderStatusCancelled,
		authorized:    byBuyer,
		productStatus: productTo(models.ProductStatusAvailable),
	},
}

func NewOrderService(db *gorm.DB, payments *PaymentService) *OrderService {
	return &OrderService{db: db, payments: payments}
}

// CreateOrder opens a purchase attempt against an available listing. Seller
// and total amount are snapshotted from the product inside the same locked
// transaction that checks availability, so two buyers cannot both create an
// order against one listing.
func (s *OrderService) CreateOrder(buyerID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	orderNo, err := utils.GenerateOrderNo()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order := &models.Order{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := forUpdate(tx).First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.Status != models.ProductStatusAvailable {
			return fmt.Errorf("%w: listing is %s", ErrInvalidState, product.Status)
		}

		*order = models.Order{
			OrderNo:         orderNo,
			BuyerID:         buyerID,
			SellerID:        product.SellerID,
			ProductID:       &product.ID,
			TotalAmount:     product.Price,
			Status:          models.OrderStatusPendingPayment,
			ReceiverName:    req.ReceiverName,
			ReceiverPhone:   req.ReceiverPhone,
			ReceiverAddress: req.ReceiverAddress,
			BuyerNote:       req.BuyerNote,
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(order.ID)
}

// Pay moves a pending_payment order into pending_shipment and reserves the
// product. Payment confirmation runs before the transition transaction; the
// transition itself is the only writer of the paid state.
func (s *OrderService) Pay(orderID uuid.UUID, actorID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Fail fast before talking to the payment provider; the transition
	// re-checks both conditions under the lock.
	if order.BuyerID != actorID {
		return nil, fmt.Errorf("%w: only the buyer may pay", ErrForbidden)
	}
	if order.Status != models.OrderStatusPendingPayment {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
	}

	method, reference, err := s.payments.Confirm(&order)
	if err != nil {
		return nil, fmt.Errorf("payment confirmation failed: %w", err)
	}

	now := time.Now()
	return s.transition(orderID, actorID, opPay, map[string]interface{}{
		"paid_at":           &now,
		"payment_method":    method,
		"payment_reference": reference,
	})
}

// Ship moves a pending_shipment order into pending_receipt. Both shipping
// fields are required; the product is untouched.
func (s *OrderService) Ship(orderID uuid.UUID, actorID uuid.UUID, req *ShipOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: shipping company and number are required", ErrInvalidState)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"shipping_company": req.ShippingCompany,
		"shipping_no":      req.ShippingNo,
		"shipped_at":       &now,
	}
	if req.SellerNote != "" {
		updates["seller_note"] = req.SellerNote
	}

	return s.transition(orderID, actorID, opShip, updates)
}

// ConfirmReceipt completes the order and marks the product sold.
func (s *OrderService) ConfirmReceipt(orderID uuid.UUID, actorID uuid.UUID) (*models.Order, error) {
	now := time.Now()
	return s.transition(orderID, actorID, opConfirmReceipt, map[string]interface{}{
		"completed_at": &now,
	})
}

// Cancel aborts an order before receipt and puts the product back on sale.
func (s *OrderService) Cancel(orderID uuid.UUID, actorID uuid.UUID) (*models.Order, error) {
	return s.transition(orderID, actorID, opCancel, nil)
}

// transition executes one row of the transition table. Authorization is
// checked before preconditions so a non-participant always sees forbidden,
// never a state hint. The status-guarded UPDATE makes concurrent transitions
// race-safe even without a row lock: exactly one writer flips the status, any
// other observes zero affected rows.
func (s *OrderService) transition(orderID uuid.UUID, actorID uuid.UUID, op orderOp, extra map[string]interface{}) (*models.Order, error) {
	rule, ok := transitions[op]
	if !ok {
		return nil, fmt.Errorf("unknown order operation %q", op)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := forUpdate(tx).First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order", ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !rule.authorized(&order, actorID) {
			return fmt.Errorf("%w: %s", ErrForbidden, op)
		}

		if !statusIn(order.Status, rule.from) {
			return fmt.Errorf("%w: order is %s", ErrInvalidState, order.Status)
		}

		updates := map[string]interface{}{"status": rule.to}
		for k, v := range extra {
			updates[k] = v
		}

		result := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, order.Status).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order status changed concurrently", ErrInvalidState)
		}

		if rule.productStatus != nil && order.ProductID != nil {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", *order.ProductID).
				Update("status", *rule.productStatus).Error; err != nil {
				return fmt.Errorf("failed to update product status: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadOrder(orderID)
}

// GetOrder fetches one order for a participant. Non-participants get not
// found rather than forbidden so order ids leak nothing.
func (s *OrderService) GetOrder(orderID uuid.UUID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.loadOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParticipant(userID) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) ListOrders(userID uuid.UUID, scope OrderScope, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).
		Preload("Buyer").Preload("Seller").Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") })

	switch scope {
	case OrderScopePurchases:
		query = query.Where("buyer_id = ?", userID)
	case OrderScopeSales:
		query = query.Where("seller_id = ?", userID)
	default:
		query = query.Where("buyer_id = ? OR seller_id = ?", userID, userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	return orders, total, nil
}

func (s *OrderService) loadOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Buyer").Preload("Seller").Preload("Product").
		Preload("Product.Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

func statusIn(status models.OrderStatus, allowed []models.OrderStatus) bool {
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}
