// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/petbao/petbao-backend/internal/i18n"
	"github.com/petbao/petbao-backend/internal/services"
	"github.com/petbao/petbao-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	buyerID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.CreateOrder(buyerID, &req)
	if err != nil {
		respondServiceError(c, err, i18n.KeyProductNotFound, i18n.KeyProductUnavailable)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderCreated),
		"order":   order,
	})
}

// GET /api/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	h.listOrders(c, services.OrderScopeAll)
}

// GET /api/orders/my_purchases
func (h *OrderHandler) GetMyPurchases(c *gin.Context) {
	h.listOrders(c, services.OrderScopePurchases)
}

// GET /api/orders/my_sales
func (h *OrderHandler) GetMySales(c *gin.Context) {
	h.listOrders(c, services.OrderScopeSales)
}

func (h *OrderHandler) listOrders(c *gin.Context, scope services.OrderScope) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	orders, total, err := h.orderService.ListOrders(userID, scope, params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	result := utils.CreatePaginationResult(orders, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /api/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := h.orderService.GetOrder(id, userID)
	if err != nil {
		respondServiceError(c, err, i18n.KeyOrderNotFound, i18n.KeyOrderInvalidState)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order": order,
	})
}

// POST /api/orders/:id/pay
func (h *OrderHandler) Pay(c *gin.Context) {
	h.runTransition(c, i18n.KeyOrderPaid, func(id, actor uuid.UUID) (interface{}, error) {
		return h.orderService.Pay(id, actor)
	})
}

// POST /api/orders/:id/ship
func (h *OrderHandler) Ship(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	actorID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderShippingRequired), err.Error())
		return
	}

	order, err := h.orderService.Ship(id, actorID, &req)
	if err != nil {
		respondServiceError(c, err, i18n.KeyOrderNotFound, i18n.KeyOrderInvalidState)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderShipped),
		"order":   order,
	})
}

// POST /api/orders/:id/confirm_receipt
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	h.runTransition(c, i18n.KeyOrderCompleted, func(id, actor uuid.UUID) (interface{}, error) {
		return h.orderService.ConfirmReceipt(id, actor)
	})
}

// POST /api/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.runTransition(c, i18n.KeyOrderCancelled, func(id, actor uuid.UUID) (interface{}, error) {
		return h.orderService.Cancel(id, actor)
	})
}

func (h *OrderHandler) runTransition(c *gin.Context, successKey string, fn func(id, actor uuid.UUID) (interface{}, error)) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	actorID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	order, err := fn(id, actorID)
	if err != nil {
		respondServiceError(c, err, i18n.KeyOrderNotFound, i18n.KeyOrderInvalidState)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, successKey),
		"order":   order,
	})
}
