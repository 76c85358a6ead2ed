// internal/services/payment_service.go
package services

import (
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/petbao/petbao-backend/internal/config"
	"github.com/petbao/petbao-backend/internal/models"
)

// PaymentService is the external-integration seam for the pay transition.
// Without a configured provider it approves locally, which matches the
// deployment where WeChat Pay confirmation happens outside this service.
// With a Stripe key it creates a PaymentIntent for the order amount and hands
// back its id as the payment reference.
type PaymentService struct {
	cfg *config.PaymentConfig
}

func NewPaymentService(cfg *config.PaymentConfig) *PaymentService {
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}
	return &PaymentService{cfg: cfg}
}

// Confirm returns the payment method tag and an optional provider reference
// for the given order. It never mutates the order.
func (s *PaymentService) Confirm(order *models.Order) (method, reference string, err error) {
	if s.cfg.StripeSecretKey == "" {
		return "wechat_pay", "", nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalAmount * 100)),
		Currency: stripe.String(s.cfg.Currency),
	}
	params.AddMetadata("order_no", order.OrderNo)
	params.AddMetadata("buyer_id", order.BuyerID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	return "stripe", pi.ID, nil
}
