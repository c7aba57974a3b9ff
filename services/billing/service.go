package billing

import (
	"opaleka/config"
	"opaleka/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// IntentResult carries the client secret a mobile or web client needs to
// confirm an activation payment.
type IntentResult struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// Service creates card payment intents for provider activation fees. Settled
// payments are recorded separately; creating an intent never changes a
// provider's payment standing.
type Service interface {
	CreateActivationIntent(userID string) (*IntentResult, error)
}

// StripeService backs Service with the Stripe API.
type StripeService struct{}

// NewStripeService configures the Stripe client from application config.
func NewStripeService() *StripeService {
	stripe.Key = config.AppConfig.StripeKey
	return &StripeService{}
}

// CreateActivationIntent creates a payment intent for the configured
// activation fee, tagged with the provider's user ID for reconciliation.
func (s *StripeService) CreateActivationIntent(userID string) (*IntentResult, error) {
	if userID == "" {
		return nil, utils.NewValidationError("userId is required")
	}
	if config.AppConfig.StripeKey == "" {
		return nil, utils.NewValidationError("card payments are not configured")
	}

	fee := config.AppConfig.ActivationFee
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(fee * 100)),
		Currency: stripe.String("nad"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("purpose", "provider_activation")

	intent, err := paymentintent.New(params)
	if err != nil {
		zap.L().Error("stripe payment intent creation failed",
			zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return &IntentResult{
		ClientSecret: intent.ClientSecret,
		Amount:       fee,
		Currency:     "nad",
	}, nil
}
