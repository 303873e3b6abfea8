package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/yeremiapane/foodiego/telemetry"
	"github.com/yeremiapane/foodiego/utils"
)

// DemoClientSecret is returned instead of a real client secret when no
// Stripe key is configured.
const DemoClientSecret = "demo_client_secret_for_testing"

var (
	ErrInvalidAmount = errors.New("Invalid amount")
	ErrPaymentFailed = errors.New("Failed to create payment intent")
)

// PaymentIntentCreator is the slice of the Stripe client the bridge needs.
type PaymentIntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type PaymentIntentRequest struct {
	Amount  float64 `json:"amount"`
	OrderID string  `json:"order_id"`
}

type PaymentIntentResult struct {
	ClientSecret string `json:"clientSecret"`
	Demo         bool   `json:"demo,omitempty"`
}

// PaymentService creates Stripe payment intents for checkout.
type PaymentService struct {
	intents  PaymentIntentCreator
	currency string
}

// NewPaymentService builds the bridge. When configured is false the bridge
// runs in demo mode and never reaches Stripe.
func NewPaymentService(secretKey string, configured bool, currency string) *PaymentService {
	if !configured {
		utils.InfoLogger.Warn("Stripe is not configured, payment intents run in demo mode")
		return NewPaymentServiceWithCreator(nil, currency)
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return NewPaymentServiceWithCreator(sc.PaymentIntents, currency)
}

// NewPaymentServiceWithCreator builds the bridge around any intent creator;
// a nil creator means demo mode.
func NewPaymentServiceWithCreator(intents PaymentIntentCreator, currency string) *PaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &PaymentService{intents: intents, currency: strings.ToLower(currency)}
}

// Demo reports whether the bridge answers with the demo client secret.
func (s *PaymentService) Demo() bool {
	return s.intents == nil
}

// CreatePaymentIntent requests a client secret for the given dollar amount.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResult, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Amount <= 0 || req.Amount > utils.MaxAmount {
		telemetry.PaymentIntentsTotal.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidAmount
	}

	if s.Demo() {
		telemetry.PaymentIntentsTotal.WithLabelValues("demo").Inc()
		return &PaymentIntentResult{ClientSecret: DemoClientSecret, Demo: true}, nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(utils.ToCents(req.Amount)),
		Currency: stripe.String(s.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("orderId", req.OrderID)
	params.AddMetadata("userId", fmt.Sprint(session.UserID))

	intent, err := s.intents.New(params)
	if err != nil {
		telemetry.PaymentIntentsTotal.WithLabelValues("failed").Inc()
		utils.ErrorLogger.WithError(err).WithField("order_id", req.OrderID).Error("Stripe payment intent failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	telemetry.PaymentIntentsTotal.WithLabelValues("created").Inc()
	utils.InfoLogger.Printf("Payment intent %s created for order %s", intent.ID, req.OrderID)
	return &PaymentIntentResult{ClientSecret: intent.ClientSecret}, nil
}
