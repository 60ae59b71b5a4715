package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// Stripe charges through PaymentIntents. Amounts are converted from whole
// rupees to paise.
type Stripe struct {
	key string
}

func NewStripe(secretKey string) *Stripe {
	stripe.Key = secretKey
	return &Stripe{key: secretKey}
}

// ProcessPayment creates and confirms a PaymentIntent for the amount.
// stripe-go does not accept a ctx on calls; the ctx bounds only our wait.
func (s *Stripe) ProcessPayment(ctx context.Context, amount int) (string, error) {
	const op = "payment.Stripe.ProcessPayment"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount) * 100),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return pi.ID, nil
}
