package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/paymentintent"
)

// MaxMinorUnits is the largest single charge the provider accepts (999,999.99
// in two-decimal currencies).
const MaxMinorUnits int64 = 99_999_999

var (
	ErrPaymentsDisabled = errors.New("payment provider not configured")
	ErrAmountTooSmall   = errors.New("amount is below the smallest currency unit")
	ErrAmountTooLarge   = errors.New("amount exceeds the largest allowed payment")
)

// PaymentProvider creates provider-side payment intents. amount is in minor
// currency units.
type PaymentProvider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

// ToMinorUnits scales a major-unit amount (dollars) to minor units (cents),
// rounding half away from zero. The result is always in [1, MaxMinorUnits].
func ToMinorUnits(amount float64) (int64, error) {
	minor := decimal.NewFromFloat(amount).Shift(2).Round(0)
	if minor.LessThan(decimal.NewFromInt(1)) {
		return 0, ErrAmountTooSmall
	}
	if minor.GreaterThan(decimal.NewFromInt(MaxMinorUnits)) {
		return 0, ErrAmountTooLarge
	}
	return minor.IntPart(), nil
}

type StripePayments struct{}

func NewStripePayments(apiKey string) *StripePayments {
	stripe.Key = apiKey
	return &StripePayments{}
}

func (s *StripePayments) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

// DisabledPayments rejects every intent when no provider key is configured.
type DisabledPayments struct{}

func (DisabledPayments) CreatePaymentIntent(context.Context, int64, string) (string, error) {
	return "", ErrPaymentsDisabled
}
