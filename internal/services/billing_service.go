package services

import (
	"errors"
	"fmt"

	"food_delivery_backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidOrder is returned for malformed line items (empty list,
	// negative price, non-positive quantity).
	ErrInvalidOrder = errors.New("invalid order items")

	// ErrSettingsNotConfigured is returned when no active payment settings
	// record exists. Ordering is impossible until an operator creates one.
	ErrSettingsNotConfigured = errors.New("payment settings not configured")
)

// BillLine is one priced order line fed into the billing engine.
type BillLine struct {
	Price    float64
	Quantity int
}

// round2 rounds to 2 decimal places, half away from zero. Existing invoices
// were produced with this rounding, so it must not change.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ComputeBill produces the cost breakdown for a set of order lines.
//
// GST applies to the food total only, never to fees or the delivery charge.
// gstAmount, deliveryCharge and grandTotal are each rounded independently.
// The function is pure: settings are passed in as a value snapshot, taken
// once per operation, and nothing here reads ambient state.
func ComputeBill(lines []BillLine, distanceKm float64, settings models.PaymentSettings) (models.Bill, error) {
	if len(lines) == 0 {
		return models.Bill{}, fmt.Errorf("%w: order items are required", ErrInvalidOrder)
	}
	if distanceKm < 0 {
		return models.Bill{}, fmt.Errorf("%w: distance cannot be negative", ErrInvalidOrder)
	}

	foodTotal := decimal.Zero
	for _, line := range lines {
		if line.Price < 0 {
			return models.Bill{}, fmt.Errorf("%w: item price cannot be negative", ErrInvalidOrder)
		}
		if line.Quantity <= 0 {
			return models.Bill{}, fmt.Errorf("%w: item quantity must be positive", ErrInvalidOrder)
		}
		price := decimal.NewFromFloat(line.Price)
		foodTotal = foodTotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	gstAmount := round2(foodTotal.Mul(decimal.NewFromFloat(settings.GstPercent)).Div(decimal.NewFromInt(100)))
	deliveryCharge := round2(decimal.NewFromFloat(distanceKm).Mul(decimal.NewFromFloat(settings.DeliveryFeePerKm)))

	grandTotal := round2(foodTotal.
		Add(decimal.NewFromFloat(gstAmount)).
		Add(decimal.NewFromFloat(settings.PlatformFee)).
		Add(decimal.NewFromFloat(settings.HandlingCharge)).
		Add(decimal.NewFromFloat(deliveryCharge)))

	food, _ := foodTotal.Float64()
	return models.Bill{
		FoodTotal:      food,
		GstPercent:     settings.GstPercent,
		GstAmount:      gstAmount,
		PlatformFee:    settings.PlatformFee,
		HandlingCharge: settings.HandlingCharge,
		DeliveryCharge: deliveryCharge,
		GrandTotal:     grandTotal,
	}, nil
}
