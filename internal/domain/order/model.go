package order

import (
	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/shopspring/decimal"
)

// Order is a placed order. Orders that reference a subscription carry the
// item basket delivered on each active day of the window; one-time orders
// carry a single basket. The schedule and billing engines consume orders
// read-only.
type Order struct {
	// ID is the unique identifier for the order
	ID string `db:"id" json:"id"`

	// UserID is the identifier of the owning user
	UserID string `db:"user_id" json:"user_id"`

	// SubscriptionID links the order to a subscription; empty for
	// one-time orders.
	SubscriptionID string `db:"subscription_id" json:"subscription_id,omitempty"`

	// DeliveryCharge is the flat charge applied once per bill regardless
	// of the number of delivery days.
	DeliveryCharge decimal.Decimal `db:"delivery_charge" json:"delivery_charge"`

	types.BaseModel
}

// OrderItem is one line of an order basket.
type OrderItem struct {
	// ID is the unique identifier for the order item
	ID string `db:"id" json:"id"`

	// OrderID is the owning order
	OrderID string `db:"order_id" json:"order_id"`

	// VariantLabel names the purchased product variant, e.g. "500 ml"
	VariantLabel string `db:"variant_label" json:"variant_label"`

	// VariantPrice is the unit price of the variant
	VariantPrice decimal.Decimal `db:"variant_price" json:"variant_price"`

	// Quantity is the number of units delivered per day
	Quantity int `db:"quantity" json:"quantity"`
}

// Amount returns the line total for the item.
func (i *OrderItem) Amount() decimal.Decimal {
	return i.VariantPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PerDeliveryTotal sums the item line totals, giving the cost of one day's
// delivery of the basket.
func PerDeliveryTotal(items []*OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item == nil {
			continue
		}
		total = total.Add(item.Amount())
	}
	return total
}
