package merchant

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrOrderNotFound is returned by OrderSystem implementations when the
// order id is unknown.
var ErrOrderNotFound = errors.New("order not found")

// CartItem is one line of a shopping cart.
type CartItem struct {
	ProductID  int64
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int64
	Brand      string
	MPN        string
	Category   string
	CategoryID int64
}

// Cart is the shopping cart a payment is prepared for. Total is in major
// currency units.
type Cart struct {
	ID           string
	CurrencyCode string
	Total        decimal.Decimal
	Carrier      string
	Items        []CartItem
}

// Customer identifies the shopper on the merchant side. SecureKey is the
// per-customer secret that feeds the callback digest.
type Customer struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	SecureKey string
}

// Address is a billing or shipping address as the shop stores it.
type Address struct {
	Company     string
	Address1    string
	Address2    string
	City        string
	State       string
	Zipcode     string
	CountryCode string
	Phone       string
}

// Order is a payment-pending order tracked by the shop.
type Order struct {
	ID            string
	SecureKey     string
	MerchantToken string
}

// OrderSystem is the shop-side order store the callback handlers talk to.
type OrderSystem interface {
	// Order looks up a pending order by id.
	Order(ctx context.Context, orderID string) (Order, error)
	// MarkPaid records a successful payment with the authenticated amount
	// in minor units and the gateway transaction id.
	MarkPaid(ctx context.Context, orderID string, amount int64, transactionID string) error
	// MarkFailed records a refused or errored payment.
	MarkFailed(ctx context.Context, orderID string, errorCode, errorMessage string) error
}
