package merchant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
	"github.com/Vantage-Payment-Systems/payzone-prestashop/currency"
)

// Checkout prepares hosted payments for shop orders.
type Checkout struct {
	client *connect2pay.Client
	rates  *currency.Helper
	config *Config
	logger *slog.Logger
}

func NewCheckout(client *connect2pay.Client, rates *currency.Helper, config *Config, logger *slog.Logger) *Checkout {
	return &Checkout{
		client: client,
		rates:  rates,
		config: config,
		logger: logger.With(slog.String("component", "checkout")),
	}
}

// CheckoutResult is what the shop needs to finish redirecting the shopper
// and to later authenticate the callback.
type CheckoutResult struct {
	OrderID       string
	SecureKey     string
	MerchantToken string
	RedirectURL   string
}

// Prepare builds a transaction for the cart, converts the total to the
// settlement currency when needed, registers it with the payment page and
// returns the shopper redirect URL. A failed currency conversion aborts
// the checkout.
func (c *Checkout) Prepare(ctx context.Context, cart Cart, customer Customer, billing, delivery Address) (CheckoutResult, error) {
	total := cart.Total.Mul(decimal.NewFromInt(100)).Round(0)

	if cart.CurrencyCode != c.config.SettlementCurrency {
		converted, err := c.rates.Convert(ctx, total, cart.CurrencyCode, c.config.SettlementCurrency,
			c.config.OriginatorID, c.config.Password, true)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("converting %s to %s: %w",
				cart.CurrencyCode, c.config.SettlementCurrency, err)
		}

		c.logger.Info("converted cart total",
			slog.String("cart", cart.ID),
			slog.String("from", cart.CurrencyCode),
			slog.String("to", c.config.SettlementCurrency),
			slog.Int64("amount", converted.IntPart()))

		total = converted
	}

	secureKey := customer.SecureKey
	if secureKey == "" {
		secureKey = uuid.NewString()
	}

	tx := connect2pay.NewTransaction().
		SetOrderID(cart.ID).
		SetOrderDescription("Order " + cart.ID).
		SetCurrency(c.config.SettlementCurrency).
		SetAmount(total.IntPart()).
		SetPaymentType(connect2pay.PaymentTypeCreditCard).
		SetPaymentMode(connect2pay.PaymentModeSingle).
		SetShippingType(shippingType(cart)).
		SetShopperID(customer.ID).
		SetShopperEmail(customer.Email).
		SetShopperFirstName(customer.FirstName).
		SetShopperLastName(customer.LastName).
		SetShopperCompany(billing.Company).
		SetShopperAddress(joinAddress(billing.Address1, billing.Address2)).
		SetShopperCity(billing.City).
		SetShopperState(billing.State).
		SetShopperZipcode(billing.Zipcode).
		SetShopperCountryCode(billing.CountryCode).
		SetShopperPhone(billing.Phone).
		SetShipToFirstName(customer.FirstName).
		SetShipToLastName(customer.LastName).
		SetShipToCompany(delivery.Company).
		SetShipToAddress(joinAddress(delivery.Address1, delivery.Address2)).
		SetShipToCity(delivery.City).
		SetShipToState(delivery.State).
		SetShipToZipcode(delivery.Zipcode).
		SetShipToCountryCode(delivery.CountryCode).
		SetShipToPhone(delivery.Phone).
		SetCtrlRedirectURL(c.config.ReturnURL).
		SetCtrlCallbackURL(c.config.CallbackURL).
		SetCtrlCustomData(connect2pay.CallbackDigest(cart.ID, secureKey, c.config.SharedSecret))

	if c.config.NotificationEmails != "" {
		tx.SetMerchantNotification(true).
			SetMerchantNotificationTo(c.config.NotificationEmails).
			SetMerchantNotificationLang(c.config.NotificationLang)
	}

	for _, item := range cart.Items {
		tx.AddCartProduct(connect2pay.CartProduct{
			ID:           item.ProductID,
			Name:         item.Name,
			UnitPrice:    item.UnitPrice.InexactFloat64(),
			Quantity:     item.Quantity,
			Brand:        item.Brand,
			MPN:          item.MPN,
			CategoryName: item.Category,
			CategoryID:   item.CategoryID,
		})
	}
	if len(cart.Items) == 0 {
		tx.SetDefaultCartContent()
	}

	result, err := c.client.PreparePayment(ctx, tx)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("preparing payment: %w", err)
	}
	if !result.Succeeded() {
		return CheckoutResult{}, fmt.Errorf("payment page refused transaction: code %s: %s",
			result.Code, result.Message)
	}

	c.logger.Info("payment prepared",
		slog.String("order", cart.ID),
		slog.String("merchantToken", result.MerchantToken))

	return CheckoutResult{
		OrderID:       cart.ID,
		SecureKey:     secureKey,
		MerchantToken: result.MerchantToken,
		RedirectURL:   c.client.CustomerRedirectURL(result.CustomerToken),
	}, nil
}

func shippingType(cart Cart) string {
	if cart.Carrier == "" {
		return connect2pay.ShippingTypeVirtual
	}
	return connect2pay.ShippingTypePhysical
}

func joinAddress(line1, line2 string) string {
	if line2 == "" {
		return line1
	}
	return line1 + " " + line2
}
