package connect2pay_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
)

func validTransaction() *connect2pay.Transaction {
	return connect2pay.NewTransaction().
		SetOrderID("order-42").
		SetCurrency("MAD").
		SetAmount(19_99).
		SetShippingType(connect2pay.ShippingTypeVirtual).
		SetPaymentMode(connect2pay.PaymentModeSingle)
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validTransaction().Validate())
}

func TestValidate_RequiredFields(t *testing.T) {
	err := connect2pay.NewTransaction().Validate()
	require.Error(t, err)

	var verr *connect2pay.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 4)

	missing := map[string]bool{}
	for _, f := range verr.Fields {
		require.Equal(t, connect2pay.MissingField, f.Kind)
		missing[f.Field] = true
	}

	for _, name := range []string{"orderID", "currency", "shippingType", "paymentMode"} {
		require.True(t, missing[name], "expected %s to be reported missing", name)
	}
}

func TestValidate_FieldTooLong(t *testing.T) {
	tx := validTransaction().SetOrderID(strings.Repeat("x", 101))

	err := tx.Validate()
	require.Error(t, err)

	var verr *connect2pay.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "orderID", verr.Fields[0].Field)
	require.Equal(t, connect2pay.FieldTooLong, verr.Fields[0].Kind)
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*connect2pay.Transaction) *connect2pay.Transaction
		field string
	}{
		{
			name:  "bad email",
			setup: func(tx *connect2pay.Transaction) *connect2pay.Transaction { return tx.SetShopperEmail("not-an-email") },
			field: "shopperEmail",
		},
		{
			name:  "bad shipping type",
			setup: func(tx *connect2pay.Transaction) *connect2pay.Transaction { return tx.SetShippingType("Teleport") },
			field: "shippingType",
		},
		{
			name:  "relative callback URL",
			setup: func(tx *connect2pay.Transaction) *connect2pay.Transaction { return tx.SetCtrlCallbackURL("/callback") },
			field: "ctrlCallbackURL",
		},
		{
			name:  "bad payment mode",
			setup: func(tx *connect2pay.Transaction) *connect2pay.Transaction { return tx.SetPaymentMode("Sometimes") },
			field: "paymentMode",
		},
		{
			name:  "bad operation",
			setup: func(tx *connect2pay.Transaction) *connect2pay.Transaction { return tx.SetOperation("capture") },
			field: "operation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup(validTransaction()).Validate()
			require.Error(t, err)

			var verr *connect2pay.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Fields, 1)
			require.Equal(t, tt.field, verr.Fields[0].Field)
			require.Equal(t, connect2pay.InvalidFieldValue, verr.Fields[0].Kind)
		})
	}
}

func TestValidate_ProviderRequiresBankTransfer(t *testing.T) {
	tx := validTransaction().SetProvider(connect2pay.ProviderSofort)

	err := tx.Validate()
	require.Error(t, err)

	var verr *connect2pay.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "provider", verr.Fields[0].Field)

	tx.SetPaymentType(connect2pay.PaymentTypeBankTransfer)
	require.NoError(t, tx.Validate())
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	tx := connect2pay.NewTransaction().
		SetOrderID("order-1").
		SetCurrency("MAD").
		SetShippingType("Teleport").
		SetPaymentMode(connect2pay.PaymentModeSingle).
		SetShopperEmail("nope")

	err := tx.Validate()
	require.Error(t, err)

	var verr *connect2pay.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)
	require.Contains(t, err.Error(), "shippingType")
	require.Contains(t, err.Error(), "shopperEmail")
}

func TestValidators(t *testing.T) {
	require.True(t, connect2pay.IsEmail("shopper@example.com"))
	require.True(t, connect2pay.IsEmail(""))
	require.False(t, connect2pay.IsEmail("shopper@"))

	require.True(t, connect2pay.IsAbsoluteURL("https://shop.example.com/payzone/callback?order=1"))
	require.False(t, connect2pay.IsAbsoluteURL("ftp://shop.example.com"))
	require.False(t, connect2pay.IsAbsoluteURL("shop.example.com/callback"))

	require.True(t, connect2pay.IsCountryCode("MA"))
	require.True(t, connect2pay.IsCountryCode("fr"))
	require.False(t, connect2pay.IsCountryCode("MAR"))

	require.True(t, connect2pay.IsInt("-12"))
	require.False(t, connect2pay.IsInt("12.5"))

	require.True(t, connect2pay.IsBool("1"))
	require.False(t, connect2pay.IsBool("true"))
}
