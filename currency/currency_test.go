package currency_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/currency"
)

func TestCurrencyTable(t *testing.T) {
	require.Len(t, currency.Supported(), 13)

	require.True(t, currency.IsSupported("MAD"))
	require.True(t, currency.IsSupported("EUR"))
	require.False(t, currency.IsSupported("BTC"))

	info, ok := currency.Lookup("MAD")
	require.True(t, ok)
	require.Equal(t, "Moroccan Dirham", info.Name)
	require.Equal(t, "504", info.NumericCode)

	require.Equal(t, "EUR", currency.FromNumericCode("978"))
	require.Empty(t, currency.FromNumericCode("999"))
}

func newRateServer(t *testing.T, rate string) (*httptest.Server, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		q := r.URL.Query()
		sum := md5.Sum([]byte("123456" + "s3cret"))
		require.Equal(t, hex.EncodeToString(sum[:]), q.Get("signature"))
		require.Equal(t, "123456", q.Get("originator_id"))
		require.Equal(t, "EUR", q.Get("from"))
		require.Equal(t, "MAD", q.Get("to"))

		w.Write([]byte(`{"response_code": "000", "rate": "` + rate + `"}`))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

func TestGetRate(t *testing.T) {
	srv, calls := newRateServer(t, "11.03")

	helper := currency.NewHelper(currency.WithServiceURL(srv.URL))

	rate, err := helper.GetRate(context.Background(), "EUR", "MAD", "123456", "s3cret")
	require.NoError(t, err)
	require.True(t, rate.Equal(decimal.RequireFromString("11.03")))
	require.Equal(t, 1, *calls)
}

func TestGetRate_UnsupportedCurrency(t *testing.T) {
	srv, calls := newRateServer(t, "1")

	helper := currency.NewHelper(currency.WithServiceURL(srv.URL))

	_, err := helper.GetRate(context.Background(), "BTC", "MAD", "123456", "s3cret")
	require.ErrorIs(t, err, currency.ErrUnsupportedCurrency)

	_, err = helper.GetRate(context.Background(), "EUR", "XXX", "123456", "s3cret")
	require.ErrorIs(t, err, currency.ErrUnsupportedCurrency)

	require.Zero(t, *calls)
}

func TestGetRate_Refused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code": "100", "rate": ""}`))
	}))
	t.Cleanup(srv.Close)

	helper := currency.NewHelper(currency.WithServiceURL(srv.URL))

	_, err := helper.GetRate(context.Background(), "EUR", "MAD", "123456", "s3cret")
	require.ErrorIs(t, err, currency.ErrRateUnavailable)
}

func TestGetRate_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	helper := currency.NewHelper(currency.WithServiceURL(srv.URL))

	_, err := helper.GetRate(context.Background(), "EUR", "MAD", "123456", "s3cret")
	require.ErrorIs(t, err, currency.ErrRateUnavailable)
}

func TestConvert(t *testing.T) {
	srv, _ := newRateServer(t, "11.0")

	helper := currency.NewHelper(currency.WithServiceURL(srv.URL))

	t.Run("minor units round to whole", func(t *testing.T) {
		converted, err := helper.Convert(context.Background(), decimal.NewFromInt(100000),
			"EUR", "MAD", "123456", "s3cret", true)
		require.NoError(t, err)
		require.True(t, converted.Equal(decimal.NewFromInt(1100000)))
	})

	t.Run("major units keep two decimals", func(t *testing.T) {
		converted, err := helper.Convert(context.Background(), decimal.RequireFromString("9.99"),
			"EUR", "MAD", "123456", "s3cret", false)
		require.NoError(t, err)
		require.Equal(t, "109.89", converted.StringFixed(2))
	})
}
