package merchant_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
	"github.com/Vantage-Payment-Systems/payzone-prestashop/merchant"
)

func TestApp(t *testing.T) {
	config := testConfig()
	config.HTTPAddr = "localhost:0"

	orders := merchant.NewMemoryOrderSystem()
	orders.Put(merchant.Order{ID: "order-42", SecureKey: "key-1"})

	app := merchant.NewApp(testLogger(), config, orders)
	require.NoError(t, app.Start())
	t.Cleanup(app.Shutdown)

	base := "http://" + app.Addr

	resp, err := http.Get(base + "/-/live")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(base+"/payzone/validation", "application/json",
		strings.NewReader(callbackBody("order-42", "key-1", "000", 1999)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ack connect2pay.CallbackResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	require.Equal(t, "OK", ack.Status)

	require.True(t, orders.State("order-42").Paid)
}
