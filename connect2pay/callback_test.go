package connect2pay_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
)

func TestCallbackDigest(t *testing.T) {
	digest := connect2pay.CallbackDigest("order-42", "key-1", "secret")

	require.Len(t, digest, 40)
	require.True(t, connect2pay.VerifyCallbackDigest(digest, "order-42", "key-1", "secret"))

	// The payment page may change the hex case in transit.
	require.True(t, connect2pay.VerifyCallbackDigest(strings.ToUpper(digest), "order-42", "key-1", "secret"))
}

func TestVerifyCallbackDigest_Tampered(t *testing.T) {
	digest := connect2pay.CallbackDigest("order-42", "key-1", "secret")

	require.False(t, connect2pay.VerifyCallbackDigest(digest, "order-43", "key-1", "secret"))
	require.False(t, connect2pay.VerifyCallbackDigest(digest, "order-42", "key-2", "secret"))
	require.False(t, connect2pay.VerifyCallbackDigest(digest, "order-42", "key-1", "other"))
	require.False(t, connect2pay.VerifyCallbackDigest("", "order-42", "key-1", "secret"))
}

func TestDecodeCallbackStatus(t *testing.T) {
	status, err := connect2pay.DecodeCallbackStatus(strings.NewReader(`{
		"status": "Authorized",
		"errorCode": "000",
		"orderID": "order-42",
		"amount": 1999,
		"ctrlCustomData": "abc"
	}`))
	require.NoError(t, err)
	require.Equal(t, "order-42", status.OrderID)
	require.Equal(t, int64(1999), status.Amount)
	require.Equal(t, "abc", status.CtrlCustomData)
}

func TestDecodeCallbackStatus_EmptyBody(t *testing.T) {
	_, err := connect2pay.DecodeCallbackStatus(strings.NewReader("  \n"))

	var derr *connect2pay.DecodeError
	require.True(t, errors.As(err, &derr))
}

func TestCallbackAck(t *testing.T) {
	ok, err := json.Marshal(connect2pay.AckOK("recorded"))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"OK","message":"recorded"}`, string(ok))

	ko, err := json.Marshal(connect2pay.AckKO("nope"))
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"KO","message":"nope"}`, string(ko))
}
