package connect2pay

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// DecodeError reports a malformed status payload. No partial status object
// is ever exposed alongside it.
type DecodeError struct {
	Stage string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decoding %s failed", e.Stage)
	}
	return fmt.Sprintf("decoding %s: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeCallbackStatus parses the raw body of the server-to-server
// callback POST done by the payment page after a transaction processing.
//
// The callback is an unauthenticated request from the public internet:
// the caller must verify the digest carried in CtrlCustomData with
// VerifyCallbackDigest before applying the status to an order.
func DecodeCallbackStatus(body io.Reader) (*PaymentStatus, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &DecodeError{Stage: "callback body", Err: err}
	}

	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, &DecodeError{Stage: "callback body", Err: fmt.Errorf("empty body")}
	}

	return decodeStatus(data)
}

// CallbackResponse is the acknowledgment the merchant must answer a
// callback with. The payment page retries delivery on "KO".
type CallbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AckOK acknowledges a processed callback.
func AckOK(message string) CallbackResponse {
	return CallbackResponse{Status: "OK", Message: message}
}

// AckKO rejects a callback so the payment page delivers it again.
func AckKO(message string) CallbackResponse {
	return CallbackResponse{Status: "KO", Message: message}
}

// CallbackDigest computes the authenticity digest bound into
// ctrlCustomData at payment creation: the hex SHA-1 of the order id, the
// per-order secure key and the shared API secret. Collision resistance is
// not part of the threat model; the digest only proves the callback issuer
// knew both secrets for this order.
func CallbackDigest(orderID, secureKey, secret string) string {
	sum := sha1.Sum([]byte(orderID + secureKey + secret))
	return hex.EncodeToString(sum[:])
}

// VerifyCallbackDigest checks the digest received in a callback against a
// freshly computed one, case-insensitively. It must pass before any
// callback-asserted order id is trusted.
func VerifyCallbackDigest(received, orderID, secureKey, secret string) bool {
	want := CallbackDigest(orderID, secureKey, secret)
	got := strings.ToLower(received)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
