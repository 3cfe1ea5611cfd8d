package connect2pay

import (
	"encoding/json"
	"fmt"
	"time"
)

// PaymentStatus is the root of the status document returned by the status
// call and by asynchronous callbacks. It is immutable after decoding and
// scoped to that single call.
type PaymentStatus struct {
	// Status of the payment, one of the Status* constants.
	Status string `json:"status"`
	// MerchantToken of the payment this status belongs to.
	MerchantToken string `json:"merchantToken"`
	// Operation of the last transaction done for this payment.
	Operation string `json:"operation"`
	// ErrorCode of the last transaction; "000" means success.
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	OrderID      string `json:"orderID"`
	Currency     string `json:"currency"`
	// Amount of the payment in minor currency units.
	Amount int64 `json:"amount"`
	// CtrlCustomData echoes the custom data provided at payment creation;
	// it carries the callback authenticity digest.
	CtrlCustomData string `json:"ctrlCustomData"`
	// Transactions lists the attempts done to complete this payment, in
	// wire order.
	Transactions []TransactionAttempt `json:"-"`
}

// TransactionAttempt is one attempt at completing a payment.
type TransactionAttempt struct {
	PaymentType string `json:"paymentType"`
	Operation   string `json:"operation"`
	// Date is an epoch timestamp in milliseconds.
	Date          int64    `json:"date"`
	Amount        int64    `json:"amount"`
	ResultCode    string   `json:"resultCode"`
	ResultMessage string   `json:"resultMessage"`
	Status        string   `json:"status"`
	Shopper       *Shopper `json:"shopper"`
	TransactionID string   `json:"transactionID"`
	// SubscriptionID is set when the transaction is part of a subscription.
	SubscriptionID int64 `json:"subscriptionID"`
	// PaymentMeanInfo depends on PaymentType; nil when the payment page
	// sent none. Type-switch on the concrete *CreditCardPaymentMeanInfo,
	// *ToditoCashPaymentMeanInfo or *BankTransferPaymentMeanInfo.
	PaymentMeanInfo PaymentMeanInfo `json:"-"`
}

// DateTime converts the millisecond epoch timestamp to a time.Time.
// The zero time is returned when no date was reported.
func (t *TransactionAttempt) DateTime() time.Time {
	if t.Date == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.Date)
}

// Shopper is the customer snapshot attached to a transaction attempt.
type Shopper struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Zipcode     string `json:"zipcode"`
	City        string `json:"city"`
	State       string `json:"state"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	BirthDate   string `json:"birthDate"`
	IDNumber    string `json:"idNumber"`
	IPAddress   string `json:"ipAddress"`
}

// PaymentMeanInfo is the payment-type specific detail of an attempt, a
// closed union over the three payment types.
type PaymentMeanInfo interface {
	isPaymentMeanInfo()
}

// CreditCardPaymentMeanInfo describes the card used for an attempt. Card
// number and IBAN style data arrive truncated from the payment page.
type CreditCardPaymentMeanInfo struct {
	CardNumber          string `json:"cardNumber"`
	CardExpireYear      string `json:"cardExpireYear"`
	CardExpireMonth     string `json:"cardExpireMonth"`
	CardHolderName      string `json:"cardHolderName"`
	CardBrand           string `json:"cardBrand"`
	CardLevel           string `json:"cardLevel"`
	CardSubType         string `json:"cardSubType"`
	IinCountry          string `json:"iinCountry"`
	IinBankName         string `json:"iinBankName"`
	Is3DSecure          bool   `json:"is3DSecure"`
	StatementDescriptor string `json:"statementDescriptor"`
}

func (*CreditCardPaymentMeanInfo) isPaymentMeanInfo() {}

// ToditoCashPaymentMeanInfo describes the Todito card used for an attempt.
type ToditoCashPaymentMeanInfo struct {
	CardNumber string `json:"cardNumber"`
}

func (*ToditoCashPaymentMeanInfo) isPaymentMeanInfo() {}

// BankTransferPaymentMeanInfo describes the accounts of a bank transfer.
type BankTransferPaymentMeanInfo struct {
	Sender    *BankAccount `json:"sender"`
	Recipient *BankAccount `json:"recipient"`
}

func (*BankTransferPaymentMeanInfo) isPaymentMeanInfo() {}

// BankAccount identifies one side of a bank transfer.
type BankAccount struct {
	HolderName  string `json:"holderName"`
	BankName    string `json:"bankName"`
	IBAN        string `json:"iban"`
	BIC         string `json:"bic"`
	CountryCode string `json:"countryCode"`
}

// LastTransactionAttempt returns the sale or authorize attempt with the
// highest timestamp, or nil when there is none. The whole list is scanned;
// when two attempts share the maximal timestamp the one first in wire order
// wins (the remote service documents no tie break).
func (s *PaymentStatus) LastTransactionAttempt() *TransactionAttempt {
	var last *TransactionAttempt

	for i := range s.Transactions {
		t := &s.Transactions[i]
		if t.Operation != OperationSale && t.Operation != OperationAuthorize {
			continue
		}
		if last == nil || last.Date < t.Date {
			last = t
		}
	}

	return last
}

// statusWire mirrors the raw JSON document; the payment mean detail is
// kept raw until the payment type is known.
type statusWire struct {
	PaymentStatus
	Transactions []attemptWire `json:"transactions"`
}

type attemptWire struct {
	TransactionAttempt
	PaymentMeanInfo json.RawMessage `json:"paymentMeanInfo"`
}

// decodeStatus builds the typed status graph from a raw JSON document.
// Unknown fields are ignored; nested objects the service did not send are
// left nil.
func decodeStatus(data []byte) (*PaymentStatus, error) {
	var wire statusWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &DecodeError{Stage: "status document", Err: err}
	}

	status := wire.PaymentStatus
	if len(wire.Transactions) > 0 {
		status.Transactions = make([]TransactionAttempt, 0, len(wire.Transactions))
		for _, aw := range wire.Transactions {
			attempt := aw.TransactionAttempt
			if len(aw.PaymentMeanInfo) > 0 {
				info, err := decodePaymentMeanInfo(attempt.PaymentType, aw.PaymentMeanInfo)
				if err != nil {
					return nil, err
				}
				attempt.PaymentMeanInfo = info
			}
			status.Transactions = append(status.Transactions, attempt)
		}
	}

	return &status, nil
}

// decodePaymentMeanInfo selects the union variant from the payment type.
// Types without a known detail shape leave the info unset.
func decodePaymentMeanInfo(paymentType string, raw json.RawMessage) (PaymentMeanInfo, error) {
	var (
		info PaymentMeanInfo
		err  error
	)

	switch paymentType {
	case PaymentTypeCreditCard:
		v := &CreditCardPaymentMeanInfo{}
		err = json.Unmarshal(raw, v)
		info = v
	case PaymentTypeToditoCash:
		v := &ToditoCashPaymentMeanInfo{}
		err = json.Unmarshal(raw, v)
		info = v
	case PaymentTypeBankTransfer:
		v := &BankTransferPaymentMeanInfo{}
		err = json.Unmarshal(raw, v)
		info = v
	default:
		return nil, nil
	}

	if err != nil {
		return nil, &DecodeError{
			Stage: fmt.Sprintf("%s payment mean info", paymentType),
			Err:   err,
		}
	}
	return info, nil
}

// RefundStatus is the result of a refund call.
type RefundStatus struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	TransactionID string `json:"transactionID"`
}

// CancelResult is the result of a subscription cancellation.
type CancelResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
