package connect2pay_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/connect2pay"
)

func decode(t *testing.T, doc string) *connect2pay.PaymentStatus {
	t.Helper()

	status, err := connect2pay.DecodeCallbackStatus(strings.NewReader(doc))
	require.NoError(t, err)
	return status
}

func TestDecodeStatus_PaymentMeanVariants(t *testing.T) {
	t.Run("todito cash", func(t *testing.T) {
		status := decode(t, `{
			"status": "Authorized",
			"transactions": [{
				"paymentType": "ToditoCash",
				"operation": "sale",
				"paymentMeanInfo": {"cardNumber": "1234"}
			}]
		}`)

		info, ok := status.Transactions[0].PaymentMeanInfo.(*connect2pay.ToditoCashPaymentMeanInfo)
		require.True(t, ok)
		require.Equal(t, "1234", info.CardNumber)
	})

	t.Run("bank transfer", func(t *testing.T) {
		status := decode(t, `{
			"status": "Authorized",
			"transactions": [{
				"paymentType": "BankTransfer",
				"operation": "sale",
				"paymentMeanInfo": {
					"sender": {"holderName": "A Sender", "bankName": "Bank A"},
					"recipient": {"holderName": "A Recipient"}
				}
			}]
		}`)

		info, ok := status.Transactions[0].PaymentMeanInfo.(*connect2pay.BankTransferPaymentMeanInfo)
		require.True(t, ok)
		require.Equal(t, "A Sender", info.Sender.HolderName)
		require.Equal(t, "A Recipient", info.Recipient.HolderName)
	})

	t.Run("unknown payment type leaves info nil", func(t *testing.T) {
		status := decode(t, `{
			"status": "Authorized",
			"transactions": [{
				"paymentType": "CarrierBilling",
				"operation": "sale",
				"paymentMeanInfo": {"whatever": true}
			}]
		}`)

		require.Nil(t, status.Transactions[0].PaymentMeanInfo)
	})

	t.Run("absent info stays nil", func(t *testing.T) {
		status := decode(t, `{
			"status": "Authorized",
			"transactions": [{"paymentType": "CreditCard", "operation": "sale"}]
		}`)

		require.Nil(t, status.Transactions[0].PaymentMeanInfo)
	})
}

func TestLastTransactionAttempt(t *testing.T) {
	attempt := func(op string, date int64, id string) connect2pay.TransactionAttempt {
		return connect2pay.TransactionAttempt{Operation: op, Date: date, TransactionID: id}
	}

	t.Run("no attempts", func(t *testing.T) {
		status := &connect2pay.PaymentStatus{}
		require.Nil(t, status.LastTransactionAttempt())
	})

	t.Run("latest sale or authorize wins", func(t *testing.T) {
		status := &connect2pay.PaymentStatus{Transactions: []connect2pay.TransactionAttempt{
			attempt(connect2pay.OperationSale, 1000, "tx-1"),
			attempt(connect2pay.OperationAuthorize, 3000, "tx-2"),
			attempt(connect2pay.OperationSale, 2000, "tx-3"),
		}}

		last := status.LastTransactionAttempt()
		require.NotNil(t, last)
		require.Equal(t, "tx-2", last.TransactionID)
	})

	t.Run("other operations are ignored", func(t *testing.T) {
		status := &connect2pay.PaymentStatus{Transactions: []connect2pay.TransactionAttempt{
			attempt("refund", 9000, "tx-1"),
			attempt("rebill", 8000, "tx-2"),
		}}

		require.Nil(t, status.LastTransactionAttempt())
	})

	t.Run("equal dates keep the first seen", func(t *testing.T) {
		status := &connect2pay.PaymentStatus{Transactions: []connect2pay.TransactionAttempt{
			attempt(connect2pay.OperationSale, 5000, "tx-first"),
			attempt(connect2pay.OperationSale, 5000, "tx-second"),
		}}

		last := status.LastTransactionAttempt()
		require.NotNil(t, last)
		require.Equal(t, "tx-first", last.TransactionID)
	})
}

func TestTransactionAttempt_DateTime(t *testing.T) {
	attempt := connect2pay.TransactionAttempt{Date: 1700000000000}
	require.Equal(t, time.UnixMilli(1700000000000), attempt.DateTime())

	require.True(t, (&connect2pay.TransactionAttempt{}).DateTime().IsZero())
}
