// Package connect2pay is a client for the Payzone Connect2Pay hosted
// payment page API.
//
// The normal workflow:
//   - build a Transaction and fill the payment parameters
//   - call Client.PreparePayment to create the payment
//   - redirect the shopper to Client.CustomerRedirectURL
//   - when the result arrives via server callback, decode the POST body with
//     DecodeCallbackStatus and authenticate it with VerifyCallbackDigest
//     before trusting anything it asserts
//   - when the result arrives via shopper redirection, decode the posted
//     "data" field with DecodeRedirectStatus (legacy delivery mode)
//
// The package does not sanitize input; every text value must be UTF-8.
package connect2pay

// APIVersion is the payment page API version this client implements.
const APIVersion = "002.50"

// Payment types.
const (
	PaymentTypeCreditCard   = "CreditCard"
	PaymentTypeToditoCash   = "ToditoCash"
	PaymentTypeBankTransfer = "BankTransfer"
)

// Payment providers, relevant for the BankTransfer payment type where
// several technical providers exist and availability depends on the country.
const (
	ProviderSofort     = "Sofort"
	ProviderPrzelewy24 = "Przelewy24"
	ProviderIDealKP    = "IDealKP"
)

// Operation types.
const (
	OperationSale      = "sale"
	OperationAuthorize = "authorize"
)

// Payment modes.
const (
	PaymentModeSingle      = "Single"
	PaymentModeOnShipping  = "OnShipping"
	PaymentModeRecurrent   = "Recurrent"
	PaymentModeInstalments = "InstalmentsPayments"
)

// Shipping types.
const (
	ShippingTypePhysical = "Physical"
	ShippingTypeAccess   = "Access"
	ShippingTypeVirtual  = "Virtual"
)

// Subscription types.
const (
	SubscriptionTypeNormal   = "normal"
	SubscriptionTypeLifetime = "lifetime"
	SubscriptionTypeOnetime  = "onetime"
	SubscriptionTypeInfinite = "infinite"
)

// Payment statuses reported by the payment page.
const (
	StatusAuthorized    = "Authorized"
	StatusNotAuthorized = "Not authorized"
	StatusExpired       = "Expired"
	StatusCallFailed    = "Call failed"
	StatusPending       = "Pending"
	StatusNotProcessed  = "Not processed"
)

// ResultCodeSuccess is the errorCode/code value signalling success on
// callbacks and one-shot calls.
const ResultCodeSuccess = "000"

// Sentinel values sent when anti-fraud data is required but unknown.
const (
	Unavailable        = "NA"
	UnavailableCountry = "ZZ"
)

// CancelReason identifies why a subscription is cancelled.
type CancelReason int

// Subscription cancellation reasons.
const (
	CancelBankDenial            CancelReason = 1000
	CancelRefunded              CancelReason = 1001
	CancelRetrieval             CancelReason = 1002
	CancelBankLetter            CancelReason = 1003
	CancelChargeback            CancelReason = 1004
	CancelCompanyAccountClosed  CancelReason = 1005
	CancelWebsiteAccountClosed  CancelReason = 1006
	CancelDidNotLike            CancelReason = 1007
	CancelDisagree              CancelReason = 1008
	CancelWebmasterFraud        CancelReason = 1009
	CancelCouldNotGetInto       CancelReason = 1010
	CancelNoProblem             CancelReason = 1011
	CancelNotUpdated            CancelReason = 1012
	CancelTechProblem           CancelReason = 1013
	CancelTooSlow               CancelReason = 1014
	CancelDidNotWork            CancelReason = 1015
	CancelTooExpensive          CancelReason = 1016
	CancelUnauthorizedFamily    CancelReason = 1017
	CancelUndetermined          CancelReason = 1018
	CancelWebmasterRequested    CancelReason = 1019
	CancelNothingReceived       CancelReason = 1020
	CancelDamaged               CancelReason = 1021
	CancelEmptyBox              CancelReason = 1022
	CancelIncompleteOrder       CancelReason = 1023
)
