package connect2pay

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldErrorKind classifies a validation failure.
type FieldErrorKind string

const (
	// MissingField reports a required field left empty.
	MissingField FieldErrorKind = "missing"
	// FieldTooLong reports a field exceeding its maximum length.
	FieldTooLong FieldErrorKind = "too long"
	// InvalidFieldValue reports a field that failed its validator.
	InvalidFieldValue FieldErrorKind = "invalid"
)

// FieldError describes one invalid transaction field.
type FieldError struct {
	Field  string
	Kind   FieldErrorKind
	Detail string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Kind, e.Detail)
}

// ValidationError accumulates every field error found on a transaction.
// Validation never fails fast; all errors are reported at once and no
// network call is made for an invalid transaction.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "transaction is not valid: " + strings.Join(msgs, "; ")
}

// fieldsRequired lists the fields a payment cannot be created without.
// The amount is numeric by construction and therefore always passes the
// "empty and non-numeric" rule of the API.
var fieldsRequired = []string{"orderID", "currency", "shippingType", "paymentMode"}

// fieldsSize is the validation-time maximum length per field, counted in
// characters. Free-text setters already truncate; the remaining fields are
// rejected here when oversized.
var fieldsSize = map[string]int{
	"shopperID":                32,
	"shopperEmail":             100,
	"shipToCountryCode":        2,
	"shopperCountryCode":       2,
	"orderID":                  100,
	"orderDescription":         500,
	"currency":                 3,
	"orderFOLanguage":          50,
	"shippingType":             50,
	"shippingName":             50,
	"paymentType":              32,
	"operation":                32,
	"paymentMode":              30,
	"subscriptionType":         32,
	"trialPeriod":              10,
	"rebillPeriod":             10,
	"ctrlRedirectURL":          2048,
	"ctrlCallbackURL":          2048,
	"timeOut":                  10,
	"merchantNotificationTo":   100,
	"merchantNotificationLang": 2,
	"ctrlCustomData":           2048,
}

// fieldsValidate maps each constrained field to its predicate. Every
// predicate treats the empty string as vacuously valid; emptiness is the
// required-field check's concern.
var fieldsValidate = map[string]func(string) bool{
	"shopperEmail":           IsEmail,
	"shipToCountryCode":      IsCountryCode,
	"shopperCountryCode":     IsCountryCode,
	"shippingType":           IsShippingType,
	"paymentType":            IsPaymentType,
	"provider":               IsProvider,
	"operation":              IsOperation,
	"paymentMode":            IsPaymentMode,
	"subscriptionType":       IsSubscriptionType,
	"ctrlRedirectURL":        IsAbsoluteURL,
	"ctrlCallbackURL":        IsAbsoluteURL,
	"merchantNotificationTo": IsEmail,
}

var (
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^` + "`" + `{}|~_-]+[.a-zA-Z0-9!#$%&'*+/=?^` + "`" + `{}|~_-]*@[a-zA-Z0-9]+[._a-zA-Z0-9-]*\.[a-zA-Z0-9]+$`)
	absoluteURLRe = regexp.MustCompile(`^https?://[:#%&_=().? +\-@/a-zA-Z0-9]+$`)
	countryRe     = regexp.MustCompile(`^[A-Za-z]{2}$`)
	intRe         = regexp.MustCompile(`^-?[0-9]+$`)
)

// IsEmail reports whether v looks like an e-mail address.
func IsEmail(v string) bool { return v == "" || emailRe.MatchString(v) }

// IsAbsoluteURL reports whether v is an absolute http(s) URL within the
// restricted character set the payment page accepts.
func IsAbsoluteURL(v string) bool { return v == "" || absoluteURLRe.MatchString(v) }

// IsCountryCode reports whether v is a two-letter ISO 3166-1 style code.
func IsCountryCode(v string) bool { return v == "" || countryRe.MatchString(v) }

// IsBool reports whether v is a boolean-ish value: empty, "0" or "1".
func IsBool(v string) bool { return v == "" || v == "0" || v == "1" }

// IsInt reports whether v is empty or an integer in decimal notation.
func IsInt(v string) bool { return v == "" || intRe.MatchString(v) }

// IsShippingType reports whether v is a valid shipping type.
func IsShippingType(v string) bool {
	return v == "" || v == ShippingTypePhysical || v == ShippingTypeVirtual || v == ShippingTypeAccess
}

// IsPaymentType reports whether v is a supported payment type.
func IsPaymentType(v string) bool {
	return v == "" || v == PaymentTypeCreditCard || v == PaymentTypeToditoCash || v == PaymentTypeBankTransfer
}

// IsProvider reports whether v is a supported payment provider.
func IsProvider(v string) bool {
	return v == "" || v == ProviderSofort || v == ProviderPrzelewy24 || v == ProviderIDealKP
}

// IsOperation reports whether v is a valid operation type.
func IsOperation(v string) bool {
	return v == "" || v == OperationSale || v == OperationAuthorize
}

// IsPaymentMode reports whether v is a valid payment mode.
func IsPaymentMode(v string) bool {
	return v == "" || v == PaymentModeSingle || v == PaymentModeOnShipping ||
		v == PaymentModeRecurrent || v == PaymentModeInstalments
}

// IsSubscriptionType reports whether v is a valid subscription type.
func IsSubscriptionType(v string) bool {
	return v == "" || v == SubscriptionTypeNormal || v == SubscriptionTypeInfinite ||
		v == SubscriptionTypeOnetime || v == SubscriptionTypeLifetime
}

// stringFields exposes the constrained string fields by wire name for the
// table-driven checks below.
func (t *Transaction) stringFields() map[string]string {
	return map[string]string{
		"shopperID":                t.shopperID,
		"shopperEmail":             t.shopperEmail,
		"shipToCountryCode":        t.shipToCountryCode,
		"shopperCountryCode":       t.shopperCountryCode,
		"orderID":                  t.orderID,
		"orderDescription":         t.orderDescription,
		"currency":                 t.currency,
		"orderFOLanguage":          t.orderFOLanguage,
		"shippingType":             t.shippingType,
		"shippingName":             t.shippingName,
		"paymentType":              t.paymentType,
		"provider":                 t.provider,
		"operation":                t.operation,
		"paymentMode":              t.paymentMode,
		"subscriptionType":         t.subscriptionType,
		"trialPeriod":              t.trialPeriod,
		"rebillPeriod":             t.rebillPeriod,
		"ctrlRedirectURL":          t.ctrlRedirectURL,
		"ctrlCallbackURL":          t.ctrlCallbackURL,
		"timeOut":                  t.timeOut,
		"merchantNotificationTo":   t.merchantNotificationTo,
		"merchantNotificationLang": t.merchantNotificationLang,
		"ctrlCustomData":           t.ctrlCustomData,
	}
}

// Validate checks the transaction against the required-field, length and
// per-field constraint tables. It returns nil when the transaction is
// valid, or a *ValidationError listing every failure.
func (t *Transaction) Validate() error {
	fields := t.stringFields()
	var errs []FieldError

	for _, name := range fieldsRequired {
		if fields[name] == "" {
			errs = append(errs, FieldError{Field: name, Kind: MissingField, Detail: "is empty"})
		}
	}

	for name, max := range fieldsSize {
		if v := fields[name]; utf8.RuneCountInString(v) > max {
			errs = append(errs, FieldError{
				Field:  name,
				Kind:   FieldTooLong,
				Detail: fmt.Sprintf("maximum length %d", max),
			})
		}
	}

	for name, valid := range fieldsValidate {
		if v := fields[name]; v != "" && !valid(v) {
			errs = append(errs, FieldError{Field: name, Kind: InvalidFieldValue, Detail: v})
		}
	}

	// Providers belong to the bank transfer flow only.
	if t.provider != "" && IsProvider(t.provider) && t.PaymentType() != PaymentTypeBankTransfer {
		errs = append(errs, FieldError{
			Field:  "provider",
			Kind:   InvalidFieldValue,
			Detail: fmt.Sprintf("%s requires the %s payment type", t.provider, PaymentTypeBankTransfer),
		})
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
