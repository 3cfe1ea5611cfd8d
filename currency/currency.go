// Package currency fetches exchange rates from the Payzone rate service
// and converts order amounts to the settlement currency.
package currency

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"
)

// DefaultServiceURL is the production rate service endpoint.
const DefaultServiceURL = "https://currency.payzone.ma/rate"

// successResponseCode marks an accepted rate request.
const successResponseCode = "000"

// ErrUnsupportedCurrency is returned when a currency is not in the
// supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ErrRateUnavailable is returned when the rate service refused the request
// (bad signature, unknown pair, provider-side error).
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// Info describes one supported currency.
type Info struct {
	Name        string
	NumericCode string
	Symbol      string
}

// currencies is the fixed set the rate service quotes, keyed by ISO 4217
// alphabetic code.
var currencies = map[string]Info{
	"AUD": {Name: "Australian Dollar", NumericCode: "036", Symbol: "$"},
	"CAD": {Name: "Canadian Dollar", NumericCode: "124", Symbol: "$"},
	"CHF": {Name: "Swiss Franc", NumericCode: "756", Symbol: "CHF"},
	"DKK": {Name: "Danish Krone", NumericCode: "208", Symbol: "kr"},
	"EUR": {Name: "Euro", NumericCode: "978", Symbol: "€"},
	"GBP": {Name: "Pound Sterling", NumericCode: "826", Symbol: "£"},
	"HKD": {Name: "Hong Kong Dollar", NumericCode: "344", Symbol: "$"},
	"JPY": {Name: "Yen", NumericCode: "392", Symbol: "¥"},
	"MXN": {Name: "Mexican Peso", NumericCode: "484", Symbol: "$"},
	"NOK": {Name: "Norwegian Krone", NumericCode: "578", Symbol: "kr"},
	"SEK": {Name: "Swedish Krona", NumericCode: "752", Symbol: "kr"},
	"USD": {Name: "US Dollar", NumericCode: "840", Symbol: "$"},
	"MAD": {Name: "Moroccan Dirham", NumericCode: "504", Symbol: "MAD"},
}

// Supported returns the supported alphabetic codes, sorted.
func Supported() []string {
	codes := make([]string, 0, len(currencies))
	for code := range currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// IsSupported reports whether the alphabetic code is in the supported set.
func IsSupported(code string) bool {
	_, ok := currencies[code]
	return ok
}

// Lookup returns the metadata of a supported currency.
func Lookup(code string) (Info, bool) {
	info, ok := currencies[code]
	return info, ok
}

// FromNumericCode resolves an ISO 4217 numeric code to its alphabetic
// code, or "" when unknown.
func FromNumericCode(numeric string) string {
	for code, info := range currencies {
		if info.NumericCode == numeric {
			return code
		}
	}
	return ""
}

// Helper queries the rate service. The zero value is not usable; use
// NewHelper.
type Helper struct {
	serviceURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Helper.
type Option func(*Helper)

// WithServiceURL points the helper at a different rate service, typically
// a stub in tests.
func WithServiceURL(u string) Option {
	return func(h *Helper) {
		if u != "" {
			h.serviceURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to route
// through a proxy.
func WithHTTPClient(hc *http.Client) Option {
	return func(h *Helper) {
		if hc != nil {
			h.httpClient = hc
		}
	}
}

// WithProxy routes rate requests through an HTTP proxy.
func WithProxy(host string, port int, username, password string) Option {
	return func(h *Helper) {
		u := &url.URL{Scheme: "http", Host: host + ":" + strconv.Itoa(port)}
		if username != "" {
			u.User = url.UserPassword(username, password)
		}
		h.httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}
}

// WithLogger supplies a logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Helper) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHelper builds a rate service client.
func NewHelper(opts ...Option) *Helper {
	h := &Helper{
		serviceURL: DefaultServiceURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// rateResponse is the rate service document. The rate arrives as a
// decimal string.
type rateResponse struct {
	ResponseCode string      `json:"response_code"`
	Rate         json.Number `json:"rate"`
}

// GetRate fetches the conversion rate between two supported currencies.
// The request is signed with the MD5 of the originator id and password,
// the scheme the rate service mandates.
func (h *Helper) GetRate(ctx context.Context, from, to, originatorID, password string) (decimal.Decimal, error) {
	if !IsSupported(from) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	if !IsSupported(to) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	sum := md5.Sum([]byte(originatorID + password))

	params := url.Values{}
	params.Set("signature", hex.EncodeToString(sum[:]))
	params.Set("originator_id", originatorID)
	params.Set("from", from)
	params.Set("to", to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.serviceURL+"?"+params.Encode(), nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("requesting rate service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: rate service returned HTTP %d", ErrRateUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading rate response: %w", err)
	}

	var result rateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate response: %w", err)
	}

	if result.ResponseCode != successResponseCode {
		h.logger.Debug("rate request refused",
			slog.String("from", from), slog.String("to", to),
			slog.String("responseCode", result.ResponseCode))
		return decimal.Zero, fmt.Errorf("%w: response code %s", ErrRateUnavailable, result.ResponseCode)
	}

	rate, err := decimal.NewFromString(result.Rate.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decoding rate value %q: %w", result.Rate, err)
	}

	return rate, nil
}

// Convert converts amount from one currency to another. With minorUnits
// the amount is taken as minor currency units and the result rounded to a
// whole number; otherwise it is rounded to two decimals. On any failure
// the caller must treat the order as unconvertible and abort the payment
// preparation.
func (h *Helper) Convert(ctx context.Context, amount decimal.Decimal, from, to, originatorID, password string, minorUnits bool) (decimal.Decimal, error) {
	rate, err := h.GetRate(ctx, from, to, originatorID, password)
	if err != nil {
		return decimal.Zero, err
	}

	converted := amount.Mul(rate)
	if minorUnits {
		return converted.Round(0), nil
	}
	return converted.Round(2), nil
}
