package connect2pay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const defaultTimeout = 30 * time.Second

// API routes of the payment page application.
const (
	routePrepare = "/payment/prepare"
	routeDoPay   = "/payment/%s"
	routeStatus  = "/payment/%s/status"
	routeRefund  = "/transaction/%s/refund"
	routeCancel  = "/subscription/%s/cancel"
)

// APIError surfaces a non-200 HTTP response from the payment page.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment page returned HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Client calls the Connect2Pay payment page API on behalf of one
// originator. All calls authenticate with HTTP Basic using the originator
// credentials and validate TLS against the system trust store. A Client
// holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	originator string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, for transport-level
// overrides such as custom timeouts or TLS settings. Certificate
// validation must never be disabled.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithProxy routes outgoing requests through an HTTP proxy, optionally
// authenticated.
func WithProxy(host string, port int, username, password string) Option {
	return func(c *Client) {
		u := &url.URL{Scheme: "http", Host: host + ":" + strconv.Itoa(port)}
		if username != "" {
			u.User = url.UserPassword(username, password)
		}
		c.httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger lets callers supply a logger for request-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a client for the payment page at baseURL,
// authenticating as originator.
func NewClient(baseURL, originator, password string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("payment page URL is required")
	}
	if originator == "" || password == "" {
		return nil, errors.New("originator credentials are required")
	}

	c := &Client{
		baseURL:    baseURL,
		originator: originator,
		password:   password,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BaseURL returns the payment page URL the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// PrepareResult carries the outcome of a payment creation. The tokens are
// only set when the payment page accepted the payment.
type PrepareResult struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	MerchantToken string `json:"merchantToken"`
	CustomerToken string `json:"customerToken"`
}

// Succeeded reports whether the payment page accepted the payment.
func (r *PrepareResult) Succeeded() bool { return r.Code == "200" }

// PreparePayment validates the transaction and creates the payment on the
// payment page. A *ValidationError is returned before any network I/O when
// the transaction is invalid. A refusal by the payment page is not an
// error: inspect PrepareResult.Succeeded and Message.
func (c *Client) PreparePayment(ctx context.Context, t *Transaction) (*PrepareResult, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	body, err := c.doRequest(ctx, http.MethodPost, routePrepare, nil, t.requestPayload())
	if err != nil {
		return nil, err
	}

	var result PrepareResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Stage: "prepare response", Err: err}
	}

	if result.Succeeded() {
		c.logger.Debug("payment prepared",
			slog.String("orderID", t.OrderID()),
			slog.String("merchantToken", result.MerchantToken))
	}

	return &result, nil
}

// CustomerRedirectURL builds the URL the shopper's browser must be
// redirected to after a successful payment creation.
func (c *Client) CustomerRedirectURL(customerToken string) string {
	return c.baseURL + fmt.Sprintf(routeDoPay, url.PathEscape(customerToken))
}

// PaymentStatus fetches the current status of a payment.
func (c *Client) PaymentStatus(ctx context.Context, merchantToken string) (*PaymentStatus, error) {
	merchantToken = strings.TrimSpace(merchantToken)
	if merchantToken == "" {
		return nil, errors.New("merchant token is required")
	}

	path := fmt.Sprintf(routeStatus, url.PathEscape(merchantToken))
	body, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeStatus(body)
}

// RefundTransaction refunds amount (in minor currency units) on a
// processed transaction.
func (c *Client) RefundTransaction(ctx context.Context, transactionID string, amount int64) (*RefundStatus, error) {
	if transactionID == "" {
		return nil, errors.New("transaction id is required")
	}
	if amount < 0 {
		return nil, errors.New("amount must not be negative")
	}

	payload := map[string]any{
		"apiVersion": APIVersion,
		"amount":     amount,
	}

	path := fmt.Sprintf(routeRefund, url.PathEscape(transactionID))
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}

	var status RefundStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, &DecodeError{Stage: "refund response", Err: err}
	}
	return &status, nil
}

// CancelSubscription cancels a subscription with the given reason.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID int64, reason CancelReason) (*CancelResult, error) {
	if subscriptionID <= 0 {
		return nil, errors.New("subscription id is required")
	}

	payload := map[string]any{
		"apiVersion":   APIVersion,
		"cancelReason": int(reason),
	}

	path := fmt.Sprintf(routeCancel, strconv.FormatInt(subscriptionID, 10))
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return nil, err
	}

	var result CancelResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Stage: "cancel response", Err: err}
	}
	return &result, nil
}

// doRequest performs one authenticated call. POST bodies are JSON, GET
// parameters go in the query string. Any non-200 response is an *APIError.
// No call is ever retried; resilience is the caller's concern.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, payload any) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.originator, c.password)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting payment page: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading payment page response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}
