package merchant

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/currency"
)

// Config is the merchant-side configuration, typically loaded from a YAML
// file.
type Config struct {
	// HTTPAddr is the listen address of the callback server.
	HTTPAddr string `yaml:"http_addr"`
	// APIURL is the base URL of the payment page API.
	APIURL string `yaml:"api_url"`
	// OriginatorID and Password authenticate API requests. OriginatorID
	// also signs currency rate requests.
	OriginatorID string `yaml:"originator_id"`
	Password     string `yaml:"password"`
	// SharedSecret feeds the callback authenticity digest. It never
	// travels over the wire.
	SharedSecret string `yaml:"shared_secret"`
	// SettlementCurrency is the currency payments are prepared in. Carts
	// in another currency are converted at the current rate.
	SettlementCurrency string `yaml:"settlement_currency"`
	// RateServiceURL overrides the currency rate endpoint.
	RateServiceURL string `yaml:"rate_service_url"`
	// NotificationEmails, when set, asks the payment page to notify the
	// merchant on each payment.
	NotificationEmails string `yaml:"notification_emails"`
	NotificationLang   string `yaml:"notification_lang"`
	// ReturnURL and CallbackURL are handed to the payment page on each
	// prepared transaction.
	ReturnURL   string `yaml:"return_url"`
	CallbackURL string `yaml:"callback_url"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:           "localhost:9090",
		APIURL:             "https://paiement.payzone.ma",
		SettlementCurrency: "MAD",
		NotificationLang:   "en",
	}
}

// LoadConfig reads a YAML config file and fills the blanks with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	if c.OriginatorID == "" {
		return fmt.Errorf("originator_id is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	if c.SharedSecret == "" {
		return fmt.Errorf("shared_secret is required")
	}
	if !currency.IsSupported(c.SettlementCurrency) {
		return fmt.Errorf("unsupported settlement currency %q", c.SettlementCurrency)
	}
	return nil
}
