package merchant_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Vantage-Payment-Systems/payzone-prestashop/merchant"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payzone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://paiement.payzone.ma
originator_id: "123456"
password: s3cret
shared_secret: shh
settlement_currency: MAD
callback_url: https://shop.example.com/payzone/validation
`), 0o600))

	config, err := merchant.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "123456", config.OriginatorID)
	require.Equal(t, "MAD", config.SettlementCurrency)
	// Defaults fill what the file leaves out.
	require.Equal(t, "localhost:9090", config.HTTPAddr)
	require.Equal(t, "en", config.NotificationLang)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payzone.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_url: https://paiement.payzone.ma
originator_id: "123456"
password: s3cret
shared_secret: shh
settlement_currency: BTC
`), 0o600))

	_, err := merchant.LoadConfig(path)
	require.ErrorContains(t, err, "settlement currency")

	_, err = merchant.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	config := merchant.DefaultConfig()
	require.Error(t, config.Validate())

	config.OriginatorID = "123456"
	config.Password = "s3cret"
	config.SharedSecret = "shh"
	require.NoError(t, config.Validate())
}
