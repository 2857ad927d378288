package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
feeds:
  api_base_url: "https://api.example.com"
db_server:
  host: localhost
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com", cfg.Feeds.APIBaseURL)
	require.Equal(t, 300, cfg.Feeds.FsymsCharLimit)
	require.Equal(t, "BTC", cfg.Feeds.QuoteCode)
	require.Equal(t, "ETH", cfg.Feeds.PivotCode)
	require.Equal(t, "USD", cfg.Feeds.PriceChangeQuote)
	require.Equal(t, "https://bitpay.com/rates", cfg.Feeds.FallbackRatesURL)
	require.Equal(t, 60, cfg.Scheduler.JobDurationSec)
	require.Equal(t, int32(10), cfg.DbServer.MaxConns)
	require.Equal(t, int64(10000), cfg.Cache.MaxItems)
	require.Equal(t, "localhost", cfg.DbServer.Host)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
feeds:
  api_base_url: "https://api.example.com"
  fsyms_char_limit: 120
db_server:
  host: localhost
`)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("FEEDS_FSYMS_CHAR_LIMIT", "200")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "db.internal", cfg.DbServer.Host)
	require.Equal(t, 200, cfg.Feeds.FsymsCharLimit)
}

func TestLoad_MissingAPIBaseURL(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: debug\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDbServer_GetConnectionStr(t *testing.T) {
	cfg := DbServer{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "user=u password=p host=h port=5432 dbname=n sslmode=disable", cfg.GetConnectionStr())
}
