package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port                 string `mapstructure:"port"`
	ReadHeaderTimeoutSec int    `mapstructure:"read_header_timeout_sec"`
	ShutdownTimeoutSec   int    `mapstructure:"shutdown_timeout_sec"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type Scheduler struct {
	JobDurationSec int `mapstructure:"job_duration_sec"`
}

// Feeds holds the endpoints and currency settings of the rate sources.
type Feeds struct {
	APIBaseURL       string `mapstructure:"api_base_url"`
	FallbackRatesURL string `mapstructure:"fallback_rates_url"`
	PriceHost        string `mapstructure:"price_host"`
	FsymsCharLimit   int    `mapstructure:"fsyms_char_limit"`
	ChunkWorkers     int    `mapstructure:"chunk_workers"`
	QuoteCode        string `mapstructure:"quote_code"`
	PivotCode        string `mapstructure:"pivot_code"`
	PriceChangeQuote string `mapstructure:"price_change_quote"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Reporter struct {
	BufferSize int `mapstructure:"buffer_size"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Feeds      Feeds      `mapstructure:"feeds"`
	Cache      Cache      `mapstructure:"cache"`
	Reporter   Reporter   `mapstructure:"reporter"`
}

// Init loads .env when present and then config.yaml with env overrides.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

func Load(configFile string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.read_header_timeout_sec", 5)
	v.SetDefault("http_server.shutdown_timeout_sec", 10)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("scheduler.job_duration_sec", 60)
	v.SetDefault("feeds.fallback_rates_url", "https://bitpay.com/rates")
	v.SetDefault("feeds.price_host", "https://min-api.cryptocompare.com/data")
	v.SetDefault("feeds.fsyms_char_limit", 300)
	v.SetDefault("feeds.chunk_workers", 4)
	v.SetDefault("feeds.quote_code", "BTC")
	v.SetDefault("feeds.pivot_code", "ETH")
	v.SetDefault("feeds.price_change_quote", "USD")
	v.SetDefault("cache.max_items", 10000)
	v.SetDefault("reporter.buffer_size", 256)

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.min_conns", "DB_MIN_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("scheduler.job_duration_sec", "SCHEDULER_JOB_DURATION_SEC")

	// feeds env vars
	_ = v.BindEnv("feeds.api_base_url", "FEEDS_API_BASE_URL")
	_ = v.BindEnv("feeds.fallback_rates_url", "FEEDS_FALLBACK_RATES_URL")
	_ = v.BindEnv("feeds.price_host", "FEEDS_PRICE_HOST")
	_ = v.BindEnv("feeds.fsyms_char_limit", "FEEDS_FSYMS_CHAR_LIMIT")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Feeds.APIBaseURL == "" {
		return nil, errors.New("feeds.api_base_url is required")
	}
	return &cfg, nil
}
