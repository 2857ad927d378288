package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratefeed/internal/adapters/cache"
	"ratefeed/internal/adapters/httpclient"
	"ratefeed/internal/adapters/postgres"
	"ratefeed/internal/adapters/reporter"
	"ratefeed/internal/api"
	"ratefeed/internal/config"
	"ratefeed/internal/platform/db"
	httpserver "ratefeed/internal/platform/http"
	"ratefeed/internal/rate"
	"ratefeed/internal/rate/handler"
	"ratefeed/internal/securetime"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Failed to migrate db")
		return err
	}
	logrus.Info("✅ Migrations applied")

	// Trusted time is taken from every feed response
	clock := securetime.NewClock()
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	getter := httpclient.NewGetter(&http.Client{Timeout: httpTimeout}, securetime.NewExtractor(clock))

	errReporter := reporter.New(appCfg.Reporter.BufferSize)
	defer errReporter.Close()

	rateCache, err := cache.NewRateCache(appCfg.Cache.MaxItems)
	if err != nil {
		return err
	}
	defer rateCache.Close()

	// Repositories
	rateRepo := postgres.NewRateRepository(pool)

	// Rate sources
	feeds := appCfg.Feeds
	fiatFetcher := rate.NewFiatRateFetcher(getter, errReporter, feeds.APIBaseURL, feeds.FallbackRatesURL, feeds.QuoteCode)
	cryptoFetcher := rate.NewCryptoRateFetcher(getter, errReporter, feeds.PriceHost, feeds.FsymsCharLimit, feeds.ChunkWorkers)
	tokenConverter := rate.NewTokenRateConverter(getter, errReporter, feeds.APIBaseURL, feeds.QuoteCode, feeds.PivotCode)
	priceChanges := rate.NewPriceChangeFetcher(getter, feeds.PriceHost, feeds.FsymsCharLimit)

	aggregator := rate.NewAggregator(
		rateRepo,
		rateCache,
		priceChanges,
		errReporter,
		fiatFetcher,
		cryptoFetcher,
		tokenConverter,
		rate.AggregatorConfig{QuoteCode: feeds.QuoteCode, ChangeQuote: feeds.PriceChangeQuote},
	)

	scheduler := rate.NewScheduler(aggregator, time.Duration(appCfg.Scheduler.JobDurationSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Handlers and router
	rateService := rate.NewService(rateRepo, rateCache, scheduler, clock)
	rateHandler := handler.NewRateHandler(rate.NewValidator(), rateService)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
