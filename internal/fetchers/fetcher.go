package fetchers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulseboard/internal/config"
	"pulseboard/internal/logger"
	"pulseboard/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// Pipeline names used in logs and metrics
const (
	PipelineCrypto  = "crypto"
	PipelineSeismic = "seismic"
)

// OutcomeOK labels a run that produced rows
const OutcomeOK = "ok"

// Recorder receives one observation per pipeline run
type Recorder interface {
	RecordFetch(pipeline, outcome string, duration time.Duration, rows int)
}

// Options configures a DataFetcher
type Options struct {
	CoinGeckoBaseURL string
	USGSBaseURL      string
	Timeout          time.Duration
	Recorder         Recorder
}

// OptionsFromConfig maps service configuration onto fetcher options
func OptionsFromConfig(cfg *config.Config, rec Recorder) Options {
	return Options{
		CoinGeckoBaseURL: cfg.CoinGeckoBaseURL,
		USGSBaseURL:      cfg.USGSBaseURL,
		Timeout:          cfg.HTTPTimeout,
		Recorder:         rec,
	}
}

// DataFetcher runs the fetch and normalize pipelines. It holds no per-run state
// and is safe for concurrent use.
type DataFetcher struct {
	client     *resty.Client
	coinGecko  *CoinGeckoFetcher
	usgs       *USGSFetcher
	feed       *FeedFetcher
	normalizer *DataNormalizer
	recorder   Recorder
	log        *logger.Logger
}

// NewDataFetcher creates a new data fetcher instance
func NewDataFetcher(opts Options) *DataFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	client.SetHeader("User-Agent", "pulseboard/"+config.GetVersion())

	return &DataFetcher{
		client:     client,
		coinGecko:  NewCoinGeckoFetcher(client, opts.CoinGeckoBaseURL),
		usgs:       NewUSGSFetcher(client, opts.USGSBaseURL),
		feed:       NewFeedFetcher(client),
		normalizer: NewDataNormalizer(),
		recorder:   opts.Recorder,
		log:        logger.GetGlobalLogger().WithComponent("fetchers"),
	}
}

// FetchPrices runs the crypto pipeline. It never returns a Go error; failures
// and empty responses are reported through result.Err.
func (f *DataFetcher) FetchPrices(ctx context.Context, q models.CryptoQuery) (result models.PriceResult) {
	start := time.Now()
	result = models.PriceResult{
		ID:        uuid.NewString(),
		Query:     q,
		FetchedAt: start.UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Table = nil
			result.Err = models.NewFetchError(models.KindDecode, fmt.Sprintf("unexpected failure: %v", r), nil)
		}
		result.Duration = time.Since(start)
		f.observe(PipelineCrypto, result.ID, result.Err, result.Duration, len(result.Table))
	}()

	raw, err := f.coinGecko.Fetch(ctx, q.Assets, q.Currencies)
	if err != nil {
		result.Err = toFetchError(err)
		return result
	}

	table := f.normalizer.NormalizePrices(raw)
	if len(table) == 0 {
		result.Err = models.NewFetchError(models.KindEmpty, "no prices returned", nil)
		return result
	}

	result.Table = table
	return result
}

// FetchQuakes runs the seismic pipeline with the same contract as FetchPrices
func (f *DataFetcher) FetchQuakes(ctx context.Context, q models.SeismicQuery) (result models.QuakeResult) {
	start := time.Now()
	result = models.QuakeResult{
		ID:        uuid.NewString(),
		Query:     q,
		FetchedAt: start.UTC(),
	}

	defer func() {
		if r := recover(); r != nil {
			result.Table = nil
			result.Err = models.NewFetchError(models.KindDecode, fmt.Sprintf("unexpected failure: %v", r), nil)
		}
		result.Duration = time.Since(start)
		f.observe(PipelineSeismic, result.ID, result.Err, result.Duration, len(result.Table))
	}()

	collection, err := f.usgs.Fetch(ctx, q)
	if err != nil {
		result.Err = toFetchError(err)
		return result
	}

	table, err := f.normalizer.NormalizeQuakes(collection)
	if err != nil {
		result.Err = models.NewFetchError(models.KindDecode, err.Error(), err)
		return result
	}
	if len(table) == 0 {
		result.Err = models.NewFetchError(models.KindEmpty, "no earthquakes found", nil)
		return result
	}

	result.Table = table
	return result
}

// FetchSignificant returns recent significant events from an Atom feed
func (f *DataFetcher) FetchSignificant(ctx context.Context, url string, limit int) ([]models.FeedEvent, error) {
	events, err := f.feed.Fetch(ctx, url, limit)
	if err != nil {
		f.log.Warn("Significant feed unavailable", map[string]interface{}{"url": url, "error": err.Error()})
		return nil, err
	}
	return events, nil
}

func (f *DataFetcher) observe(pipeline, id string, fe *models.FetchError, d time.Duration, rows int) {
	outcome := OutcomeOK
	fields := map[string]interface{}{
		"pipeline":    pipeline,
		"fetch_id":    id,
		"duration_ms": d.Milliseconds(),
		"rows":        rows,
	}

	switch {
	case fe == nil:
		f.log.Info("Pipeline run completed", fields)
	case fe.IsEmpty():
		outcome = string(fe.Kind)
		f.log.Warn("Pipeline run returned no rows", fields)
	default:
		outcome = string(fe.Kind)
		fields["kind"] = outcome
		if fe.StatusCode != 0 {
			fields["status_code"] = fe.StatusCode
		}
		f.log.Error("Pipeline run failed", fe, fields)
	}

	if f.recorder != nil {
		f.recorder.RecordFetch(pipeline, outcome, d, rows)
	}
}

func toFetchError(err error) *models.FetchError {
	var fe *models.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return models.NewFetchError(models.KindTransport, err.Error(), err)
}
