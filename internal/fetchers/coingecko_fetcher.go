package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pulseboard/internal/models"

	"github.com/go-resty/resty/v2"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko v3 API
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher queries the CoinGecko simple/price endpoint
type CoinGeckoFetcher struct {
	client  *resty.Client
	baseURL string
}

// NewCoinGeckoFetcher creates a new CoinGecko fetcher instance
func NewCoinGeckoFetcher(client *resty.Client, baseURL string) *CoinGeckoFetcher {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoBaseURL
	}
	return &CoinGeckoFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Fetch issues one GET for the given ids and currencies. Empty lists are sent as empty parameters.
func (f *CoinGeckoFetcher) Fetch(ctx context.Context, ids, currencies []string) (models.RawPrices, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("vs_currencies", strings.Join(currencies, ",")).
		Get(f.baseURL + "/simple/price")

	if err != nil {
		return nil, models.NewFetchError(models.KindTransport, "failed to fetch CoinGecko prices",
			fmt.Errorf("GET simple/price: %w", err))
	}

	if resp.StatusCode() != http.StatusOK {
		fe := models.NewFetchError(models.KindStatus,
			fmt.Sprintf("CoinGecko API returned status %d", resp.StatusCode()), nil)
		fe.StatusCode = resp.StatusCode()
		return nil, fe
	}

	var raw models.RawPrices
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, models.NewFetchError(models.KindDecode, "failed to parse CoinGecko response", err)
	}

	return raw, nil
}
