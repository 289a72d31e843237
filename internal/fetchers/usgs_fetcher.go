package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pulseboard/internal/models"

	"github.com/go-resty/resty/v2"
)

// DefaultUSGSBaseURL is the USGS fdsnws event service
const DefaultUSGSBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1"

// USGSFetcher queries the fdsnws event service for GeoJSON
type USGSFetcher struct {
	client  *resty.Client
	baseURL string
}

// NewUSGSFetcher creates a new USGS fetcher instance
func NewUSGSFetcher(client *resty.Client, baseURL string) *USGSFetcher {
	if baseURL == "" {
		baseURL = DefaultUSGSBaseURL
	}
	return &USGSFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// QueryParams builds the fdsnws query parameters for q
func QueryParams(q models.SeismicQuery) map[string]string {
	return map[string]string{
		"format":       "geojson",
		"starttime":    q.Start.Format(models.DateLayout),
		"endtime":      q.End.Format(models.DateLayout),
		"minmagnitude": strconv.FormatFloat(q.MinMagnitude, 'f', -1, 64),
	}
}

// Fetch issues one GET and decodes the FeatureCollection
func (f *USGSFetcher) Fetch(ctx context.Context, q models.SeismicQuery) (*models.QuakeCollection, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(QueryParams(q)).
		Get(f.baseURL + "/query")

	if err != nil {
		return nil, models.NewFetchError(models.KindTransport, err.Error(),
			fmt.Errorf("GET fdsnws query: %w", err))
	}

	// fdsnws answers 204 when nodata=204 and nothing matches
	if resp.StatusCode() == http.StatusNoContent {
		return &models.QuakeCollection{Type: "FeatureCollection"}, nil
	}

	if !resp.IsSuccess() {
		body := strings.TrimSpace(string(resp.Body()))
		fe := models.NewFetchError(models.KindStatus,
			fmt.Sprintf("%d %s for url: %s: %s", resp.StatusCode(), http.StatusText(resp.StatusCode()), resp.Request.URL, body), nil)
		fe.StatusCode = resp.StatusCode()
		return nil, fe
	}

	var collection models.QuakeCollection
	if err := json.Unmarshal(resp.Body(), &collection); err != nil {
		return nil, models.NewFetchError(models.KindDecode, "failed to parse USGS GeoJSON", err)
	}

	return &collection, nil
}
