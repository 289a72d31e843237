package fetchers

import (
	"context"
	"fmt"
	"strings"

	"pulseboard/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// FeedFetcher reads the USGS significant-earthquakes Atom feed
type FeedFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
}

// NewFeedFetcher creates a new feed fetcher instance
func NewFeedFetcher(client *resty.Client) *FeedFetcher {
	return &FeedFetcher{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch returns up to limit entries in feed order. limit <= 0 returns all.
func (f *FeedFetcher) Fetch(ctx context.Context, url string, limit int) ([]models.FeedEvent, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/atom+xml, application/xml").
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch significant feed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("significant feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse significant feed: %w", err)
	}

	var events []models.FeedEvent
	for _, item := range feed.Items {
		if limit > 0 && len(events) >= limit {
			break
		}
		ev := models.FeedEvent{
			Title: strings.TrimSpace(item.Title),
			Link:  item.Link,
		}
		if item.PublishedParsed != nil {
			ev.Published = item.PublishedParsed.UTC()
		} else if item.UpdatedParsed != nil {
			ev.Published = item.UpdatedParsed.UTC()
		}
		events = append(events, ev)
	}

	return events, nil
}
