package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(v float64) *float64 { return &v }

func TestRawPricesPreservesKeyOrder(t *testing.T) {
	body := `{"solana":{"usd":150.5,"eur":140},"bitcoin":{"usd":60000,"eur":55000,"gbp":48000}}`

	var raw RawPrices
	require.NoError(t, json.Unmarshal([]byte(body), &raw))

	require.Len(t, raw, 2)
	assert.Equal(t, "solana", raw[0].Asset)
	assert.Equal(t, "bitcoin", raw[1].Asset)
	require.Len(t, raw[1].Prices, 3)
	assert.Equal(t, []string{"usd", "eur", "gbp"}, []string{
		raw[1].Prices[0].Currency, raw[1].Prices[1].Currency, raw[1].Prices[2].Currency,
	})
	assert.Equal(t, 150.5, *raw[0].Prices[0].Price)
}

func TestRawPricesNullAndEmpty(t *testing.T) {
	var raw RawPrices
	require.NoError(t, json.Unmarshal([]byte(`{"bitcoin":{"usd":null},"ghost":{}}`), &raw))

	require.Len(t, raw, 2)
	require.Len(t, raw[0].Prices, 1)
	assert.Equal(t, "usd", raw[0].Prices[0].Currency)
	assert.Nil(t, raw[0].Prices[0].Price)
	assert.Empty(t, raw[1].Prices)

	var empty RawPrices
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.Empty(t, empty)
}

func TestRawPricesRejectsMalformed(t *testing.T) {
	for _, body := range []string{
		`[]`,
		`{"bitcoin":42}`,
		`{"bitcoin":{"usd":"cheap"}}`,
		`{"bitcoin":{"usd":1}`,
	} {
		var raw RawPrices
		assert.Error(t, json.Unmarshal([]byte(body), &raw), body)
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum"}, SplitList(" bitcoin , ethereum ,"))
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , "))
}

func TestPriceTableHelpers(t *testing.T) {
	table := PriceTable{
		{Asset: "bitcoin", Currency: "usd", Price: fp(2)},
		{Asset: "ethereum", Currency: "eur", Price: fp(3)},
		{Asset: "bitcoin", Currency: "eur", Price: fp(1)},
		{Asset: "bitcoin", Currency: "gbp", Price: nil},
		{Asset: "newcoin", Currency: "usd", Price: nil},
	}

	assert.Equal(t, []string{"bitcoin", "ethereum", "newcoin"}, table.Assets())
	assert.Equal(t, []string{"usd", "eur", "gbp"}, table.Currencies())
	assert.Equal(t, []float64{2, 1}, table.PricesFor("bitcoin"))
	assert.Empty(t, table.PricesFor("newcoin"))

	p, ok := table.Lookup("ethereum", "eur")
	assert.True(t, ok)
	assert.Equal(t, 3.0, p)
	_, ok = table.Lookup("ethereum", "usd")
	assert.False(t, ok)
	_, ok = table.Lookup("bitcoin", "gbp")
	assert.False(t, ok)
}

func TestNewSeismicQuery(t *testing.T) {
	q, err := NewSeismicQuery("2023-01-01", "2023-12-31", 12)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), q.Start)
	assert.Equal(t, 10.0, q.MinMagnitude)

	q, err = NewSeismicQuery("2023-02-01", "2023-01-01", -1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, q.MinMagnitude)

	_, err = NewSeismicQuery("01/01/2023", "2023-12-31", 4)
	assert.Error(t, err)
	_, err = NewSeismicQuery("2023-01-01", "", 4)
	assert.Error(t, err)
}

func TestQuakeRowFallbacks(t *testing.T) {
	mag := 5.1
	place := "Somewhere"
	assert.Equal(t, 5.1, QuakeRow{Magnitude: &mag}.MagnitudeOr(0))
	assert.Equal(t, -1.0, QuakeRow{}.MagnitudeOr(-1))
	assert.Equal(t, "Somewhere", QuakeRow{Place: &place}.PlaceOr("?"))
	assert.Equal(t, "?", QuakeRow{}.PlaceOr("?"))
}

func TestFetchError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewFetchError(KindTransport, "request failed", cause)

	assert.Equal(t, "transport: request failed: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, err.IsEmpty())
	assert.True(t, NewFetchError(KindEmpty, "no rows", nil).IsEmpty())

	var nilErr *FetchError
	assert.False(t, nilErr.IsEmpty())
}
