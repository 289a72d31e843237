package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CryptoQuery is an ordered request for asset prices in a set of currencies
type CryptoQuery struct {
	Assets     []string `json:"assets"`     // CoinGecko ids, e.g. "bitcoin"
	Currencies []string `json:"currencies"` // lowercase codes, e.g. "usd"
}

// NewCryptoQuery builds a query from comma-separated input. Blank entries are dropped.
func NewCryptoQuery(assets, currencies string) CryptoQuery {
	return CryptoQuery{
		Assets:     SplitList(assets),
		Currencies: SplitList(currencies),
	}
}

// SplitList splits a comma-separated list, trimming whitespace and dropping blanks
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CurrencyPrice is one currency entry of a price response. Price is nil for JSON null.
type CurrencyPrice struct {
	Currency string
	Price    *float64
}

// AssetPrices holds the currency entries for one asset, in response order
type AssetPrices struct {
	Asset  string
	Prices []CurrencyPrice
}

// RawPrices is the decoded simple/price response with key order preserved
type RawPrices []AssetPrices

// UnmarshalJSON decodes {"asset": {"currency": price}} keeping object key order
func (r *RawPrices) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var out RawPrices
	for dec.More() {
		asset, err := readKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("asset %q: %w", asset, err)
		}

		entry := AssetPrices{Asset: asset}
		for dec.More() {
			currency, err := readKey(dec)
			if err != nil {
				return err
			}
			var price *float64
			if err := dec.Decode(&price); err != nil {
				return fmt.Errorf("price for %s/%s: %w", asset, currency, err)
			}
			entry.Prices = append(entry.Prices, CurrencyPrice{Currency: currency, Price: price})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
		out = append(out, entry)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return err
	}

	*r = out
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// PriceRow is one flattened (asset, currency, price) observation.
// Price is nil when the API reported null for the pair.
type PriceRow struct {
	Asset    string   `json:"asset"`
	Currency string   `json:"currency"`
	Price    *float64 `json:"price"`
}

// PriceTable is an ordered list of price rows. Duplicates are kept.
type PriceTable []PriceRow

// Assets returns the distinct assets in first-seen order
func (t PriceTable) Assets() []string {
	return distinct(t, func(r PriceRow) string { return r.Asset })
}

// Currencies returns the distinct currencies in first-seen order
func (t PriceTable) Currencies() []string {
	return distinct(t, func(r PriceRow) string { return r.Currency })
}

// PricesFor returns the non-null prices recorded for an asset, in table order
func (t PriceTable) PricesFor(asset string) []float64 {
	var out []float64
	for _, r := range t {
		if r.Asset == asset && r.Price != nil {
			out = append(out, *r.Price)
		}
	}
	return out
}

// Lookup returns the first non-null price for an asset/currency pair
func (t PriceTable) Lookup(asset, currency string) (float64, bool) {
	for _, r := range t {
		if r.Asset == asset && r.Currency == currency && r.Price != nil {
			return *r.Price, true
		}
	}
	return 0, false
}

func distinct(t PriceTable, key func(PriceRow) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
