package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, []string{"bitcoin", "ethereum"}, p.Crypto.Default.Query().Assets)
	assert.Equal(t, []string{"usd", "eur"}, p.Crypto.Default.Query().Currencies)
	assert.Equal(t, []string{"bitcoin", "ethereum", "cardano", "solana"}, p.Crypto.Common.Query().Assets)
	assert.Equal(t, []string{"usd", "eur", "gbp"}, p.Crypto.Common.Query().Currencies)

	q, err := p.Seismic.Query()
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", q.Start.Format("2006-01-02"))
	assert.Equal(t, "2023-12-31", q.End.Format("2006-01-02"))
	assert.Equal(t, 4.0, q.MinMagnitude)
	assert.Equal(t, 0.1, p.Seismic.MagnitudeStep)
	assert.Equal(t, 5, p.Seismic.FeedLimit)
}

func TestCryptoResolve(t *testing.T) {
	p := Default().Crypto
	typed := CryptoSelection{Assets: "dogecoin", Currencies: "jpy"}

	tests := []struct {
		preset     string
		assets     []string
		currencies []string
	}{
		{"", []string{"dogecoin"}, []string{"jpy"}},
		{PresetCommon, []string{"bitcoin", "ethereum", "cardano", "solana"}, []string{"usd", "eur", "gbp"}},
		{PresetCommonAssets, []string{"bitcoin", "ethereum", "cardano", "solana"}, []string{"jpy"}},
		{PresetCommonCurrencies, []string{"dogecoin"}, []string{"usd", "eur", "gbp"}},
	}
	for _, tt := range tests {
		t.Run("preset="+tt.preset, func(t *testing.T) {
			q, err := p.Resolve(tt.preset, typed)
			require.NoError(t, err)
			assert.Equal(t, tt.assets, q.Assets)
			assert.Equal(t, tt.currencies, q.Currencies)
		})
	}

	_, err := p.Resolve("everything", typed)
	assert.Error(t, err)
}

func TestLoadOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crypto:\n  default:\n    assets: dogecoin\n    currencies: jpy\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dogecoin", p.Crypto.Default.Assets)
	assert.Equal(t, "bitcoin,ethereum,cardano,solana", p.Crypto.Common.Assets)
	assert.Equal(t, "2023-01-01", p.Seismic.Start)
}

func TestLoadEmptyPath(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	tests := map[string]string{
		"bad yaml":       "crypto: [",
		"bad date":       "seismic:\n  start: yesterday\n",
		"out of bounds":  "seismic:\n  minMagnitude: 11\n",
		"inverted range": "seismic:\n  magnitudeMin: 5\n  magnitudeMax: 2\n",
		"zero step":      "seismic:\n  magnitudeStep: 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "presets.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
