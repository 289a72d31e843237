package presets

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"pulseboard/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultYAML []byte

// Presets holds the form defaults for both dashboards
type Presets struct {
	Crypto  CryptoPresets  `yaml:"crypto"`
	Seismic SeismicPresets `yaml:"seismic"`
}

// CryptoPresets holds the default and "common" selections
type CryptoPresets struct {
	Default CryptoSelection `yaml:"default"`
	Common  CryptoSelection `yaml:"common"`
}

// CryptoSelection is a pair of comma-separated lists as typed by a user
type CryptoSelection struct {
	Assets     string `yaml:"assets"`
	Currencies string `yaml:"currencies"`
}

// Query converts the selection into a query
func (s CryptoSelection) Query() models.CryptoQuery {
	return models.NewCryptoQuery(s.Assets, s.Currencies)
}

// Crypto preset names. The common asset and currency lists apply independently.
const (
	PresetCommon           = "common"
	PresetCommonAssets     = "common-assets"
	PresetCommonCurrencies = "common-currencies"
)

// Resolve applies a named preset on top of the typed selection.
// An empty preset leaves the selection as typed.
func (p CryptoPresets) Resolve(preset string, typed CryptoSelection) (models.CryptoQuery, error) {
	switch preset {
	case "":
	case PresetCommon:
		typed = p.Common
	case PresetCommonAssets:
		typed.Assets = p.Common.Assets
	case PresetCommonCurrencies:
		typed.Currencies = p.Common.Currencies
	default:
		return models.CryptoQuery{}, fmt.Errorf("unknown crypto preset %q", preset)
	}
	return typed.Query(), nil
}

// SeismicPresets holds the default date range and magnitude slider bounds
type SeismicPresets struct {
	Start         string  `yaml:"start"`
	End           string  `yaml:"end"`
	MinMagnitude  float64 `yaml:"minMagnitude"`
	MagnitudeMin  float64 `yaml:"magnitudeMin"`
	MagnitudeMax  float64 `yaml:"magnitudeMax"`
	MagnitudeStep float64 `yaml:"magnitudeStep"`
	FeedLimit     int     `yaml:"feedLimit"`
}

// Query converts the defaults into a query
func (s SeismicPresets) Query() (models.SeismicQuery, error) {
	return models.NewSeismicQuery(s.Start, s.End, s.MinMagnitude)
}

// Default returns the embedded presets
func Default() Presets {
	p, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded presets are invalid: %v", err))
	}
	return p
}

// Load reads presets from path, or returns the embedded ones when path is empty.
// Keys missing from the file keep their embedded values.
func Load(path string) (Presets, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Presets{}, fmt.Errorf("read presets: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Presets{}, fmt.Errorf("parse presets: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Presets{}, err
	}
	return p, nil
}

// Parse decodes and validates presets YAML
func Parse(raw []byte) (Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Presets{}, fmt.Errorf("parse presets: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Presets{}, err
	}
	return p, nil
}

// Validate checks the seismic defaults parse and sit inside the slider bounds
func (p Presets) Validate() error {
	s := p.Seismic
	if _, err := s.Query(); err != nil {
		return fmt.Errorf("seismic presets: %w", err)
	}
	if s.MagnitudeMin < models.MinMagnitudeFloor || s.MagnitudeMax > models.MinMagnitudeCeiling || s.MagnitudeMin >= s.MagnitudeMax {
		return fmt.Errorf("seismic presets: magnitude bounds %.1f..%.1f outside %.0f..%.0f",
			s.MagnitudeMin, s.MagnitudeMax, models.MinMagnitudeFloor, models.MinMagnitudeCeiling)
	}
	if s.MinMagnitude < s.MagnitudeMin || s.MinMagnitude > s.MagnitudeMax {
		return errors.New("seismic presets: minMagnitude outside slider bounds")
	}
	if s.MagnitudeStep <= 0 {
		return errors.New("seismic presets: magnitudeStep must be positive")
	}
	return nil
}
