package refdata

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RefData is the versioned, immutable reference-data bundle handed to each
// pipeline stage. A stage only ever sees the snapshot it was given, so a
// run is reproducible from (input, refdata version) alone.
type RefData struct {
	Version       string            `yaml:"version"`
	Corrections   map[string]string `yaml:"material_corrections"`
	ChannelMap    map[string]string `yaml:"channel_map"`
	RegionMap     map[string]string `yaml:"region_map"`
	CurrencyRates map[string]string `yaml:"currency_rates"`

	rates map[string]decimal.Decimal
}

// Load reads and validates a reference-data file.
func Load(path string) (*RefData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read reference data: %w", err)
	}

	var rd RefData
	if err := yaml.Unmarshal(data, &rd); err != nil {
		return nil, fmt.Errorf("failed to parse reference data: %w", err)
	}

	if err := rd.init(); err != nil {
		return nil, err
	}

	return &rd, nil
}

// FromValues builds an in-memory reference-data snapshot without a file.
// Pipeline tests use it to supply synthetic lookup tables.
func FromValues(version string, corrections, channelMap, regionMap, rates map[string]string) (*RefData, error) {
	rd := &RefData{
		Version:       version,
		Corrections:   corrections,
		ChannelMap:    channelMap,
		RegionMap:     regionMap,
		CurrencyRates: rates,
	}
	if err := rd.init(); err != nil {
		return nil, err
	}
	return rd, nil
}

func (rd *RefData) init() error {
	if rd.Version == "" {
		return fmt.Errorf("reference data has no version")
	}

	// Lookup keys are case-normalized once at load: corrections and
	// channel names lower-cased, state and currency codes upper-cased.
	rd.Corrections = lowerKeys(rd.Corrections)
	rd.ChannelMap = lowerKeys(rd.ChannelMap)
	rd.RegionMap = upperKeys(rd.RegionMap)

	rd.rates = make(map[string]decimal.Decimal, len(rd.CurrencyRates))
	for code, raw := range rd.CurrencyRates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid rate for %s: %w", code, err)
		}
		if rate.Sign() <= 0 {
			return fmt.Errorf("rate for %s must be positive, got %s", code, raw)
		}
		rd.rates[strings.ToUpper(code)] = rate
	}

	return nil
}

func lowerKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

func upperKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	return out
}

// Validate reports lookup tables a production run cannot work with. Load
// already rejects structural problems (missing version, bad rates); this
// covers the emptiness checks the check command surfaces before a run.
func (rd *RefData) Validate() error {
	if len(rd.RegionMap) == 0 {
		return fmt.Errorf("region map is empty")
	}
	if len(rd.rates) == 0 {
		return fmt.Errorf("no currency rates defined")
	}
	return nil
}

// CorrectMaterial maps known misspellings to the canonical material name.
// Unknown values pass through unchanged.
func (rd *RefData) CorrectMaterial(material string) string {
	key := strings.ToLower(strings.TrimSpace(material))
	if fixed, ok := rd.Corrections[key]; ok {
		return fixed
	}
	return material
}

// NormalizeChannel maps raw channel names to their conformed values. The
// second return is false for values outside the map, which pass through
// unchanged but get tagged as unknown downstream.
func (rd *RefData) NormalizeChannel(channel string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(channel))
	if mapped, ok := rd.ChannelMap[key]; ok {
		return mapped, true
	}
	return channel, false
}

// RegionFor derives the sales region from a state code.
func (rd *RefData) RegionFor(state string) (string, bool) {
	region, ok := rd.RegionMap[strings.ToUpper(strings.TrimSpace(state))]
	return region, ok
}

// RateToINR returns the conversion rate into the normalized reporting
// currency. A missing rate is the caller's cue to quarantine, never to
// assume 1:1.
func (rd *RefData) RateToINR(currency string) (decimal.Decimal, bool) {
	rate, ok := rd.rates[strings.ToUpper(strings.TrimSpace(currency))]
	return rate, ok
}
