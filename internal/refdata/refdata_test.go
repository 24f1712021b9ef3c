package refdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleYAML = `
version: "2024-07"
material_corrections:
  polyestr: polyester
  cottn: cotton
channel_map:
  web: website
  app: mobile app
region_map:
  KA: South
  MH: West
  DL: North
currency_rates:
  INR: "1"
  USD: "83"
  EUR: "90.5"
`

func writeSample(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "refdata.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sample file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rd.Version != "2024-07" {
		t.Errorf("expected version 2024-07, got %q", rd.Version)
	}
}

func TestLoadRejectsMissingVersion(t *testing.T) {
	_, err := Load(writeSample(t, `currency_rates: {USD: "83"}`))
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestLoadRejectsNonPositiveRate(t *testing.T) {
	_, err := Load(writeSample(t, "version: \"1\"\ncurrency_rates:\n  USD: \"-2\"\n"))
	if err == nil {
		t.Fatal("expected error for negative rate")
	}
}

func TestCorrectMaterial(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{"polyestr", "polyester"},
		{" Cottn ", "cotton"},
		{"silk", "silk"},
	}

	for _, tt := range tests {
		if got := rd.CorrectMaterial(tt.in); got != tt.want {
			t.Errorf("CorrectMaterial(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeChannel(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		in     string
		want   string
		mapped bool
	}{
		{"web", "website", true},
		{"APP", "mobile app", true},
		{"retail", "retail", false},
	}

	for _, tt := range tests {
		got, mapped := rd.NormalizeChannel(tt.in)
		if got != tt.want || mapped != tt.mapped {
			t.Errorf("NormalizeChannel(%q) = (%q, %t), want (%q, %t)", tt.in, got, mapped, tt.want, tt.mapped)
		}
	}
}

func TestRateToINR(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rate, ok := rd.RateToINR("usd")
	if !ok {
		t.Fatal("expected USD rate to exist")
	}
	if !rate.Equal(decimal.NewFromInt(83)) {
		t.Errorf("expected USD rate 83, got %s", rate)
	}

	if _, ok := rd.RateToINR("XYZ"); ok {
		t.Error("expected no rate for XYZ")
	}
}

func TestRegionFor(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	region, ok := rd.RegionFor(" ka ")
	if !ok || region != "South" {
		t.Errorf("RegionFor(ka) = (%q, %t), want (South, true)", region, ok)
	}

	if _, ok := rd.RegionFor("ZZ"); ok {
		t.Error("expected no region for ZZ")
	}
}

func TestValidate(t *testing.T) {
	rd, err := Load(writeSample(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := rd.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	empty, err := FromValues("test", nil, nil, nil, map[string]string{"INR": "1"})
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}
	if err := empty.Validate(); err == nil {
		t.Error("expected Validate to reject an empty region map")
	}

	noRates, err := FromValues("test", nil, nil, map[string]string{"KA": "South"}, nil)
	if err != nil {
		t.Fatalf("FromValues failed: %v", err)
	}
	if err := noRates.Validate(); err == nil {
		t.Error("expected Validate to reject empty currency rates")
	}
}
