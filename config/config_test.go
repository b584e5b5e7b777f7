package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Defaults(t *testing.T) {
	l := &Loader{Log: zerolog.Nop(), lookup: env(nil)}
	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_FileAndEnv(t *testing.T) {
	path := writeFile(t, "cashflow.yaml", `
data_dir: /var/cashflow
sources:
  - path: monzo.csv
  - path: wallet.xlsx
    password: from-file
rates:
  EUR: 1.17
categories:
  - name: groceries
    keywords: [tesco, sainsbury]
server:
  addr: ":8080"
`)
	l := &Loader{Path: path, Log: zerolog.Nop(), lookup: env(map[string]string{
		EnvDataDir:       "/tmp/override",
		EnvExcelPassword: "secret",
		EnvOutputDir:     "",
	})}
	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.DataDir != "/tmp/override" {
		t.Errorf("DataDir = %q, env should win", got.DataDir)
	}
	if got.OutputDir != "output" {
		t.Errorf("OutputDir = %q, empty env should keep the default", got.OutputDir)
	}
	if got.Server.Addr != ":8080" || got.Server.MaxUpload != 16<<20 {
		t.Errorf("Server = %+v", got.Server)
	}
	if got.Rates["KRW"] != 1750 || got.Rates["EUR"] != 1.17 {
		t.Errorf("Rates = %v", got.Rates)
	}
	if got.PasswordFor(got.Sources[0]) != "secret" || got.PasswordFor(got.Sources[1]) != "from-file" {
		t.Errorf("passwords = %q %q", got.PasswordFor(got.Sources[0]), got.PasswordFor(got.Sources[1]))
	}
	if name, ok := got.Categorizer().Match("TESCO EXPRESS"); !ok || name != "groceries" {
		t.Errorf("Categorizer().Match() = %q %v", name, ok)
	}
}

func TestLoader_UnknownField(t *testing.T) {
	path := writeFile(t, "cashflow.yaml", "data_dri: typo\n")
	l := &Loader{Path: path, Log: zerolog.Nop(), lookup: env(nil)}
	if _, err := l.Load(); err == nil {
		t.Error("Load() error = nil, want unknown field error")
	}
}

func TestLoader_DotEnv(t *testing.T) {
	envFile := writeFile(t, ".env", "CASHFLOW_TEST_ONLY=1\n")
	t.Setenv("CASHFLOW_TEST_ONLY", "")
	os.Unsetenv("CASHFLOW_TEST_ONLY")
	l := &Loader{EnvFile: envFile, Log: zerolog.Nop(), lookup: env(nil)}
	if _, err := l.Load(); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("CASHFLOW_TEST_ONLY"); got != "1" {
		t.Errorf("CASHFLOW_TEST_ONLY = %q, want 1", got)
	}

	l.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	if _, err := l.Load(); err != nil {
		t.Errorf("Load() with missing env file error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Currency = ""
	cfg.Rates["KRW"] = 0
	cfg.Rates["EUR"] = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	for _, want := range []string{"currency", "KRW", "EUR"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %s", err, want)
		}
	}
}

func TestValidate_Currency(t *testing.T) {
	tests := []struct {
		currency string
		wantErr  bool
	}{
		{"GBP", false},
		{"EUR", true},
		{"gbp", true},
		{" ", true},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Currency = tt.currency
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate() with currency %q error = %v, wantErr %v", tt.currency, err, tt.wantErr)
		}
	}

	path := writeFile(t, "cashflow.yaml", "currency: EUR\n")
	l := &Loader{Path: path, Log: zerolog.Nop(), lookup: env(nil)}
	if _, err := l.Load(); err == nil || !strings.Contains(err.Error(), "currency must be GBP") {
		t.Errorf("Load() error = %v, want the currency rejected", err)
	}
}

func TestExchangeRates(t *testing.T) {
	r := Default().ExchangeRates()
	if r.Base() != "GBP" {
		t.Errorf("Base() = %q", r.Base())
	}
	if got, ok := r.Get("KRW"); !ok || got.IntPart() != 1750 {
		t.Errorf("Get(KRW) = %v %v", got, ok)
	}
}
