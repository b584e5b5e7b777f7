package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration.
const (
	EnvDataDir       = "CASHFLOW_DATA_DIR"
	EnvOutputDir     = "CASHFLOW_OUTPUT_DIR"
	EnvAddr          = "CASHFLOW_ADDR"
	EnvExcelPassword = "KOREAN_BANK_PASSWORD"
)

// Loader loads the configuration with precedence: environment > file > defaults.
type Loader struct {
	Path    string // yaml file, optional
	EnvFile string // dotenv file, a missing file is ignored
	Log     zerolog.Logger

	lookup func(string) (string, bool)
}

// NewLoader returns a loader for the yaml file at path (may be empty) and ".env".
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{Path: path, EnvFile: ".env", Log: log, lookup: os.LookupEnv}
}

// Load returns the validated configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Default()
	if l.Path != "" {
		if err := l.loadFile(&cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if l.EnvFile != "" {
		err := godotenv.Load(l.EnvFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("load %s: %w", l.EnvFile, err)
		default:
			l.Log.Debug().Str("file", l.EnvFile).Msg("environment file loaded")
		}
	}
	l.mergeEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFile decodes the yaml file over cfg. Unknown fields are rejected.
func (l *Loader) loadFile(cfg *Config) error {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("%s: %w", l.Path, err)
	}
	l.Log.Debug().Str("file", l.Path).Msg("config file loaded")
	return nil
}

func (l *Loader) mergeEnv(cfg *Config) {
	cfg.DataDir = l.envString(EnvDataDir, cfg.DataDir)
	cfg.OutputDir = l.envString(EnvOutputDir, cfg.OutputDir)
	cfg.Server.Addr = l.envString(EnvAddr, cfg.Server.Addr)
	cfg.ExcelPassword = l.envString(EnvExcelPassword, cfg.ExcelPassword)
}

// envString returns the value of key, or def when it is unset or empty.
func (l *Loader) envString(key, def string) string {
	lookup := l.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(key)
	if !ok || v == "" {
		return def
	}
	if strings.Contains(strings.ToLower(key), "password") {
		l.Log.Debug().Str("key", key).Bool("sensitive", true).Msg("using environment variable")
	} else {
		l.Log.Debug().Str("key", key).Str("value", v).Msg("using environment variable")
	}
	return v
}
