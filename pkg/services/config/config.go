package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/de-tools/fg-sync/pkg/models/domain"
	"github.com/de-tools/fg-sync/pkg/services/normalize"
)

var ErrMissingSetting = errors.New("missing required setting")

// Options control where configuration is read from.
type Options struct {
	// ConfigFile is an optional yaml/toml/json file with pipeline settings.
	ConfigFile string

	// EnvFiles are dotenv files loaded into the process environment. Missing
	// files are ignored.
	EnvFiles []string

	// ProfilesFile and Profile select an ini connection profile that fills
	// any source setting left unset by the environment.
	ProfilesFile string
	Profile      string

	// ExportDir and DryRun override the export settings from flags. The
	// spreadsheet settings are only required when DryRun ends up false.
	ExportDir string
	DryRun    bool
}

var envBindings = map[string]string{
	"source.url":              "ODOO_URL",
	"source.database":         "ODOO_DB",
	"source.username":         "ODOO_USERNAME",
	"source.password":         "ODOO_PASSWORD",
	"source.api_key":          "ODOO_API_KEY",
	"sheets.credentials_file": "GSHEETS_CREDENTIALS",
	"sheets.spreadsheet_id":   "GSHEETS_SPREADSHEET_ID",
	"date_shift":              "FGSYNC_DATE_SHIFT",
	"export.dir":              "FGSYNC_EXPORT_DIR",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sheets.credentials_file", "Credentials.json")
	v.SetDefault("date_shift", normalize.DefaultDateShift)
	v.SetDefault("filter.next_operation", "FG Packing")
	v.SetDefault("filter.company_ids", []int64{1, 3})

	v.SetDefault("pack.sheet_name", "Pack")
	v.SetDefault("pack.start_row", 33557)
	v.SetDefault("pack.value_input", string(domain.ValueInputUserEntered))
	v.SetDefault("pack.header", false)

	v.SetDefault("stock.sheet_name", "raw")
	v.SetDefault("stock.start_row", 1)
	v.SetDefault("stock.value_input", string(domain.ValueInputRaw))
	v.SetDefault("stock.header", true)
}

// Load builds the run configuration from dotenv files, the environment, an
// optional config file and an optional connection profile, in that order of
// precedence for the source settings: environment, then profile.
func Load(ctx context.Context, opts Options) (*domain.Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if opts.ProfilesFile != "" {
		registry, err := NewProfileRegistry(opts.ProfilesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		profile, err := registry.GetSource(ctx, opts.Profile)
		if err != nil {
			return nil, err
		}
		cfg.Source = mergeSource(cfg.Source, *profile)
	}

	if opts.ExportDir != "" {
		cfg.Export.Dir = opts.ExportDir
	}
	if opts.DryRun {
		cfg.Export.DryRun = true
	}

	if err := Validate(&cfg, !cfg.Export.DryRun); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting needed for a run is present.
func Validate(cfg *domain.Config, requireSheets bool) error {
	var missing []string
	check := func(value, name string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check(cfg.Source.URL, "ODOO_URL")
	check(cfg.Source.Database, "ODOO_DB")
	check(cfg.Source.Username, "ODOO_USERNAME")
	check(cfg.Source.Secret(), "ODOO_PASSWORD or ODOO_API_KEY")
	if requireSheets {
		check(cfg.Sheets.CredentialsFile, "GSHEETS_CREDENTIALS")
		check(cfg.Sheets.SpreadsheetID, "GSHEETS_SPREADSHEET_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSetting, strings.Join(missing, ", "))
	}

	for name, p := range map[string]domain.PipelineConfig{"pack": cfg.Pack, "stock": cfg.Stock} {
		if p.StartRow < 1 {
			return fmt.Errorf("%s.start_row must be at least 1, got %d", name, p.StartRow)
		}
		if p.ValueInput != domain.ValueInputRaw && p.ValueInput != domain.ValueInputUserEntered {
			return fmt.Errorf("%s.value_input must be RAW or USER_ENTERED, got %q", name, p.ValueInput)
		}
	}
	return nil
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func mergeSource(base, profile domain.SourceConfig) domain.SourceConfig {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&base.URL, profile.URL)
	fill(&base.Database, profile.Database)
	fill(&base.Username, profile.Username)
	fill(&base.Password, profile.Password)
	fill(&base.APIKey, profile.APIKey)
	return base
}
