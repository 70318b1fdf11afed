package domain

import (
	"fmt"
	"time"
)

// ValueInputMode tells Sheets how to interpret written cells.
type ValueInputMode string

const (
	// ValueInputRaw stores values literally.
	ValueInputRaw ValueInputMode = "RAW"
	// ValueInputUserEntered parses values as if typed into the sheet.
	ValueInputUserEntered ValueInputMode = "USER_ENTERED"
)

// SourceConfig holds the ERP connection settings.
type SourceConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api_key"`
}

// Secret is the credential sent with every call: the API key when set,
// the password otherwise.
func (s SourceConfig) Secret() string {
	if s.APIKey != "" {
		return s.APIKey
	}
	return s.Password
}

func (s SourceConfig) String() string {
	return fmt.Sprintf("%s@%s/%s", s.Username, s.URL, s.Database)
}

type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
}

// FilterConfig holds the fixed conditions shared by both pipelines.
type FilterConfig struct {
	NextOperation string  `mapstructure:"next_operation"`
	CompanyIDs    []int64 `mapstructure:"company_ids"`
}

type PipelineConfig struct {
	SheetName  string         `mapstructure:"sheet_name"`
	StartRow   int            `mapstructure:"start_row"`
	ValueInput ValueInputMode `mapstructure:"value_input"`
	Header     bool           `mapstructure:"header"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	DryRun bool   `mapstructure:"dry_run"`
}

// Config is built once at startup and handed to every component.
type Config struct {
	Source    SourceConfig   `mapstructure:"source"`
	Sheets    SheetsConfig   `mapstructure:"sheets"`
	Filter    FilterConfig   `mapstructure:"filter"`
	Pack      PipelineConfig `mapstructure:"pack"`
	Stock     PipelineConfig `mapstructure:"stock"`
	Export    ExportConfig   `mapstructure:"export"`
	DateShift time.Duration  `mapstructure:"date_shift"`
}
