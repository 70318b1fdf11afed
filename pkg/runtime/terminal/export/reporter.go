package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  24,
		ValueWidth: 60,
	}
}

// Reporter prints run reports as a two column table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.RunReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, value interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
		"lookupState": func(s domain.LookupSummary) string {
			if s.Degraded {
				return fmt.Sprintf("degraded: %v", s.Err)
			}
			return fmt.Sprintf("%d resolved", s.Resolved)
		},
		"errText": func(err error) string {
			if err == nil {
				return "-"
			}
			return err.Error()
		},
	}

	tmpl := `
=== {{.Pipeline}} ===
{{separator}}
{{formatRow "Status" .Status}}
{{if .Period}}{{formatRow "Period" (printf "%s to %s" (.Period.Start.Format "2006-01-02 15:04:05") (.Period.End.Format "2006-01-02 15:04:05"))}}
{{end}}{{formatRow "Fetched" .Fetched}}
{{formatRow "Rows" .Rows}}
{{range .Lookups}}{{formatRow (printf "Lookup %s" .Name) (lookupState .)}}
{{end}}{{formatRow "Publish" .Publish.Status}}
{{if .Publish.Range}}{{formatRow "Range" .Publish.Range}}
{{end}}{{if .Publish.Err}}{{formatRow "Publish error" (errText .Publish.Err)}}
{{end}}{{with .Export}}{{formatRow "Export" .Path}}
{{if .Err}}{{formatRow "Export error" (errText .Err)}}
{{end}}{{end}}{{formatRow "Duration" .Duration}}
{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
