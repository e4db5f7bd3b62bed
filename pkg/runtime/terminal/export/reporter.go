package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/fieldops/pulse/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  46,
		ValueWidth: 24,
	}
}

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

type reportView struct {
	State string
	Rows  []reportRow
}

type reportRow struct {
	Name  string
	Value any
}

// Handle renders a flat report as a two-column table, columns sorted by
// name for stable output.
func (c *Reporter) Handle(state string, rep domain.Report) error {
	view := reportView{State: state, Rows: make([]reportRow, 0, len(rep))}
	for name, value := range rep {
		if f, ok := value.(float64); ok {
			value = fmt.Sprintf("%.2f", f)
		}
		view.Rows = append(view.Rows, reportRow{Name: name, Value: value})
	}
	sort.Slice(view.Rows, func(i, j int) bool { return view.Rows[i].Name < view.Rows[j].Name })

	funcMap := template.FuncMap{
		"formatRow": func(name string, value any) string {
			return fmt.Sprintf("| %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	tmpl := `
Daily report for {{.State}}

{{separator}}
{{formatRow "Column" "Value"}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Value}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, view)
}
