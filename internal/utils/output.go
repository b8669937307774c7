package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ramanasai/roster/internal/record"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault OutputFormat = "default"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
	FormatQuiet   OutputFormat = "quiet"
)

// Formats lists the accepted --format values.
func Formats() []string {
	return []string{string(FormatDefault), string(FormatTable), string(FormatJSON), string(FormatCSV), string(FormatQuiet)}
}

// ParseFormat validates a --format value. Empty means FormatDefault.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatDefault, nil
	case FormatDefault, FormatTable, FormatJSON, FormatCSV, FormatQuiet:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(Formats(), ", "))
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format OutputFormat
	Width  int
	Color  bool
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format: FormatDefault,
		Width:  width,
		Color:  true,
	}
}

// Item is one record at its position in the stored collection.
type Item struct {
	Index  int
	Record record.Record
}

// Listing is one page of a collection.
type Listing struct {
	Title      string
	Items      []Item
	Pagination *PaginationInfo
}

// NewListing pages records with pagination p. Indices stay the positions in
// the whole collection so they can be passed to rm, rename and age.
func NewListing[R record.Record](title string, records []R, p *PaginationInfo) *Listing {
	l := &Listing{Title: title, Pagination: p}
	start, end := p.Offset, min(p.Offset+p.PerPage, len(records))
	for i := start; i < end; i++ {
		l.Items = append(l.Items, Item{Index: i, Record: records[i]})
	}
	return l
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Index     lipgloss.Style
	Label     lipgloss.Style
	Name      lipgloss.Style
	Header    lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{
		config: config,
		styles: initStyles(config.Color),
	}
}

func initStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			Index:     plain,
			Label:     plain,
			Name:      plain.Bold(true),
			Header:    plain.Bold(true),
		}
	}
	return &Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Meta:      lipgloss.NewStyle().Faint(true),
		Index:     lipgloss.NewStyle().Faint(true),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		Name:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#CBA6F7")),
	}
}

// Render renders the listing according to the configured format
func (r *Renderer) Render(l *Listing) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return r.renderJSON(l)
	case FormatCSV:
		return r.renderCSV(l)
	case FormatTable:
		return r.renderTable(l), nil
	case FormatQuiet:
		return r.renderQuiet(l), nil
	default:
		return r.renderDefault(l), nil
	}
}

func (r *Renderer) separator() string {
	return r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 120)))
}

func (r *Renderer) renderDefault(l *Listing) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(l.Title))
	b.WriteString("  ")
	b.WriteString(r.styles.Meta.Render(l.Pagination.FormatSummary()))
	b.WriteString("\n")
	b.WriteString(r.separator())
	b.WriteString("\n")

	for _, it := range l.Items {
		b.WriteString(r.styles.Index.Render(fmt.Sprintf("[%d]", it.Index)))
		b.WriteString(" ")
		b.WriteString(r.styles.Name.Render(it.Record.DisplayName()))
		b.WriteString("\n")

		var parts []string
		for _, c := range it.Record.Row() {
			if c.Label == "Name" {
				continue
			}
			parts = append(parts, r.styles.Label.Render(strings.ToLower(c.Label)+":")+" "+c.Value)
		}
		if len(parts) > 0 {
			b.WriteString("  ")
			b.WriteString(strings.Join(parts, "  "))
			b.WriteString("\n")
		}
	}

	if nav := l.Pagination.FormatNavigation(); nav != "" {
		b.WriteString(r.separator())
		b.WriteString("\n")
		b.WriteString(r.styles.Meta.Render(nav))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderTable(l *Listing) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Separator)

	headers := []string{"#"}
	if len(l.Items) > 0 {
		for _, c := range l.Items[0].Record.Row() {
			headers = append(headers, c.Label)
		}
	}
	t.Headers(headers...)

	for _, it := range l.Items {
		row := []string{strconv.Itoa(it.Index)}
		for _, c := range it.Record.Row() {
			row = append(row, c.Value)
		}
		t.Row(row...)
	}
	return t.Render() + "\n"
}

// renderJSON emits the records themselves, as they are stored.
func (r *Renderer) renderJSON(l *Listing) (string, error) {
	records := make([]record.Record, len(l.Items))
	for i, it := range l.Items {
		records[i] = it.Record
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func (r *Renderer) renderCSV(l *Listing) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(l.Items) > 0 {
		header := []string{"index"}
		for _, c := range l.Items[0].Record.Row() {
			header = append(header, strings.ReplaceAll(strings.ToLower(c.Label), " ", "_"))
		}
		if err := w.Write(header); err != nil {
			return "", err
		}
	}
	for _, it := range l.Items {
		row := []string{strconv.Itoa(it.Index)}
		for _, c := range it.Record.Row() {
			row = append(row, c.Value)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// renderQuiet renders only the names (for scripting)
func (r *Renderer) renderQuiet(l *Listing) string {
	var b strings.Builder
	for _, it := range l.Items {
		b.WriteString(it.Record.DisplayName())
		b.WriteString("\n")
	}
	return b.String()
}
