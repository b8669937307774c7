package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/roster/internal/record"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	bannerHeight  = 3
	footerHeight  = 3
	listShare     = 20
)

// Frame is everything the renderer needs besides the records themselves.
type Frame struct {
	Width, Height int
	View          View
	Selection     Selection
	Editing       bool
	Status        string
	StatusIsError bool
}

// Render draws the three-region layout: menu tabs, content, footer. It has
// no side effects.
func Render[R record.Record](kind record.Kind[R], th Theme, f Frame, records []R) string {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	// one blank row above and below, two columns either side
	innerW := max(w-4, 20)
	middleH := max(h-2-bannerHeight-footerHeight, 3)

	banner := panel(th, innerW, bannerHeight, renderTabs(kind, th, f.View))

	var content string
	switch f.View {
	case ViewData:
		content = renderData(kind, th, f, records, innerW, middleH)
	default:
		content = renderHome(kind, th, innerW, middleH)
	}

	footer := panel(th, innerW, footerHeight, renderFooter(kind, th, f, innerW-2))

	ui := lipgloss.JoinVertical(lipgloss.Left, banner, content, footer)
	return lipgloss.NewStyle().Padding(1, 2).Render(ui)
}

func renderTabs[R record.Record](kind record.Kind[R], th Theme, active View) string {
	labels := kind.MenuLabels()
	tabs := make([]string, 0, len(labels))
	for i, label := range labels {
		if label == "" {
			continue
		}
		first, rest := splitFirst(label)
		restStyle := th.Tab
		if i == int(active) {
			restStyle = th.ActiveTab
		}
		tabs = append(tabs, th.Mnemonic.Render(first)+restStyle.Render(rest))
	}
	return strings.Join(tabs, th.Tab.Render(" | "))
}

func renderHome[R record.Record](kind record.Kind[R], th Theme, w, h int) string {
	lines := []string{
		th.Title.Render("Home"),
		"",
		"Welcome",
		"",
		"to",
		"",
		th.AppName.Render(kind.AppName()),
		"",
	}
	lines = append(lines, kind.HelpText()...)
	body := lipgloss.NewStyle().Width(w - 2).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return panel(th, w, h, body)
}

func renderData[R record.Record](kind record.Kind[R], th Theme, f Frame, records []R, w, h int) string {
	listW := max(w*listShare/100, 12)
	detailW := w - listW

	if len(records) == 0 || !f.Selection.Valid(len(records)) {
		msg := fmt.Sprintf("No %s yet. Press '%c' to add one.", strings.ToLower(kind.Title()), kind.Keys().Add)
		left := panel(th, listW, h, th.Title.Render(kind.Title())+"\n"+th.Hint.Render("(empty)"))
		right := panel(th, detailW, h, th.Title.Render("Detail")+"\n\n"+th.Hint.Render(msg))
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	left := panel(th, listW, h, renderList(kind, th, f.Selection.Index(), records, listW-2, h-2))
	right := panel(th, detailW, h, renderDetail(th, records[f.Selection.Index()], detailW-2, h-2))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderList[R record.Record](kind record.Kind[R], th Theme, selected int, records []R, w, h int) string {
	visible := max(h-1, 1)
	offset := 0
	if selected >= visible {
		offset = selected - visible + 1
	}
	end := min(offset+visible, len(records))

	lines := []string{th.Title.Render(kind.Title())}
	cell := lipgloss.NewStyle().Width(w).MaxWidth(w)
	for i := offset; i < end; i++ {
		name := records[i].DisplayName()
		if i == selected {
			lines = append(lines, th.Selected.Inherit(cell).Render(name))
			continue
		}
		lines = append(lines, cell.Render(name))
	}
	return strings.Join(lines, "\n")
}

func renderDetail(th Theme, rec record.Record, w, h int) string {
	cells := rec.Row()
	avail := max(w-2*len(cells), len(cells))
	cols := make([]table.Column, len(cells))
	row := make(table.Row, len(cells))
	for i, c := range cells {
		cols[i] = table.Column{Title: c.Label, Width: max(avail*c.Width/100, 1)}
		row[i] = c.Value
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(th.Label.GetForeground())
	styles.Selected = th.Value

	t := table.New(
		table.WithColumns(cols),
		table.WithRows([]table.Row{row}),
		table.WithHeight(max(h-1, 2)),
		table.WithStyles(styles),
	)
	return th.Title.Render("Detail") + "\n" + t.View()
}

func renderFooter[R record.Record](kind record.Kind[R], th Theme, f Frame, w int) string {
	var text string
	switch {
	case f.Editing:
		text = th.Hint.Render(fmt.Sprintf("Renaming %s: letters and digits, Backspace to erase, any other key to finish", kind.Name()))
	case f.Status != "" && f.StatusIsError:
		text = th.Error.Render(f.Status)
	case f.Status != "":
		text = th.Success.Render(f.Status)
	default:
		text = th.Footer.Render(kind.AppName() + " 2020 - all rights reserved")
	}
	return lipgloss.NewStyle().Width(w).MaxWidth(w).Align(lipgloss.Center).Render(text)
}

// panel draws a bordered box of exactly w x h cells, clipping content that
// does not fit.
func panel(th Theme, w, h int, content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h-2 {
		lines = lines[:max(h-2, 0)]
	}
	return th.Border.
		Width(w - 2).
		Height(h - 2).
		MaxWidth(w).
		MaxHeight(h).
		Render(strings.Join(lines, "\n"))
}

func splitFirst(s string) (string, string) {
	for i := range s {
		if i > 0 {
			return s[:i], s[i:]
		}
	}
	return s, ""
}
