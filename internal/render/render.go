// Package render draws candidate cards and charts on a terminal.
package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/spigell/hr-screener/internal/charts"
	"github.com/spigell/hr-screener/internal/screening"
)

const barWidth = 20

var tierMarks = map[screening.ScoreTier]string{
	screening.TierHigh:   "●●●",
	screening.TierMedium: "●●○",
	screening.TierLow:    "●○○",
}

// Table renders cards and charts as text tables.
type Table struct {
	w io.Writer
}

func NewTable(w io.Writer) *Table {
	return &Table{w: w}
}

func (t *Table) Render(_ context.Context, cards []screening.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(t.w, "no candidates")
		return err
	}

	table := t.newWriter([]string{"#", "Candidate", "Role", "Skills", "Match", "Tier"})
	for i, c := range cards {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strings.TrimSpace(c.Avatar + " " + c.Name),
			roleLine(c),
			SkillsLine(c),
			fmt.Sprintf("%d%%", c.Score),
			tierMarks[c.Tier] + " " + string(c.Tier),
		})
	}
	table.Render()

	return nil
}

func (t *Table) RenderChart(_ context.Context, chart charts.Chart) error {
	if len(chart.Series) == 0 {
		return fmt.Errorf("chart %q has no series", chart.Title)
	}

	if _, err := fmt.Fprintf(t.w, "%s\n", chart.Title); err != nil {
		return err
	}

	header := []string{"Category"}
	for _, s := range chart.Series {
		header = append(header, s.Name)
	}
	if chart.Type == charts.Pie {
		header = append(header, "%")
	}
	header = append(header, "")

	table := t.newWriter(header)

	var total, peak float64
	for _, v := range chart.Series[0].Values {
		total += v
		if v > peak {
			peak = v
		}
	}

	for i, category := range chart.Categories {
		row := []string{category}
		for _, s := range chart.Series {
			row = append(row, strconv.FormatFloat(s.Values[i], 'f', -1, 64))
		}

		first := chart.Series[0].Values[i]
		if chart.Type == charts.Pie {
			share := 0.0
			if total > 0 {
				share = first / total * 100
			}
			row = append(row, fmt.Sprintf("%.1f", share))
		}
		row = append(row, Bar(first, peak, barWidth))

		table.Append(row)
	}
	table.Render()

	return nil
}

func (t *Table) newWriter(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(t.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func roleLine(c screening.Card) string {
	switch {
	case c.Role != "" && c.Experience != "":
		return c.Role + " • " + c.Experience
	case c.Role != "":
		return c.Role
	default:
		return c.Experience
	}
}

// SkillsLine joins the visible skills of a card and appends the overflow
// count, e.g. "Go, SQL, Docker +2 more".
func SkillsLine(c screening.Card) string {
	line := strings.Join(c.Skills, ", ")
	if c.Overflow > 0 {
		line += fmt.Sprintf(" +%d more", c.Overflow)
	}
	return line
}

// Bar draws value as a horizontal bar scaled so that peak fills width.
func Bar(value, peak float64, width int) string {
	if peak <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := int(value / peak * float64(width))
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return strings.Repeat("█", n)
}

// JSON writes cards and charts as indented JSON documents.
type JSON struct {
	w io.Writer
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) Render(_ context.Context, cards []screening.Card) error {
	return j.encode(map[string]any{"candidates": cards})
}

func (j *JSON) RenderChart(_ context.Context, chart charts.Chart) error {
	return j.encode(chart)
}

func (j *JSON) encode(v any) error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Renderer draws both candidate cards and charts.
type Renderer interface {
	screening.Renderer
	charts.Renderer
}

// New returns the renderer for an output format name ("table" or "json").
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return NewTable(w), nil
	case "json":
		return NewJSON(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
