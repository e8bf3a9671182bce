package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/quibraries/quibraries/internal/config"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

const (
	// maxColumns caps how many fields a list table shows.
	maxColumns = 6

	// maxCellWidth truncates long values in table cells.
	maxCellWidth = 48
)

// preferredColumns are shown first, in this order, when present.
var preferredColumns = []string{
	"name", "full_name", "platform", "host_type", "language",
	"latest_release_number", "stars", "rank", "dependents_count", "description",
}

// render writes res in the configured output format.
func (c *CLI) render(w io.Writer, res librariesio.Result) error {
	if c.cfg.Output == config.OutputTable {
		if rec, ok := res.Single(); ok {
			fmt.Fprintln(w, recordTable(rec))
			return nil
		}
		list := res.Records()
		if len(list) == 0 {
			printInfo(w, "No results")
			return nil
		}
		fmt.Fprintln(w, listTable(list))
		return nil
	}
	return writeJSON(w, res)
}

// writeJSON writes v as indented JSON without HTML escaping.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// listTable renders records as rows, one column per selected field.
func listTable(records []librariesio.Record) string {
	cols := listColumns(records)
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = cellText(rec[col])
		}
		rows[i] = row
	}
	return newTable(cols, rows).Render()
}

// recordTable renders one record as field/value rows, sorted by field.
func recordTable(rec librariesio.Record) string {
	keys := slices.Sorted(maps.Keys(rec))
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k, cellText(rec[k])}
	}
	return newTable([]string{"Field", "Value"}, rows).Render()
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// listColumns picks up to maxColumns scalar fields present in records:
// preferred fields first, then the rest alphabetically.
func listColumns(records []librariesio.Record) []string {
	scalar := map[string]bool{}
	for _, rec := range records {
		for k, v := range rec {
			if isScalar(v) {
				scalar[k] = true
			}
		}
	}

	var cols []string
	for _, k := range preferredColumns {
		if scalar[k] {
			cols = append(cols, k)
			delete(scalar, k)
		}
	}
	for _, k := range slices.Sorted(maps.Keys(scalar)) {
		cols = append(cols, k)
	}
	if len(cols) > maxColumns {
		cols = cols[:maxColumns]
	}
	return cols
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, float64, int:
		return true
	}
	return false
}

// cellText formats a JSON value for a table cell. Nested values are
// summarized rather than expanded.
func cellText(v any) string {
	var s string
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		s = v
	case json.Number:
		s = v.String()
	case bool:
		s = strconv.FormatBool(v)
	case []any:
		s = fmt.Sprintf("[%d items]", len(v))
	case map[string]any:
		s = fmt.Sprintf("{%d fields}", len(v))
	default:
		s = fmt.Sprint(v)
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > maxCellWidth {
		s = string(r[:maxCellWidth-1]) + "…"
	}
	return s
}
