package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"inlinable/internal/query"
)

// StatsTable renders per-kind request counters. Kinds that were never
// asked for are omitted; the last row holds the totals.
func StatsTable(c *query.Counters) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("request", "evaluated", "cache hits").
		StyleFunc(func(row, _ int) lipgloss.Style {
			// строка 0: заголовок
			if row == 0 {
				return header
			}
			return cell
		})
	for _, k := range query.Kinds() {
		ev, hits := c.Evaluated(k), c.Hits(k)
		if ev == 0 && hits == 0 {
			continue
		}
		t.Row(k.String(), strconv.Itoa(ev), strconv.Itoa(hits))
	}
	ev, hits := c.Total()
	t.Row("total", strconv.Itoa(ev), strconv.Itoa(hits))
	return t.Render()
}
