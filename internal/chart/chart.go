// Package chart renders expense breakdowns as in-memory PNG images for
// Discord attachments and PDF embedding.
package chart

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// Pie renders a category-to-amount breakdown as a PNG pie chart. It fails
// when there is nothing to draw.
func Pie(data map[string]float64, title string) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	names := make([]string, 0, len(data))
	var total float64
	for name, amount := range data {
		names = append(names, name)
		total += amount
	}
	sort.Strings(names)
	if total <= 0 {
		return nil, fmt.Errorf("nothing spent, nothing to chart")
	}

	values := make([]chart.Value, 0, len(names))
	for _, name := range names {
		amount := data[name]
		values = append(values, chart.Value{
			Value: amount,
			Label: fmt.Sprintf("%s (%.1f%%)", name, amount/total*100),
		})
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
