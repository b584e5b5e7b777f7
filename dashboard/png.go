package dashboard

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/cashflow/chart"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// PNGCharts are the charts exported as images, in export order.
var PNGCharts = []string{MonthlySpendingIncome, CashFlowTrend, CategoryBreakdown, QuarterlyComparison, TopMerchants}

// WritePNG renders the chart called name as a png image.
func (d *Dashboard) WritePNG(buf *bytes.Buffer, name string) error {
	c, err := d.Chart(name)
	if err != nil {
		return err
	}
	r := chart.PNG{Title: Title(name), Theme: d.Theme}
	if name == CategoryBreakdown {
		r.Width, r.Height = 900, 900
	}
	return r.Render(buf, c)
}

// SavePNG writes the exported charts as "<name>.png" in dir and returns the
// written paths. A chart that cannot be drawn is logged and skipped.
func (d *Dashboard) SavePNG(dir string, log zerolog.Logger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create charts directory: %w", err)
	}
	var saved []string
	for _, name := range PNGCharts {
		var buf bytes.Buffer
		if err := d.WritePNG(&buf, name); err != nil {
			log.Warn().Err(err).Str("chart", name).Msg("cannot draw chart")
			continue
		}
		path := filepath.Join(dir, name+".png")
		if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return saved, fmt.Errorf("cannot write chart %q: %w", name, err)
		}
		log.Debug().Str("path", path).Msg("chart saved")
		saved = append(saved, path)
	}
	return saved, nil
}
