package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNG renders charts as png images with go-chart.
type PNG struct {
	Width, Height int // defaults to 1200x600
	Title         string
	Theme         Theme
}

func (p PNG) size() (int, int) {
	w, h := p.Width, p.Height
	if w == 0 {
		w = 1200
	}
	if h == 0 {
		h = 600
	}
	return w, h
}

func (p PNG) Render(w io.Writer, c *Chart) error {
	switch c.Type {
	case Line:
		return p.line(w, c)
	case Bar:
		return p.bar(w, c)
	case Doughnut:
		return p.doughnut(w, c)
	default:
		return fmt.Errorf("unsupported chart type %q", c.Type)
	}
}

// valueFormatter formats axis ticks as currency.
func (p PNG) valueFormatter(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	s, err := p.Theme.Format(&f)
	if err != nil {
		return ""
	}
	return s
}

func (p PNG) textStyle() gochart.Style {
	return gochart.Style{FontColor: parseColor(p.Theme.TextColor)}
}

func (p PNG) line(w io.Writer, c *Chart) error {
	width, height := p.size()
	ticks := make([]gochart.Tick, len(c.Data.Labels))
	xs := make([]float64, len(c.Data.Labels))
	for i, l := range c.Data.Labels {
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
		xs[i] = float64(i)
	}
	graph := gochart.Chart{
		Title:      p.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      gochart.XAxis{Ticks: ticks, Style: p.textStyle()},
		YAxis: gochart.YAxis{
			Style:          p.textStyle(),
			ValueFormatter: p.valueFormatter,
			GridMajorStyle: gochart.Style{StrokeColor: parseColor(p.Theme.GridColor), StrokeWidth: 1},
		},
	}
	for _, ds := range c.Data.Datasets {
		style := gochart.Style{
			StrokeColor: parseColor(ds.BorderColor),
			StrokeWidth: 2,
			DotColor:    parseColor(ds.BorderColor),
			DotWidth:    deref(ds.PointRadius, 0),
		}
		if deref(ds.Fill, false) {
			style.FillColor = parseColor(ds.BackgroundColor)
		}
		n := min(len(xs), len(ds.Data))
		graph.Series = append(graph.Series, gochart.ContinuousSeries{
			Name:    ds.Label,
			Style:   style,
			XValues: xs[:n],
			YValues: ds.Data[:n],
		})
	}
	graph.Elements = []gochart.Renderable{gochart.LegendThin(&graph)}
	return graph.Render(gochart.PNG, w)
}

// bar draws grouped bars: go-chart bar charts have a single series, so the
// datasets are interleaved and told apart by color.
func (p PNG) bar(w io.Writer, c *Chart) error {
	width, height := p.size()
	graph := gochart.BarChart{
		Title:        p.Title,
		Width:        width,
		Height:       height,
		Background:   gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:        p.textStyle(),
		YAxis:        gochart.YAxis{Style: p.textStyle(), ValueFormatter: p.valueFormatter},
		BarSpacing:   8,
		UseBaseValue: true,
		BaseValue:    0,
	}
	for i, label := range c.Data.Labels {
		for j, ds := range c.Data.Datasets {
			if i >= len(ds.Data) {
				continue
			}
			v := gochart.Value{
				Value: ds.Data[i],
				Style: gochart.Style{
					FillColor:   parseColor(ds.BackgroundColor),
					StrokeColor: parseColor(ds.BorderColor),
					StrokeWidth: float64(deref(ds.BorderWidth, 0)),
				},
			}
			if j == 0 {
				v.Label = label
			}
			graph.Bars = append(graph.Bars, v)
		}
	}
	if n := len(graph.Bars); n > 0 {
		graph.BarWidth = max(4, (width-160)/n-graph.BarSpacing)
	}
	return graph.Render(gochart.PNG, w)
}

func (p PNG) doughnut(w io.Writer, c *Chart) error {
	width, height := p.size()
	graph := gochart.DonutChart{
		Title:  p.Title,
		Width:  width,
		Height: height,
	}
	for _, ds := range c.Data.Datasets {
		for i, v := range ds.Data {
			label := ""
			if i < len(c.Data.Labels) {
				label = c.Data.Labels[i]
			}
			color := ds.BackgroundColor
			if i < len(ds.BackgroundColors) {
				color = ds.BackgroundColors[i]
			}
			graph.Values = append(graph.Values, gochart.Value{
				Label: label,
				Value: v,
				Style: gochart.Style{FillColor: parseColor(color)},
			})
		}
	}
	return graph.Render(gochart.PNG, w)
}

func deref[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// parseColor reads "#rgb", "#rrggbb", "#rrggbbaa" and "rgba(r, g, b, a)" colors.
// Unknown colors are transparent.
func parseColor(s string) drawing.Color {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "rgba("); ok {
		var r, g, b uint8
		var a float64
		if _, err := fmt.Sscanf(strings.TrimSuffix(rest, ")"), "%d, %d, %d, %g", &r, &g, &b, &a); err != nil {
			return drawing.ColorTransparent
		}
		return drawing.Color{R: r, G: g, B: b, A: uint8(a * 255)}
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 6:
		return drawing.ColorFromHex(hex)
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return drawing.ColorTransparent
		}
		return drawing.ColorFromHex(hex[:6]).WithAlpha(uint8(a))
	default:
		return drawing.ColorTransparent
	}
}
