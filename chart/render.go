package chart

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
)

// ErrNoTarget is returned when a chart is drawn without a target.
var ErrNoTarget = errors.New("chart has no target")

// Renderer draws charts. Drawing is delegated to a charting library: Chart.js
// in the browser or go-chart on the server.
type Renderer interface {
	Render(w io.Writer, c *Chart) error
}

// Script is the client side code resolving named callbacks. Pages embedding
// HTML charts must load Chart.js and then this script.
//
//go:embed cashflow.js
var Script string

var htmlChart = template.Must(template.New("chart").Parse(
	`<div class="chart-container"><canvas id="{{.Target}}"></canvas></div>
<script>cashflowChart({{.Target}}, {{.Config}}, {{.Currency}});</script>
`))

// HTML renders charts as a canvas and the script drawing it with Chart.js.
type HTML struct {
	Currency string // defaults to GBP
}

func (h HTML) Render(w io.Writer, c *Chart) error {
	if c.Target == "" {
		return ErrNoTarget
	}
	cfg, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot encode chart %q: %w", c.Target, err)
	}
	cur := h.Currency
	if cur == "" {
		cur = "GBP"
	}
	return htmlChart.Execute(w, struct {
		Target   string
		Config   template.JS
		Currency string
	}{c.Target, template.JS(cfg), cur})
}
