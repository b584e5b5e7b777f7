package chart

// Line returns a line chart. For dataset i, unset fields default to the i-th
// palette color, a translucent fill of that color, fill enabled, and the
// theme's tension and point radii.
func (t Theme) Line(target string, labels []string, datasets []Dataset) *Chart {
	c := &Chart{
		Target:  target,
		Type:    Line,
		Data:    Data{Labels: labels, Datasets: make([]Dataset, len(datasets))},
		Options: t.options(),
	}
	for i, ds := range datasets {
		border := ds.BorderColor
		if border == "" {
			border = t.Palette.Color(i)
		}
		c.Data.Datasets[i] = merge(ds, Dataset{
			BorderColor:      border,
			BackgroundColor:  border + t.LineFillAlpha,
			Fill:             Bool(true),
			Tension:          Float(t.Tension),
			PointRadius:      Float(t.PointRadius),
			PointHoverRadius: Float(t.PointHoverRadius),
		})
	}
	c.Options.Scales = map[string]*Scale{"x": t.scale(), "y": t.valueScale()}
	return c
}

// Bar returns a bar chart. Defaults are the ones of Line, with a more opaque
// fill, a thin border and rounded corners. The x axis has no grid.
func (t Theme) Bar(target string, labels []string, datasets []Dataset) *Chart {
	c := &Chart{
		Target:  target,
		Type:    Bar,
		Data:    Data{Labels: labels, Datasets: make([]Dataset, len(datasets))},
		Options: t.options(),
	}
	for i, ds := range datasets {
		border := ds.BorderColor
		if border == "" {
			border = t.Palette.Color(i)
		}
		c.Data.Datasets[i] = merge(ds, Dataset{
			BorderColor:     border,
			BackgroundColor: border + t.BarFillAlpha,
			BorderWidth:     Int(t.BarBorderWidth),
			BorderRadius:    Int(t.BarBorderRadius),
		})
	}
	x := t.scale()
	x.Grid = Grid{Display: Bool(false)}
	c.Options.Scales = map[string]*Scale{"x": x, "y": t.valueScale()}
	return c
}

// Doughnut returns a single dataset doughnut chart. Slices use colors, or the
// palette when colors is empty.
func (t Theme) Doughnut(target string, labels []string, data []float64, colors ...string) *Chart {
	if len(colors) == 0 {
		colors = t.Palette.Colors(len(data))
	}
	c := &Chart{
		Target: target,
		Type:   Doughnut,
		Data: Data{Labels: labels, Datasets: []Dataset{{
			Data:             data,
			BackgroundColors: colors,
			BorderWidth:      Int(0),
		}}},
		Options: t.options(),
	}
	c.Options.Plugins.Legend.Position = "right"
	return c
}

// valueScale is the axis carrying amounts.
func (t Theme) valueScale() *Scale {
	y := t.scale()
	y.BeginAtZero = true
	y.Ticks.Callback = CurrencyCallback
	return y
}
