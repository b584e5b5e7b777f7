package chart

// Theme is the style shared by all charts. It is a plain value: factories
// read it and never modify it.
type Theme struct {
	Palette  Palette
	Currency string // used to format tooltips and axis ticks

	TextColor         string
	TooltipBackground string
	TooltipBorder     string
	GridColor         string

	LegendPadding      int
	TooltipPadding     int
	TooltipBorderWidth int

	LineFillAlpha    string // appended to the border color to get the line fill
	BarFillAlpha     string // appended to the border color to get the bar fill
	Tension          float64
	PointRadius      float64
	PointHoverRadius float64
	BarBorderWidth   int
	BarBorderRadius  int
}

// DefaultTheme returns the dashboard theme.
func DefaultTheme() Theme {
	return Theme{
		Palette:            append(Palette(nil), DefaultPalette...),
		Currency:           "GBP",
		TextColor:          "#6b7280",
		TooltipBackground:  "#1f2937",
		TooltipBorder:      "#374151",
		GridColor:          "rgba(0, 0, 0, 0.05)",
		LegendPadding:      20,
		TooltipPadding:     12,
		TooltipBorderWidth: 1,
		LineFillAlpha:      "20",
		BarFillAlpha:       "80",
		Tension:            0.4,
		PointRadius:        4,
		PointHoverRadius:   6,
		BarBorderWidth:     1,
		BarBorderRadius:    4,
	}
}

// Format formats a value in the theme's currency.
func (t Theme) Format(v *float64) (string, error) {
	cur := t.Currency
	if cur == "" {
		cur = "GBP"
	}
	return formatMoney(v, cur)
}

// TooltipLabel returns the text of a tooltip: "<label>: <value>", or only the
// value when the dataset has no label.
func (t Theme) TooltipLabel(label string, raw *float64) (string, error) {
	v, err := t.Format(raw)
	if err != nil {
		return "", err
	}
	if label == "" {
		return v, nil
	}
	return label + ": " + v, nil
}

// options returns the options shared by every chart type.
func (t Theme) options() Options {
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{
				Position: "top",
				Labels: LegendLabels{
					UsePointStyle: true,
					Padding:       t.LegendPadding,
					Color:         t.TextColor,
				},
			},
			Tooltip: Tooltip{
				BackgroundColor: t.TooltipBackground,
				BorderColor:     t.TooltipBorder,
				BorderWidth:     t.TooltipBorderWidth,
				Padding:         t.TooltipPadding,
				Callbacks:       Callbacks{Label: CurrencyCallback},
			},
		},
	}
}

// scale returns the shared axis style.
func (t Theme) scale() *Scale {
	return &Scale{
		Grid:  Grid{Color: t.GridColor},
		Ticks: Ticks{Color: t.TextColor},
	}
}
