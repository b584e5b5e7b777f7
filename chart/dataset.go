package chart

import "encoding/json"

// Dataset is one data series of a chart. Style fields are optional: the empty
// string and nil pointers mean "unset", and only unset fields receive defaults.
type Dataset struct {
	Label string    `json:"label,omitempty"`
	Data  []float64 `json:"data"`

	BorderColor      string   `json:"borderColor,omitempty"`
	BackgroundColor  string   `json:"-"`
	BackgroundColors []string `json:"-"` // one color per value, used by doughnuts

	Fill             *bool    `json:"fill,omitempty"`
	Tension          *float64 `json:"tension,omitempty"`
	PointRadius      *float64 `json:"pointRadius,omitempty"`
	PointHoverRadius *float64 `json:"pointHoverRadius,omitempty"`
	BorderWidth      *int     `json:"borderWidth,omitempty"`
	BorderRadius     *int     `json:"borderRadius,omitempty"`
}

// Bool returns a pointer to b, to set optional Dataset fields.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, to set optional Dataset fields.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i, to set optional Dataset fields.
func Int(i int) *int { return &i }

// MarshalJSON writes the background as a single color or as a list of colors.
func (d Dataset) MarshalJSON() ([]byte, error) {
	type plain Dataset
	out := struct {
		plain
		Background any `json:"backgroundColor,omitempty"`
	}{plain: plain(d)}
	switch {
	case d.BackgroundColors != nil:
		out.Background = d.BackgroundColors
	case d.BackgroundColor != "":
		out.Background = d.BackgroundColor
	}
	return json.Marshal(out)
}

// merge returns explicit where every unset field is taken from defaults.
// Label and Data always come from explicit.
func merge(explicit, defaults Dataset) Dataset {
	res := explicit
	if res.BorderColor == "" {
		res.BorderColor = defaults.BorderColor
	}
	if res.BackgroundColor == "" && res.BackgroundColors == nil {
		res.BackgroundColor = defaults.BackgroundColor
		res.BackgroundColors = defaults.BackgroundColors
	}
	res.Fill = or(res.Fill, defaults.Fill)
	res.Tension = or(res.Tension, defaults.Tension)
	res.PointRadius = or(res.PointRadius, defaults.PointRadius)
	res.PointHoverRadius = or(res.PointHoverRadius, defaults.PointHoverRadius)
	res.BorderWidth = or(res.BorderWidth, defaults.BorderWidth)
	res.BorderRadius = or(res.BorderRadius, defaults.BorderRadius)
	return res
}

func or[T any](v, def *T) *T {
	if v != nil {
		return v
	}
	return def
}
