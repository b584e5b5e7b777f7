package chart

// Type is a Chart.js chart type.
type Type string

const (
	Line     Type = "line"
	Bar      Type = "bar"
	Doughnut Type = "doughnut"
)

// CurrencyCallback names the client side function formatting values as
// currency. Functions cannot travel in json, so callbacks are referenced by name.
const CurrencyCallback = "currency"

// Chart is a chart ready to be drawn: the id of its target (a canvas in a web
// page) and its Chart.js configuration.
type Chart struct {
	Target  string  `json:"-"`
	Type    Type    `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds the labels and the datasets of a chart.
type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Options is the subset of Chart.js options used by the dashboard.
type Options struct {
	Responsive          bool              `json:"responsive"`
	MaintainAspectRatio bool              `json:"maintainAspectRatio"`
	Plugins             Plugins           `json:"plugins"`
	Scales              map[string]*Scale `json:"scales,omitempty"`
}

type Plugins struct {
	Legend  Legend  `json:"legend"`
	Tooltip Tooltip `json:"tooltip"`
}

type Legend struct {
	Position string       `json:"position,omitempty"`
	Labels   LegendLabels `json:"labels"`
}

type LegendLabels struct {
	UsePointStyle bool   `json:"usePointStyle"`
	Padding       int    `json:"padding"`
	Color         string `json:"color,omitempty"`
}

type Tooltip struct {
	BackgroundColor string    `json:"backgroundColor"`
	BorderColor     string    `json:"borderColor"`
	BorderWidth     int       `json:"borderWidth"`
	Padding         int       `json:"padding"`
	Callbacks       Callbacks `json:"callbacks"`
}

type Callbacks struct {
	Label string `json:"label,omitempty"`
}

type Scale struct {
	BeginAtZero bool  `json:"beginAtZero,omitempty"`
	Grid        Grid  `json:"grid"`
	Ticks       Ticks `json:"ticks"`
}

type Grid struct {
	Display *bool  `json:"display,omitempty"`
	Color   string `json:"color,omitempty"`
}

type Ticks struct {
	Color    string `json:"color,omitempty"`
	Callback string `json:"callback,omitempty"`
}
