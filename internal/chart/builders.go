package chart

import (
	"fmt"

	"github.com/i474232898/weather-dashboard/internal/series"
)

// TemperatureRange configures the daily min/max arearange chart.
func TemperatureRange(r series.Range) (Options, error) {
	if _, err := r.Len(); err != nil {
		return Options{}, err
	}

	return Options{
		Chart: ChartConfig{Type: "arearange", Zooming: Zoom{Type: "x"}},
		Title: Text{Text: str("Temperature Ranges (Min, Max)")},
		XAxis: []Axis{{
			Categories: r.Timestamps,
			Crosshair:  true,
		}},
		YAxis: []Axis{{
			Title: &Text{},
		}},
		Tooltip: &Tooltip{
			ValueSuffix: "℉",
			XDateFormat: "%A, %b %e",
			Shared:      true,
		},
		Legend: &Toggle{Enabled: false},
		Series: []Series{{
			Name: "Temperature Ranges (Min, Max)",
			Data: r.Ranges,
			Color: map[string]any{
				"linearGradient": map[string]int{"x1": 0, "x2": 0, "y1": 0, "y2": 1},
				"stops":          [][2]any{{0, "#fd9b03"}, {1, "#28a5fb"}},
			},
		}},
	}, nil
}

// Meteogram configures the hourly combination chart: humidity columns, a
// temperature spline, a dashed pressure line and wind barbs.
func Meteogram(m series.Meteogram) (Options, error) {
	n, err := m.Len()
	if err != nil {
		return Options{}, err
	}
	if n == 0 {
		return Options{}, fmt.Errorf("meteogram needs at least one hour")
	}

	// Wind barbs are the one series Highcharts wants as [x, speed, direction].
	barbs := make([][3]float64, n)
	for i := range barbs {
		barbs[i] = [3]float64{float64(m.Timestamps[i]), m.WindSpeed[i], m.WindDirection[i]}
	}

	return Options{
		Chart: ChartConfig{Type: "spline", MarginBottom: 30, Zooming: Zoom{Type: "x"}},
		Title: Text{Text: str("Hourly Weather (For Next 5 Days)")},
		XAxis: []Axis{{
			Type:         "datetime",
			TickInterval: hourMillis,
			Labels: &Labels{
				Format: "{value:%H:%M}",
				Style:  Style{"color": "#2c2c2c"},
			},
			GridLineWidth: ptr(1),
			GridLineColor: "#e0e0e0",
			Crosshair:     true,
		}, {
			LinkedTo:     ptr(0),
			Opposite:     true,
			Type:         "datetime",
			TickInterval: 24 * hourMillis,
			Labels: &Labels{
				Format: "<b>{value:%a}</b> {value:%b %e}",
				Align:  "center",
				Style:  Style{"fontSize": "10px"},
			},
		}},
		YAxis: []Axis{{
			Labels:        &Labels{Format: "{value}℉", Style: Style{"color": "#eb312e"}},
			GridLineWidth: ptr(1),
			GridLineColor: "#e0e0e0",
			Title:         &Text{},
		}, {
			Labels:        &Labels{Format: "{value}inHg", Style: Style{"color": "#fd9a00"}},
			GridLineWidth: ptr(0),
			Title:         &Text{},
			Opposite:      true,
		}, {
			Labels:        &Labels{Format: "{value}%", Style: Style{"color": "#7bc6fe"}},
			Min:           ptr(0),
			Max:           ptr(100),
			GridLineWidth: ptr(0),
			Title:         &Text{},
		}},
		Series: []Series{{
			Name:  "Humidity",
			Type:  "column",
			YAxis: ptr(2),
			Data:  points(m.Timestamps, m.Humidity),
			Color: "#7bc6fe",
			DataLabels: &DataLabels{
				Enabled: true,
				Inside:  true,
				Format:  "{y}%",
				Style:   Style{"color": "#626261"},
			},
			Tooltip: &Tooltip{ValueSuffix: " %"},
		}, {
			Name:    "Temperature",
			Type:    "spline",
			YAxis:   ptr(0),
			Data:    points(m.Timestamps, m.Temperature),
			Color:   "#eb312e",
			Tooltip: &Tooltip{ValueSuffix: "℉"},
		}, {
			Name:      "Air Pressure",
			Type:      "line",
			YAxis:     ptr(1),
			Data:      points(m.Timestamps, m.Pressure),
			Color:     "#fd9a00",
			DashStyle: "ShortDash",
			Tooltip:   &Tooltip{ValueSuffix: " inHg"},
		}, {
			Name:         "Wind",
			Type:         "windbarb",
			Data:         barbs,
			Color:        "#4a46ab",
			ShowInLegend: ptr(false),
			Tooltip:      &Tooltip{ValueSuffix: " mph"},
		}},
		PlotOptions: map[string]any{
			"column": map[string]any{"stacking": "normal"},
			"spline": map[string]any{
				"marker": map[string]any{"enabled": true, "radius": 2, "symbol": "circle"},
			},
		},
		Tooltip: &Tooltip{
			Shared:        true,
			XDateFormat:   "%A, %e %b %Y, %H:%M",
			ValueDecimals: ptr(2),
		},
	}, nil
}

// points pairs each value with its own timestamp so gaps in the hours stay gaps.
func points(ts []int64, values []float64) [][2]float64 {
	out := make([][2]float64, len(values))
	for i, v := range values {
		out[i] = [2]float64{float64(ts[i]), v}
	}
	return out
}
