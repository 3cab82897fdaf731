package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/padraicbc/golftrip/leaderboard"
	"github.com/padraicbc/golftrip/scoring"
)

var (
	background = drawing.ColorFromHex("f4f1e8")
	fairway    = drawing.ColorFromHex("2e7d32")
	ink        = drawing.ColorFromHex("1b1b1b")
)

// TeamChart renders each team's total for mode as a bar chart PNG, in
// leaderboard order. Teams without a score are left out.
func TeamChart(board []leaderboard.TeamSummary, mode scoring.Mode) ([]byte, error) {
	var (
		bars []chart.Value
		top  float64
	)
	for _, t := range board {
		total := t.Total(mode)
		if total == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: t.Name,
			Value: float64(total),
			Style: chart.Style{FillColor: fairway, StrokeColor: fairway},
		})
		top = max(top, float64(total))
	}
	if len(bars) == 0 {
		return renderNoData("No scores recorded yet")
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Team %s", strings.ToLower(string(mode))),
		Width:      160 + 120*len(bars),
		Height:     420,
		BarWidth:   60,
		BarSpacing: 60,
		Background: chart.Style{
			FillColor: background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: background},
		XAxis:  chart.Style{FontColor: ink},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: ink},
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("rendering team chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderNoData draws msg on an empty canvas. go-chart needs one visible
// series, so an invisible line is plotted behind the text.
func renderNoData(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: background},
		Canvas:     chart.Style{FillColor: background},
		XAxis:      chart.XAxis{Style: chart.Hidden()},
		YAxis:      chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: background},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
				defaults.WriteToRenderer(r)
				r.SetFontColor(ink)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("rendering placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
