package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/timework_bot/internal/service"
)

// ChartGenerator генерирует графики для отчетов
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateWeeklyHoursChart строит столбчатый график отработанных часов
// по дням за неделю. Возвращает nil, если завершённых смен не было.
func (g *ChartGenerator) GenerateWeeklyHoursChart(report *service.WeeklyReport) ([]byte, error) {
	if report == nil || report.Shifts == 0 {
		return nil, nil // Нет данных для графика
	}

	bars := make([]chart.Value, 0, len(report.Days))
	for _, day := range report.Days {
		bars = append(bars, chart.Value{
			Value: day.Hours,
			Label: day.Date.Format("02.01"),
		})
	}

	graph := chart.BarChart{
		Title:  "Отработано часов за неделю",
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		BarWidth: 60,
		XAxis: chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1f ч", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf.Bytes(), nil
}
