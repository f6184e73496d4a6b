package charts_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/timework_bot/internal/charts"
	"github.com/ivanoskov/timework_bot/internal/service"
)

func TestGenerateWeeklyHoursChartNoData(t *testing.T) {
	g := charts.NewChartGenerator()

	png, err := g.GenerateWeeklyHoursChart(nil)
	require.NoError(t, err)
	assert.Nil(t, png)

	png, err = g.GenerateWeeklyHoursChart(&service.WeeklyReport{Days: make([]service.DayTotal, 7)})
	require.NoError(t, err)
	assert.Nil(t, png)
}

func TestGenerateWeeklyHoursChart(t *testing.T) {
	g := charts.NewChartGenerator()

	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	report := &service.WeeklyReport{
		Days:   make([]service.DayTotal, 7),
		Shifts: 2,
	}
	for i := range report.Days {
		report.Days[i].Date = base.AddDate(0, 0, i)
	}
	report.Days[1].Hours = 7.5
	report.Days[4].Hours = 8

	png, err := g.GenerateWeeklyHoursChart(report)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG-сигнатура.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
