/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hemolens/hemolens/cbc"
	"github.com/hemolens/hemolens/db"
)

// TrendsChart renders one parameter's history as an HTML line chart
// with the reference range marked.
func TrendsChart(c flamego.Context, s session.Session) {
	user, ok := resolveSessionUser(c, s)
	if !ok {
		return
	}

	param, found := parseParameterName(c.Query("parameter"))
	if !found {
		writeJSONError(c, http.StatusBadRequest, errUnknownParameter.Error())
		return
	}

	points, err := db.GetParameterHistory(c.Request().Context(), user.ID, param, historyLimit)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to load trend")
		return
	}

	if len(points) < 2 {
		writeJSONError(c, http.StatusPreconditionFailed, "at least two reports are needed for a trend")
		return
	}

	var age *int
	var sex *string
	if state, found := getAnalysisState(s); found {
		age = state.Report.Age
		sex = state.Report.Sex
	}

	html, err := renderTrendChart(param, points, age, sex)
	if err != nil {
		logger.Error("Failed to render trend chart", "parameter", param, "error", err)
		writeJSONError(c, http.StatusInternalServerError, "failed to render chart")
		return
	}

	c.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.ResponseWriter().WriteHeader(http.StatusOK)
	if _, err := c.ResponseWriter().Write([]byte(html)); err != nil {
		logger.Warn("Failed to write chart response", "error", err)
	}
}

func renderTrendChart(param cbc.Parameter, points []db.ParameterPoint, age *int, sex *string) (string, error) {
	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))

	dataMin := points[0].Value
	dataMax := points[0].Value
	for _, point := range points {
		xAxis = append(xAxis, point.ReportDate.Format("Jan 2, 2006"))
		yData = append(yData, opts.LineData{Value: point.Value})

		if point.Value < dataMin {
			dataMin = point.Value
		}
		if point.Value > dataMax {
			dataMax = point.Value
		}
	}

	line := charts.NewLine()

	globalOpts := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title: string(param),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
	}

	seriesOpts := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
		charts.WithMarkPointNameTypeItemOpts(
			opts.MarkPointNameTypeItem{Name: "Max", Type: "max"},
			opts.MarkPointNameTypeItem{Name: "Min", Type: "min"},
		),
		charts.WithMarkLineNameTypeItemOpts(
			opts.MarkLineNameTypeItem{Name: "Average", Type: "average"},
		),
	}

	// Mark the reference range and scale the axis to include it.
	if rng, found := cbc.ReferenceRange(param, age, sex); found {
		padding := (rng.High - rng.Low) * 0.1
		minVal := rng.Low - padding
		maxVal := rng.High + padding

		if dataMin < minVal {
			minVal = dataMin - (dataMax-dataMin)*0.05
		}
		if dataMax > maxVal {
			maxVal = dataMax + (dataMax-dataMin)*0.05
		}

		globalOpts = append(globalOpts, charts.WithYAxisOpts(opts.YAxis{
			Name: cbc.ReportUnit(param),
			Min:  minVal,
			Max:  maxVal,
		}))

		seriesOpts = append(seriesOpts, func(series *charts.SingleSeries) {
			series.MarkLines = &opts.MarkLines{
				Data: []interface{}{
					opts.MarkLineNameYAxisItem{Name: "Ref Min", YAxis: rng.Low},
					opts.MarkLineNameYAxisItem{Name: "Ref Max", YAxis: rng.High},
				},
				MarkLineStyle: opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					LineStyle: &opts.LineStyle{
						Color: "rgba(128, 128, 128, 0.6)",
						Type:  "dashed",
						Width: 1.5,
					},
				},
			}
		})
	} else {
		globalOpts = append(globalOpts, charts.WithYAxisOpts(opts.YAxis{
			Name: cbc.ReportUnit(param),
		}))
	}

	line.SetGlobalOptions(globalOpts...)
	line.SetXAxis(xAxis).
		AddSeries(string(param), yData).
		SetSeriesOptions(seriesOpts...)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
