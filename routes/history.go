/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/hemolens/hemolens/cbc"
	"github.com/hemolens/hemolens/db"
)

const historyLimit = 20

// resolveSessionUser maps the session user name to a stored user,
// writing the missing-context error when no name is set.
func resolveSessionUser(c flamego.Context, s session.Session) (*db.User, bool) {
	userName := sessionUserName(s)
	if userName == "" {
		writeJSONError(c, http.StatusPreconditionFailed, errMissingUserName.Error())
		return nil, false
	}

	user, err := db.GetOrCreateUser(c.Request().Context(), userName)
	if err != nil {
		logger.Error("Failed to resolve user", "user", userName, "error", err)
		writeJSONError(c, http.StatusInternalServerError, "failed to resolve user")
		return nil, false
	}

	return user, true
}

// History lists the user's stored reports, most recent first, with
// per-report normal/abnormal counts.
func History(c flamego.Context, s session.Session) {
	user, ok := resolveSessionUser(c, s)
	if !ok {
		return
	}

	reports, err := db.GetUserReports(c.Request().Context(), user.ID, historyLimit)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to load reports")
		return
	}

	type reportEntry struct {
		ID       string   `json:"id"`
		Date     string   `json:"date"`
		Filename *string  `json:"filename"`
		Age      *int     `json:"age"`
		Sex      *string  `json:"sex"`
		Measured int      `json:"measured"`
		Abnormal []string `json:"abnormal"`
	}

	entries := make([]reportEntry, 0, len(reports))
	for _, report := range reports {
		var abnormal []string
		for _, p := range cbc.AllParameters {
			if entry, found := report.Assessment[p]; found && entry.Status.Abnormal() {
				abnormal = append(abnormal, string(p))
			}
		}
		if abnormal == nil {
			abnormal = []string{}
		}

		entries = append(entries, reportEntry{
			ID:       report.ID.String(),
			Date:     report.FormatDate(),
			Filename: report.Filename,
			Age:      report.Age,
			Sex:      report.Sex,
			Measured: report.MeasuredCount(),
			Abnormal: abnormal,
		})
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"user":    user.Name,
		"reports": entries,
	})
}

type trendPoint struct {
	ReportID string  `json:"reportId"`
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
}

func parameterTrend(c flamego.Context, userID uuid.UUID, param cbc.Parameter) ([]trendPoint, error) {
	points, err := db.GetParameterHistory(c.Request().Context(), userID, param, historyLimit)
	if err != nil {
		return nil, err
	}

	trend := make([]trendPoint, 0, len(points))
	for _, point := range points {
		trend = append(trend, trendPoint{
			ReportID: point.ReportID.String(),
			Date:     point.ReportDate.Format("2006-01-02"),
			Value:    point.Value,
		})
	}

	return trend, nil
}

// Trends returns the time series for one parameter across the user's
// stored reports. At least two points are needed for a trend.
func Trends(c flamego.Context, s session.Session) {
	user, ok := resolveSessionUser(c, s)
	if !ok {
		return
	}

	param, found := parseParameterName(c.Query("parameter"))
	if !found {
		writeJSONError(c, http.StatusBadRequest, errUnknownParameter.Error())
		return
	}

	trend, err := parameterTrend(c, user.ID, param)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to load trend")
		return
	}

	if len(trend) < 2 {
		writeJSONError(c, http.StatusPreconditionFailed, "at least two reports are needed for a trend")
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"parameter": string(param),
		"unit":      cbc.ReportUnit(param),
		"points":    trend,
	})
}

// ClearHistory deletes the user's stored reports and chat turns.
func ClearHistory(c flamego.Context, s session.Session) {
	user, ok := resolveSessionUser(c, s)
	if !ok {
		return
	}

	ctx := c.Request().Context()

	deletedTurns, err := db.ClearChatHistory(ctx, user.ID)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to clear chat history")
		return
	}

	deletedReports, err := db.DeleteUserReports(ctx, user.ID)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to clear reports")
		return
	}

	clearSessionState(s)

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"status":          "cleared",
		"deletedReports":  deletedReports,
		"deletedMessages": deletedTurns,
	})
}
