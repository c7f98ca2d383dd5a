/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/hemolens/hemolens/cbc"
	"github.com/hemolens/hemolens/db"
	"github.com/hemolens/hemolens/ocr"
)

const uploadMaxBytes = 16 << 20

// UploadReport accepts a report image/PDF, sends it to the OCR
// collaborator, and stores the recognized text in the session.
func UploadReport(c flamego.Context, s session.Session) {
	if err := c.Request().ParseMultipartForm(uploadMaxBytes); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := c.Request().FormFile("file")
	if err != nil {
		writeJSONError(c, http.StatusBadRequest, errMissingFileUpload.Error())
		return
	}
	defer file.Close()

	if name := strings.TrimSpace(c.Request().FormValue("user")); name != "" {
		setSessionUserName(s, name)
	}

	client, err := ocr.NewClient()
	if err != nil {
		writeJSONError(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	text, err := client.ExtractText(c.Request().Context(), header.Filename, file)
	if err != nil {
		logger.Error("OCR extraction failed", "filename", header.Filename, "error", err)
		writeJSONError(c, http.StatusBadGateway, "failed to extract text from file")
		return
	}

	setSessionReportText(s, text)

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"filename": header.Filename,
		"text":     text,
		"lines":    len(cbc.NormalizeLines(text)),
	})
}

// SubmitText stores pasted report text in the session, bypassing OCR.
func SubmitText(c flamego.Context, s session.Session) {
	var request struct {
		Text string `json:"text"`
		User string `json:"user"`
	}

	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&request); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(request.Text) == "" {
		writeJSONError(c, http.StatusBadRequest, errEmptyReportText.Error())
		return
	}

	if name := strings.TrimSpace(request.User); name != "" {
		setSessionUserName(s, name)
	}

	setSessionReportText(s, request.Text)

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"lines": len(cbc.NormalizeLines(request.Text)),
	})
}

// AnalyzeReport runs extraction and assessment over the session's
// report text. The result is stored in the session before persistence
// is attempted, so a database fault never loses the analysis.
func AnalyzeReport(c flamego.Context, s session.Session) {
	var request struct {
		Text string `json:"text"`
	}

	if body := c.Request().Body(); body != nil {
		// Body is optional; the session text is used when absent.
		raw, err := io.ReadAll(body.ReadCloser())
		if err == nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, &request); err != nil {
				writeJSONError(c, http.StatusBadRequest, "invalid request body")
				return
			}
		}
	}

	text := strings.TrimSpace(request.Text)
	if text == "" {
		text = sessionReportText(s)
	}
	if strings.TrimSpace(text) == "" {
		writeJSONError(c, http.StatusPreconditionFailed, errEmptyReportText.Error())
		return
	}

	report := cbc.Extract(text)
	assessment := cbc.Assess(report.Parameters, report.Age, report.Sex, nil)

	state := &analysisState{Report: report, Assessment: assessment}
	if err := setAnalysisState(s, state); err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to store analysis")
		return
	}
	setSessionReportText(s, text)

	response := map[string]interface{}{
		"parameters":     reportTuples(assessment),
		"absoluteCounts": absoluteCountEntries(assessment),
		"age":            report.Age,
		"sex":            report.Sex,
	}

	// Persist after the session already holds the result.
	if userName := sessionUserName(s); userName != "" {
		if err := persistReport(c, s, userName, text, report, assessment); err != nil {
			logger.Error("Failed to persist report", "user", userName, "error", err)
			response["warning"] = "analysis complete but saving to history failed"
			writeJSON(c, http.StatusInternalServerError, response)
			return
		}
	}

	writeJSON(c, http.StatusOK, response)
}

func persistReport(c flamego.Context, s session.Session, userName, text string, report cbc.ParsedReport, assessment cbc.Assessment) error {
	ctx := c.Request().Context()

	user, err := db.GetOrCreateUser(ctx, userName)
	if err != nil {
		return err
	}

	stored := &db.Report{
		UserID:     user.ID,
		SourceText: text,
		Age:        report.Age,
		Sex:        report.Sex,
		Parameters: report.Parameters,
		Assessment: assessment.Assessed,
	}
	if err := db.SaveReport(ctx, stored); err != nil {
		return err
	}

	setSessionReportID(s, stored.ID.String())

	return nil
}

// ReportTable returns the ordered parameter tuples for the current
// analysis, for the rendering collaborator.
func ReportTable(c flamego.Context, s session.Session) {
	state, ok := requireAnalysis(c, s)
	if !ok {
		return
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"parameters":     reportTuples(state.Assessment),
		"absoluteCounts": absoluteCountEntries(state.Assessment),
		"age":            state.Report.Age,
		"sex":            state.Report.Sex,
	})
}

// Summary returns counts plus the abnormal parameter list for the
// current analysis.
func Summary(c flamego.Context, s session.Session) {
	state, ok := requireAnalysis(c, s)
	if !ok {
		return
	}

	measured := 0
	for _, p := range cbc.AllParameters {
		if entry, found := state.Assessment.Assessed[p]; found && entry.Value != nil {
			measured++
		}
	}

	abnormal := state.Assessment.AbnormalParameters()
	abnormalNames := make([]string, 0, len(abnormal))
	for _, p := range abnormal {
		abnormalNames = append(abnormalNames, string(p))
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"age":      state.Report.Age,
		"sex":      state.Report.Sex,
		"measured": measured,
		"normal":   measured - len(abnormal),
		"abnormal": abnormalNames,
	})
}

// CorrelationsHandler returns clinical correlation notes derived from
// the current assessment.
func CorrelationsHandler(c flamego.Context, s session.Session) {
	state, ok := requireAnalysis(c, s)
	if !ok {
		return
	}

	correlations := cbc.Correlations(state.Assessment)
	if correlations == nil {
		correlations = []string{}
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"correlations": correlations,
	})
}

// UpdateParameter overwrites one extracted value and re-runs the full
// assessment, in the session and (when saved) in the stored report.
func UpdateParameter(c flamego.Context, s session.Session) {
	state, ok := requireAnalysis(c, s)
	if !ok {
		return
	}

	var request struct {
		Parameter string   `json:"parameter"`
		Value     *float64 `json:"value"`
	}

	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&request); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	param, found := parseParameterName(request.Parameter)
	if !found {
		writeJSONError(c, http.StatusBadRequest, errUnknownParameter.Error())
		return
	}

	if state.Report.Parameters == nil {
		state.Report.Parameters = make(map[cbc.Parameter]*float64, len(cbc.AllParameters))
	}
	state.Report.Parameters[param] = request.Value
	state.Assessment = cbc.Assess(state.Report.Parameters, state.Report.Age, state.Report.Sex, nil)

	if err := setAnalysisState(s, state); err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to store analysis")
		return
	}

	if reportID := sessionReportID(s); reportID != "" {
		id, err := uuid.Parse(reportID)
		if err == nil {
			if _, err := db.UpdateReportParameter(c.Request().Context(), id, param, request.Value); err != nil {
				logger.Error("Failed to persist parameter update", "report_id", reportID, "error", err)
			}
		}
	}

	entry := state.Assessment.Assessed[param]

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"parameter":  string(param),
		"value":      entry.Value,
		"status":     string(entry.Status),
		"range":      entry.Range,
		"parameters": reportTuples(state.Assessment),
	})
}

// ClearSession drops the analysis state but keeps the user name.
func ClearSession(c flamego.Context, s session.Session) {
	clearSessionState(s)

	writeJSON(c, http.StatusOK, map[string]string{"status": "cleared"})
}
