/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"

	"github.com/flamego/session"

	"github.com/hemolens/hemolens/cbc"
)

// Session keys. The analysis state is stored as JSON bytes because
// the gob session encoder cannot represent nil pointers inside the
// parameter maps.
const (
	sessionKeyUserName   = "user_name"
	sessionKeyReportText = "report_text"
	sessionKeyAnalysis   = "analysis"
	sessionKeyReportID   = "report_id"
)

// analysisState is the per-session snapshot of the last analyzed
// report. Handlers read from here, not from the database.
type analysisState struct {
	Report     cbc.ParsedReport `json:"report"`
	Assessment cbc.Assessment   `json:"assessment"`
}

func sessionUserName(s session.Session) string {
	name, _ := s.Get(sessionKeyUserName).(string)
	return name
}

func setSessionUserName(s session.Session, name string) {
	s.Set(sessionKeyUserName, name)
}

func sessionReportText(s session.Session) string {
	text, _ := s.Get(sessionKeyReportText).(string)
	return text
}

func setSessionReportText(s session.Session, text string) {
	s.Set(sessionKeyReportText, text)
}

func sessionReportID(s session.Session) string {
	id, _ := s.Get(sessionKeyReportID).(string)
	return id
}

func setSessionReportID(s session.Session, id string) {
	s.Set(sessionKeyReportID, id)
}

// getAnalysisState returns the session's analysis snapshot, or false
// when no report has been analyzed yet.
func getAnalysisState(s session.Session) (*analysisState, bool) {
	raw, ok := s.Get(sessionKeyAnalysis).([]byte)
	if !ok || len(raw) == 0 {
		return nil, false
	}

	var state analysisState
	if err := json.Unmarshal(raw, &state); err != nil {
		logger.Warn("Failed to decode session analysis state", "error", err)
		return nil, false
	}

	return &state, true
}

func setAnalysisState(s session.Session, state *analysisState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	s.Set(sessionKeyAnalysis, raw)

	return nil
}

func clearSessionState(s session.Session) {
	s.Delete(sessionKeyReportText)
	s.Delete(sessionKeyAnalysis)
	s.Delete(sessionKeyReportID)
}
