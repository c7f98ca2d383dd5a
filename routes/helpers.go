/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/hemolens/hemolens/cbc"
)

func writeJSON(c flamego.Context, status int, v interface{}) {
	c.ResponseWriter().Header().Set("Content-Type", "application/json")
	c.ResponseWriter().WriteHeader(status)
	if err := json.NewEncoder(c.ResponseWriter()).Encode(v); err != nil {
		logger.Warn("Failed to encode JSON response", "error", err)
	}
}

func writeJSONError(c flamego.Context, status int, message string) {
	writeJSON(c, status, map[string]string{"error": message})
}

// parseParameterName resolves a client-supplied parameter name to a
// canonical key, case-insensitively.
func parseParameterName(name string) (cbc.Parameter, bool) {
	needle := strings.TrimSpace(strings.ToUpper(name))
	for _, p := range cbc.AllParameters {
		if string(p) == needle {
			return p, true
		}
	}
	return "", false
}

// parameterTuple is one row of the report table returned to clients.
type parameterTuple struct {
	Parameter string   `json:"parameter"`
	Value     *float64 `json:"value"`
	Unit      string   `json:"unit"`
	Status    string   `json:"status"`
	Range     string   `json:"range"`
}

type absoluteCountEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// reportTuples flattens an assessment into the ordered tuple list the
// rendering collaborator consumes.
func reportTuples(a cbc.Assessment) []parameterTuple {
	tuples := make([]parameterTuple, 0, len(cbc.AllParameters))
	for _, p := range cbc.AllParameters {
		entry := a.Assessed[p]
		tuples = append(tuples, parameterTuple{
			Parameter: string(p),
			Value:     entry.Value,
			Unit:      entry.Unit,
			Status:    string(entry.Status),
			Range:     entry.Range,
		})
	}
	return tuples
}

func absoluteCountEntries(a cbc.Assessment) []absoluteCountEntry {
	entries := make([]absoluteCountEntry, 0, len(cbc.WBCDifferentials))
	for _, p := range cbc.WBCDifferentials {
		key := string(p) + "_ABS"
		count, ok := a.AbsoluteCounts[key]
		if !ok {
			continue
		}
		entries = append(entries, absoluteCountEntry{Key: key, Value: count.Value, Unit: count.Unit})
	}
	return entries
}

// requireAnalysis loads the session analysis state or writes the
// missing-context error.
func requireAnalysis(c flamego.Context, s session.Session) (*analysisState, bool) {
	state, ok := getAnalysisState(s)
	if !ok {
		writeJSONError(c, http.StatusPreconditionFailed, errNoAnalysis.Error())
		return nil, false
	}
	return state, true
}
