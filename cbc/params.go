/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package cbc extracts Complete Blood Count panels from raw lab report
// text and classifies each value against age and sex adjusted reference
// ranges. The package is pure: no I/O, no clocks, and equal input always
// produces equal output.
package cbc

// Parameter is a canonical CBC parameter key. The string value matches
// the uppercase names printed on most lab reports.
type Parameter string

const (
	ParamHemoglobin  Parameter = "HEMOGLOBIN"
	ParamLeukocytes  Parameter = "TOTAL LEUKOCYTE COUNT"
	ParamRBC         Parameter = "TOTAL RBC COUNT"
	ParamPlatelets   Parameter = "PLATELET COUNT"
	ParamHematocrit  Parameter = "HEMATOCRIT"
	ParamMCV         Parameter = "MCV"
	ParamMCH         Parameter = "MCH"
	ParamMCHC        Parameter = "MCHC"
	ParamRDWCV       Parameter = "RDW-CV"
	ParamRDWSD       Parameter = "RDW-SD"
	ParamNeutrophils Parameter = "NEUTROPHILS"
	ParamLymphocytes Parameter = "LYMPHOCYTES"
	ParamMonocytes   Parameter = "MONOCYTES"
	ParamEosinophils Parameter = "EOSINOPHILS"
	ParamBasophils   Parameter = "BASOPHILS"
	ParamESR         Parameter = "ESR"
)

// AllParameters lists every canonical parameter in report order. Output
// maps produced by Extract and Assess contain exactly these keys.
var AllParameters = []Parameter{
	ParamHemoglobin,
	ParamLeukocytes,
	ParamRBC,
	ParamPlatelets,
	ParamHematocrit,
	ParamMCV,
	ParamMCH,
	ParamMCHC,
	ParamRDWCV,
	ParamRDWSD,
	ParamNeutrophils,
	ParamLymphocytes,
	ParamMonocytes,
	ParamEosinophils,
	ParamBasophils,
	ParamESR,
}

// WBCDifferentials are the percentage-based white cell parameters that
// get derived absolute counts.
var WBCDifferentials = []Parameter{
	ParamNeutrophils,
	ParamLymphocytes,
	ParamMonocytes,
	ParamEosinophils,
	ParamBasophils,
}

// reportUnits are the canonical units each parameter is reported in
// after unit normalization.
var reportUnits = map[Parameter]string{
	ParamHemoglobin:  "g/dL",
	ParamLeukocytes:  "/µL",
	ParamRBC:         "/µL",
	ParamPlatelets:   "/µL",
	ParamHematocrit:  "%",
	ParamMCV:         "fL",
	ParamMCH:         "pg",
	ParamMCHC:        "g/dL",
	ParamRDWCV:       "%",
	ParamRDWSD:       "%",
	ParamNeutrophils: "%",
	ParamLymphocytes: "%",
	ParamMonocytes:   "%",
	ParamEosinophils: "%",
	ParamBasophils:   "%",
	ParamESR:         "mm/hr",
}

// ReportUnit returns the canonical unit for a parameter.
func ReportUnit(p Parameter) string {
	return reportUnits[p]
}

// defaultExtractionUnits are assumed when a report prints no unit token
// near a parameter.
var defaultExtractionUnits = map[Parameter]string{
	ParamHematocrit:  "%",
	ParamMCV:         "fL",
	ParamRDWCV:       "%",
	ParamRDWSD:       "fL",
	ParamMCH:         "pg",
	ParamMCHC:        "g/dL",
	ParamNeutrophils: "%",
	ParamLymphocytes: "%",
	ParamMonocytes:   "%",
	ParamEosinophils: "%",
	ParamBasophils:   "%",
	ParamESR:         "mm/hr",
}
