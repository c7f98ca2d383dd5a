/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cbc

import (
	"regexp"
	"strconv"
	"strings"
)

// Sex values produced by Extract.
const (
	SexMale   = "Male"
	SexFemale = "Female"
)

// RawReading holds the literal numeric and unit tokens found near a
// parameter name, before any normalization.
type RawReading struct {
	Raw  *string `json:"raw"`
	Unit *string `json:"unit"`
}

// PrintedRange is a reference range as printed on the source report.
type PrintedRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ParsedReport is the structured output of Extract. Parameters,
// RawParameters and Ranges always contain exactly the keys in
// AllParameters; an unmatched parameter has nil entries.
type ParsedReport struct {
	Age           *int                        `json:"age"`
	Sex           *string                     `json:"sex"`
	Parameters    map[Parameter]*float64      `json:"parameters"`
	RawParameters map[Parameter]RawReading    `json:"rawParameters"`
	Ranges        map[Parameter]*PrintedRange `json:"ranges"`
}

// paramPattern binds a canonical parameter to its name-matching
// expression. exclude rejects lines that also match a longer sibling
// name (RE2 has no lookahead). rdwAlias marks the generic RDW pattern,
// which only backfills RDW-CV.
type paramPattern struct {
	key      Parameter
	match    *regexp.Regexp
	exclude  *regexp.Regexp
	rdwAlias bool
}

// Scan order matters: the generic RDW alias must come after the
// specific RDW-CV and RDW-SD patterns.
var paramPatterns = []paramPattern{
	{key: ParamHemoglobin, match: regexp.MustCompile(`(?i)\b(?:HB|HEMOGLOBIN|HAEMOGLOBIN)\b`)},
	{key: ParamLeukocytes, match: regexp.MustCompile(`(?i)\b(?:WBC|TOTAL\s+LEUKOCYTE\s+COUNT|TOTAL\s+LEUKOCYTE|TOTAL\s+W\.?\s*B\.?\s*C\.?\s*COUNT|TOTAL\s+LEUCOCYTE\s*COUNT|TLC)\b`)},
	{key: ParamRBC, match: regexp.MustCompile(`(?i)\b(?:RBC|TOTAL\s+RBC\s+COUNT|TOTAL\s+RED\s+BLOOD\s+CELLS?|RBC\s*COUNT)\b`)},
	{key: ParamPlatelets, match: regexp.MustCompile(`(?i)\b(?:PLT|PLATELET\s+COUNT|PLATELETS|TOTAL\s+PLATELET\s+COUNT)\b`)},
	{key: ParamHematocrit, match: regexp.MustCompile(`(?i)\b(?:HCT|HEMATOCRIT|PCV|HEMATOCRIT\s+VALUE)\b`)},
	{key: ParamMCV, match: regexp.MustCompile(`(?i)\b(?:MCV|M\.?C\.?V\.?|MEAN\s+CORPUSCULAR\s+VOLUME)\b`)},
	{
		key:     ParamMCH,
		match:   regexp.MustCompile(`(?i)\b(?:MCH|MEAN\s+CELL\s+HAEMOGLOBIN)\b`),
		exclude: regexp.MustCompile(`(?i)\b(?:MCHC|MEAN\s+CELL\s+HAEMOGLOBIN\s+CON)`),
	},
	{key: ParamMCHC, match: regexp.MustCompile(`(?i)\b(?:MCHC|MEAN\s+CELL\s+HAEMOGLOBIN\s+CON)`)},
	{key: ParamRDWCV, match: regexp.MustCompile(`(?i)\bRDW[-\s]*CV\b`)},
	{key: ParamRDWSD, match: regexp.MustCompile(`(?i)\bRDW[-\s]*SD\b`)},
	{key: ParamRDWCV, match: regexp.MustCompile(`(?i)\bRED\s*CELL\s*DISTRIBUTION\s*WIDTH\b|RDW\b`), rdwAlias: true},
	{key: ParamNeutrophils, match: regexp.MustCompile(`(?i)\b(?:NEU[%\s]*|NEUTROPHILS|SEGMENTED\s+NEUTROPHILS|NEUTROPHIL)\b`)},
	{key: ParamLymphocytes, match: regexp.MustCompile(`(?i)\b(?:L?YMPHOCYTE|L?YMPHOCYTES|LYM[%\s]*)\b`)},
	{key: ParamMonocytes, match: regexp.MustCompile(`(?i)\b(?:MON[%\s]*|MONOCYTE|MONOCYTES)\b`)},
	{key: ParamEosinophils, match: regexp.MustCompile(`(?i)\b(?:EOS[%\s]*|EOSINOPHIL|EOSINOPHILS)\b`)},
	{key: ParamBasophils, match: regexp.MustCompile(`(?i)\b(?:BAS[%\s]*|BASOPHIL|BASOPHILS)\b`)},
	{key: ParamESR, match: regexp.MustCompile(`(?i)\bESR\b`)},
}

var (
	unitPattern   = regexp.MustCompile(`(?i)\b(g/dl|g/l|%|lacs per cmm|lacs|lakhs|mil/cumm|million/cumm|million|10\^3|10\*3|10\^6|10\*6|cumm|/ul|/µl|per cmm|cells/mm|pg|fl|mm/hr|millmm3|thou/mm3)\b`)
	numberPattern = regexp.MustCompile(`[<>]?\d[\d,.]*`)
	rangePattern  = regexp.MustCompile(`(\d+\.?\d*)\s*[-–]\s*(\d+\.?\d*)`)
	uptoPattern   = regexp.MustCompile(`(?i)(?:up to|below)\s*(\d+\.?\d*)`)

	ageSexPattern = regexp.MustCompile(`(?i)Age\s*[/\\]?Gender\s*[:\s]*([0-9]{1,3})\s*[/\\]?\s*(M|F|Male|Female)`)
	agePattern    = regexp.MustCompile(`(?i)\bAge\s*[:/\\]?\s*(\d{1,3})`)
	sexPattern    = regexp.MustCompile(`(?i)\b(?:Sex|Gender)\s*[:/\\]?\s*(Male|Female|M|F|Other)`)

	nonNumericPattern = regexp.MustCompile(`[^\d.\-]`)
)

// lookaheadWindow is how many lines past a parameter name the value,
// unit and range tokens may appear on (OCR often splits table rows).
const lookaheadWindow = 7

// Extract parses raw lab report text into a ParsedReport. It never
// fails: unmatched parameters and unparseable numbers yield nil
// entries.
func Extract(text string) ParsedReport {
	lines := NormalizeLines(text)

	report := ParsedReport{
		Parameters:    make(map[Parameter]*float64, len(AllParameters)),
		RawParameters: make(map[Parameter]RawReading, len(AllParameters)),
		Ranges:        make(map[Parameter]*PrintedRange, len(AllParameters)),
	}
	for _, p := range AllParameters {
		report.Parameters[p] = nil
		report.RawParameters[p] = RawReading{}
		report.Ranges[p] = nil
	}

	report.Age, report.Sex = extractAgeSex(text)

	for _, pattern := range paramPatterns {
		scanParameter(lines, pattern, &report)
	}

	return report
}

func scanParameter(lines []string, pattern paramPattern, report *ParsedReport) {
	for i, line := range lines {
		upper := strings.ToUpper(line)
		if !pattern.match.MatchString(upper) {
			continue
		}
		if pattern.exclude != nil && pattern.exclude.MatchString(upper) {
			continue
		}

		end := i + lookaheadWindow
		if end > len(lines) {
			end = len(lines)
		}
		window := strings.Join(lines[i:end], " ")

		var raw *string
		if token := numberPattern.FindString(window); token != "" {
			cleaned := strings.TrimSpace(strings.ReplaceAll(token, ",", ""))
			raw = &cleaned
		}

		unit := unitPattern.FindString(window)
		if unit == "" {
			unit = defaultExtractionUnits[pattern.key]
		}

		printed := extractPrintedRange(window)

		value := normalizeByUnit(pattern.key, parseNumber(raw), unit)

		if pattern.rdwAlias {
			// The generic RDW pattern only backfills RDW-CV when the
			// specific pattern found nothing.
			if report.Parameters[ParamRDWCV] == nil {
				report.Parameters[ParamRDWCV] = value
				report.RawParameters[ParamRDWCV] = RawReading{Raw: raw, Unit: &unit}
				report.Ranges[ParamRDWCV] = printed
			}
			return
		}

		report.Parameters[pattern.key] = value
		report.RawParameters[pattern.key] = RawReading{Raw: raw, Unit: &unit}
		report.Ranges[pattern.key] = printed

		return
	}
}

func extractPrintedRange(window string) *PrintedRange {
	if m := rangePattern.FindStringSubmatch(window); m != nil {
		low := parseNumberString(m[1])
		high := parseNumberString(m[2])
		if low != nil && high != nil {
			return &PrintedRange{Low: *low, High: *high}
		}
		return nil
	}
	if m := uptoPattern.FindStringSubmatch(window); m != nil {
		if high := parseNumberString(m[1]); high != nil {
			return &PrintedRange{Low: 0, High: *high}
		}
	}
	return nil
}

func extractAgeSex(text string) (*int, *string) {
	var age *int
	var sex *string

	if m := ageSexPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			age = &n
		}
		normalized := normalizeSex(m[2])
		sex = &normalized
	}

	if age == nil {
		if m := agePattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				age = &n
			}
		}
	}

	if sex == nil {
		if m := sexPattern.FindStringSubmatch(text); m != nil {
			normalized := normalizeSex(m[1])
			sex = &normalized
		}
	}

	return age, sex
}

func normalizeSex(token string) string {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "M", "MALE":
		return SexMale
	case "F", "FEMALE":
		return SexFemale
	}
	token = strings.TrimSpace(token)
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}

func parseNumber(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	return parseNumberString(*raw)
}

func parseNumberString(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = nonNumericPattern.ReplaceAllString(s, "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeByUnit converts a raw magnitude to the parameter's canonical
// reporting unit. Cell-count parameters printed in thousands, millions
// or lakhs are scaled to absolute counts per microliter.
func normalizeByUnit(param Parameter, value *float64, unit string) *float64 {
	if value == nil {
		return nil
	}
	u := strings.ToLower(unit)

	scaled := *value
	switch param {
	case ParamHemoglobin:
		if strings.Contains(u, "g/l") {
			scaled = scaled / 10.0
		}
	case ParamLeukocytes:
		if u == "" || containsAny(u, "10^3", "10*3", "per cmm", "thou/mm3") {
			scaled = scaled * 1000.0
		}
	case ParamRBC:
		if u == "" || containsAny(u, "million", "10^6", "10*6", "mil/cumm", "millmm3") {
			scaled = scaled * 1_000_000.0
		}
	case ParamPlatelets:
		if containsAny(u, "lakh", "lacs") {
			scaled = scaled * 100_000.0
		} else if containsAny(u, "10^3", "10*3", "per cmm") {
			scaled = scaled * 1000.0
		}
	}

	return &scaled
}

func containsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
