/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cbc

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a reference interval in the parameter's canonical unit.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Midpoint returns the center of the range, used as a stand-in value
// for unmeasured parameters during classification.
func (r Range) Midpoint() float64 {
	return (r.Low + r.High) / 2
}

// String renders the range the way labs print it, e.g. "13.0-17.0".
func (r Range) String() string {
	return formatBound(r.Low) + "-" + formatBound(r.High)
}

func formatBound(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// referenceEntry is one row of the base reference table. Hemoglobin is
// sex-split; every other parameter carries a single unisex range.
type referenceEntry struct {
	unisex *Range
	male   *Range
	female *Range
}

func unisexRange(low, high float64) referenceEntry {
	return referenceEntry{unisex: &Range{Low: low, High: high}}
}

// baseReferenceTable holds adult reference ranges keyed by parameter.
var baseReferenceTable = map[Parameter]referenceEntry{
	ParamHemoglobin: {
		male:   &Range{Low: 13.0, High: 17.0},
		female: &Range{Low: 12.0, High: 16.0},
	},
	ParamLeukocytes:  unisexRange(4500, 11000),
	ParamRBC:         unisexRange(4_500_000, 5_500_000),
	ParamPlatelets:   unisexRange(150_000, 450_000),
	ParamHematocrit:  unisexRange(40, 50),
	ParamMCV:         unisexRange(80, 100),
	ParamMCH:         unisexRange(27, 32),
	ParamMCHC:        unisexRange(31.5, 34.5),
	ParamRDWCV:       unisexRange(11.5, 14.5),
	ParamRDWSD:       unisexRange(35, 56),
	ParamNeutrophils: unisexRange(40, 80),
	ParamLymphocytes: unisexRange(20, 40),
	ParamMonocytes:   unisexRange(2, 10),
	ParamEosinophils: unisexRange(1, 6),
	ParamBasophils:   unisexRange(0, 2),
	ParamESR:         unisexRange(0, 20),
}

// Pediatric overrides. Only the red-cell mass and leukocyte parameters
// differ enough from the adult table to warrant banding.
var infantOverrides = map[Parameter]Range{
	ParamHemoglobin: {Low: 10.0, High: 14.0},
	ParamLeukocytes: {Low: 6000, High: 17000},
	ParamRBC:        {Low: 3_900_000, High: 5_100_000},
	ParamHematocrit: {Low: 30, High: 40},
}

var toddlerOverrides = map[Parameter]Range{
	ParamHemoglobin: {Low: 11.0, High: 14.0},
	ParamLeukocytes: {Low: 5000, High: 15000},
	ParamRBC:        {Low: 4_000_000, High: 5_200_000},
	ParamHematocrit: {Low: 32, High: 40},
}

// resolveRanges builds the effective per-parameter range table for a
// patient. Custom ranges replace base entries, then age banding applies
// on top. A sex-split entry with unknown sex resolves to the union of
// the male and female ranges.
func resolveRanges(age *int, sex *string, custom map[Parameter]Range) map[Parameter]Range {
	resolved := make(map[Parameter]Range, len(AllParameters))

	for _, p := range AllParameters {
		entry, ok := baseReferenceTable[p]
		if !ok {
			continue
		}
		resolved[p] = entry.resolve(sex)
	}

	for p, r := range custom {
		resolved[p] = r
	}

	if age != nil {
		switch {
		case *age <= 1:
			for p, r := range infantOverrides {
				resolved[p] = r
			}
		case *age <= 5:
			for p, r := range toddlerOverrides {
				resolved[p] = r
			}
		}
	}

	return resolved
}

func (e referenceEntry) resolve(sex *string) Range {
	if e.unisex != nil {
		return *e.unisex
	}
	if sex != nil {
		switch *sex {
		case SexMale:
			return *e.male
		case SexFemale:
			return *e.female
		}
	}
	return Range{
		Low:  min(e.male.Low, e.female.Low),
		High: max(e.male.High, e.female.High),
	}
}

// ReferenceRange returns the effective reference range for one
// parameter given the patient's age and sex.
func ReferenceRange(p Parameter, age *int, sex *string) (Range, bool) {
	resolved := resolveRanges(age, sex, nil)
	rng, ok := resolved[p]
	return rng, ok
}

// ReferenceTableLines renders the base adult reference table, one
// parameter per line, for the "show normal ranges" chat response.
func ReferenceTableLines() []string {
	lines := make([]string, 0, len(AllParameters))
	for _, p := range AllParameters {
		entry := baseReferenceTable[p]
		unit := reportUnits[p]
		if entry.unisex != nil {
			lines = append(lines, fmt.Sprintf("%s: %s %s", p, entry.unisex, unit))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: Male %s %s | Female %s %s", p, entry.male, unit, entry.female, unit))
	}
	return lines
}
