/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cbc

import "math"

// Status classifies a parameter against its resolved reference range.
type Status string

const (
	StatusLow    Status = "Low"
	StatusNormal Status = "Normal"
	StatusHigh   Status = "High"
	StatusNA     Status = "NA"
)

// Abnormal reports whether the status should be flagged to the user.
func (s Status) Abnormal() bool {
	return s == StatusLow || s == StatusHigh
}

// tolerance is the symmetric margin applied to a reference range before
// a value is flagged Low or High.
const tolerance = 0.02

// AssessedValue is the classification result for one parameter. Value
// is the observed measurement and stays nil when the report carried
// none; classification then runs against the range midpoint so an
// unmeasured parameter is never flagged abnormal.
type AssessedValue struct {
	Value  *float64 `json:"value"`
	Status Status   `json:"status"`
	Unit   string   `json:"unit"`
	Range  string   `json:"range"`
}

// AbsoluteCount is a derived absolute WBC differential count.
type AbsoluteCount struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Assessment is the full classification of a parsed report.
type Assessment struct {
	Assessed       map[Parameter]AssessedValue `json:"assessed"`
	AbsoluteCounts map[string]AbsoluteCount    `json:"absoluteCounts"`
}

// AbnormalParameters lists flagged parameters in report order.
func (a Assessment) AbnormalParameters() []Parameter {
	var abnormal []Parameter
	for _, p := range AllParameters {
		if entry, ok := a.Assessed[p]; ok && entry.Status.Abnormal() {
			abnormal = append(abnormal, p)
		}
	}
	return abnormal
}

// Assess classifies every canonical parameter against the reference
// table resolved for the given age and sex. Custom ranges, when
// non-nil, replace base table entries before age banding. The returned
// Assessed map contains exactly the AllParameters keys.
func Assess(parameters map[Parameter]*float64, age *int, sex *string, custom map[Parameter]Range) Assessment {
	ranges := resolveRanges(age, sex, custom)

	assessed := make(map[Parameter]AssessedValue, len(AllParameters))
	for _, p := range AllParameters {
		unit := reportUnits[p]
		value := parameters[p]

		rng, ok := ranges[p]
		if !ok {
			assessed[p] = AssessedValue{Value: value, Status: StatusNA, Unit: unit, Range: "N/A"}
			continue
		}

		assessed[p] = AssessedValue{
			Value:  value,
			Status: classify(value, rng),
			Unit:   unit,
			Range:  rng.String(),
		}
	}

	return Assessment{
		Assessed:       assessed,
		AbsoluteCounts: absoluteCounts(parameters, ranges),
	}
}

func classify(value *float64, rng Range) Status {
	v := rng.Midpoint()
	if value != nil {
		v = *value
	}

	switch {
	case v < rng.Low*(1-tolerance):
		return StatusLow
	case v > rng.High*(1+tolerance):
		return StatusHigh
	default:
		return StatusNormal
	}
}

// absoluteCounts derives absolute WBC differential counts from the
// percentage parameters. Missing measurements are substituted with the
// low end of their resolved range so the arithmetic always completes.
func absoluteCounts(parameters map[Parameter]*float64, ranges map[Parameter]Range) map[string]AbsoluteCount {
	wbc := ranges[ParamLeukocytes].Low
	if v := parameters[ParamLeukocytes]; v != nil {
		wbc = *v
	}

	counts := make(map[string]AbsoluteCount, len(WBCDifferentials))
	for _, p := range WBCDifferentials {
		pct := ranges[p].Low
		if v := parameters[p]; v != nil {
			pct = *v
		}

		counts[string(p)+"_ABS"] = AbsoluteCount{
			Value: round2(wbc * pct / 100.0),
			Unit:  "/µL",
		}
	}

	return counts
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
