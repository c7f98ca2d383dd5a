/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cbc

import "fmt"

// Correlations derives simple clinical correlation hints from an
// assessment. These are pattern observations, not diagnoses. The
// returned slice is deterministic and free of duplicates.
func Correlations(a Assessment) []string {
	var hints []string
	seen := make(map[string]struct{})
	add := func(hint string) {
		if _, ok := seen[hint]; ok {
			return
		}
		seen[hint] = struct{}{}
		hints = append(hints, hint)
	}

	status := func(p Parameter) Status {
		return a.Assessed[p].Status
	}

	// Anemia morphology: when red cell mass is low, MCV points at the
	// likely mechanism.
	if status(ParamHemoglobin) == StatusLow || status(ParamHematocrit) == StatusLow {
		switch status(ParamMCV) {
		case StatusLow:
			add("Microcytic anemia (possible iron deficiency).")
		case StatusHigh:
			add("Macrocytic anemia (possible B12/Folate deficiency).")
		default:
			add("Normocytic anemia (possible chronic disease).")
		}
	}

	switch status(ParamLeukocytes) {
	case StatusLow:
		add("Leukopenia (possible bone marrow suppression or viral infection).")
	case StatusHigh:
		if status(ParamNeutrophils) == StatusHigh {
			add("Suggestive of bacterial infection.")
		} else if status(ParamLymphocytes) == StatusHigh {
			add("Suggestive of viral infection.")
		}
	}

	switch status(ParamPlatelets) {
	case StatusLow:
		add("Thrombocytopenia (risk of bleeding disorders).")
	case StatusHigh:
		add("Thrombocytosis (possible inflammation or myeloproliferative disorder).")
	}

	for _, p := range WBCDifferentials {
		switch status(p) {
		case StatusHigh:
			add(fmt.Sprintf("High %s count.", p))
		case StatusLow:
			add(fmt.Sprintf("Low %s count.", p))
		}
	}

	if status(ParamESR) == StatusHigh {
		add("Elevated ESR indicates inflammation or chronic disease.")
	}

	return hints
}
