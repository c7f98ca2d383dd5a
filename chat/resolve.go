/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package chat

import (
	"strings"

	"github.com/hemolens/hemolens/cbc"
)

type synonym struct {
	keyword string
	param   cbc.Parameter
}

// parameterSynonyms maps lowercase keyword variants to canonical
// parameters. First hit wins, so longer keywords sharing a prefix with
// a sibling ("mchc" vs "mch") come first.
var parameterSynonyms = []synonym{
	{"hemoglobin", cbc.ParamHemoglobin},
	{"haemoglobin", cbc.ParamHemoglobin},
	{"hgb", cbc.ParamHemoglobin},
	{"hb", cbc.ParamHemoglobin},

	{"white blood cell", cbc.ParamLeukocytes},
	{"white blood", cbc.ParamLeukocytes},
	{"leukocyte", cbc.ParamLeukocytes},
	{"leucocyte", cbc.ParamLeukocytes},
	{"wbc", cbc.ParamLeukocytes},
	{"tlc", cbc.ParamLeukocytes},

	{"red blood cell", cbc.ParamRBC},
	{"red blood", cbc.ParamRBC},
	{"red cell count", cbc.ParamRBC},
	{"erythrocyte", cbc.ParamRBC},
	{"rbc", cbc.ParamRBC},

	{"platelet", cbc.ParamPlatelets},
	{"thrombocyte", cbc.ParamPlatelets},
	{"plt", cbc.ParamPlatelets},

	{"hematocrit", cbc.ParamHematocrit},
	{"haematocrit", cbc.ParamHematocrit},
	{"packed cell volume", cbc.ParamHematocrit},
	{"hct", cbc.ParamHematocrit},
	{"pcv", cbc.ParamHematocrit},

	{"mean corpuscular volume", cbc.ParamMCV},
	{"cell size", cbc.ParamMCV},
	{"mcv", cbc.ParamMCV},

	{"mean corpuscular hemoglobin concentration", cbc.ParamMCHC},
	{"mchc", cbc.ParamMCHC},
	{"mean corpuscular hemoglobin", cbc.ParamMCH},
	{"mch", cbc.ParamMCH},

	{"red cell distribution width", cbc.ParamRDWCV},
	{"rdw-sd", cbc.ParamRDWSD},
	{"rdw-cv", cbc.ParamRDWCV},
	{"rdw", cbc.ParamRDWCV},

	{"neutrophil", cbc.ParamNeutrophils},
	{"neutro", cbc.ParamNeutrophils},
	{"neut", cbc.ParamNeutrophils},
	{"polymorph", cbc.ParamNeutrophils},
	{"pmn", cbc.ParamNeutrophils},

	{"lymphocyte", cbc.ParamLymphocytes},
	{"lympho", cbc.ParamLymphocytes},
	{"lymph", cbc.ParamLymphocytes},

	{"monocyte", cbc.ParamMonocytes},
	{"mono", cbc.ParamMonocytes},

	{"eosinophil", cbc.ParamEosinophils},
	{"eosino", cbc.ParamEosinophils},
	{"eos", cbc.ParamEosinophils},

	{"basophil", cbc.ParamBasophils},
	{"baso", cbc.ParamBasophils},

	{"erythrocyte sedimentation rate", cbc.ParamESR},
	{"sedimentation rate", cbc.ParamESR},
	{"esr", cbc.ParamESR},
}

// findMeasuredParameter resolves the first parameter mentioned in the
// lowercased question that carries a measured value in the assessment.
// Canonical parameter names appearing literally in the question serve
// as a fallback after the synonym table.
func findMeasuredParameter(question string, a cbc.Assessment) (cbc.Parameter, *cbc.AssessedValue) {
	for _, s := range parameterSynonyms {
		if !strings.Contains(question, s.keyword) {
			continue
		}
		if entry, ok := a.Assessed[s.param]; ok && entry.Value != nil {
			return s.param, &entry
		}
	}

	for _, p := range cbc.AllParameters {
		if !strings.Contains(question, strings.ToLower(string(p))) {
			continue
		}
		if entry, ok := a.Assessed[p]; ok && entry.Value != nil {
			return p, &entry
		}
	}

	return "", nil
}

// mentionedParameter reports whether any synonym appears in the
// question, regardless of whether the parameter was measured.
func mentionedParameter(question string) (cbc.Parameter, bool) {
	for _, s := range parameterSynonyms {
		if strings.Contains(question, s.keyword) {
			return s.param, true
		}
	}
	return "", false
}

// mentionedParameters collects every distinct parameter the question
// names, in synonym table order.
func mentionedParameters(question string) []cbc.Parameter {
	var params []cbc.Parameter
	seen := make(map[cbc.Parameter]struct{})

	for _, s := range parameterSynonyms {
		if !strings.Contains(question, s.keyword) {
			continue
		}
		if _, ok := seen[s.param]; ok {
			continue
		}
		seen[s.param] = struct{}{}
		params = append(params, s.param)
	}

	return params
}

func containsAnyPhrase(question string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(question, phrase) {
			return true
		}
	}
	return false
}

// containsWord matches a phrase on word boundaries, so short casual
// phrases like "hi" or "ok" do not fire inside longer words.
func containsWord(question, phrase string) bool {
	for start := 0; ; {
		idx := strings.Index(question[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start

		end := idx + len(phrase)
		beforeOK := idx == 0 || !isWordChar(question[idx-1])
		afterOK := end == len(question) || !isWordChar(question[end])
		if beforeOK && afterOK {
			return true
		}

		start = idx + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '\''
}
