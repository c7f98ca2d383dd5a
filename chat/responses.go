/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package chat

import (
	"fmt"
	"strings"

	"github.com/hemolens/hemolens/cbc"
)

// formatValue renders a measurement to two decimal places with its
// unit, or a placeholder when the report carried no value.
func formatValue(entry *cbc.AssessedValue) string {
	if entry == nil || entry.Value == nil {
		return "not measured"
	}
	return strings.TrimSpace(fmt.Sprintf("%.2f %s", *entry.Value, entry.Unit))
}

// parameterDescriptions are one-line lay explanations used by the
// definition generator.
var parameterDescriptions = map[cbc.Parameter]struct {
	name   string
	simple string
}{
	cbc.ParamHemoglobin:  {"Hemoglobin", "the protein in red blood cells that carries oxygen"},
	cbc.ParamLeukocytes:  {"White Blood Cells (WBC)", "your immune system's defense team"},
	cbc.ParamRBC:         {"Red Blood Cells (RBC)", "cells that carry oxygen throughout your body"},
	cbc.ParamPlatelets:   {"Platelets", "cell fragments that help your blood clot"},
	cbc.ParamHematocrit:  {"Hematocrit", "the percentage of your blood made up of red blood cells"},
	cbc.ParamMCV:         {"MCV", "the average size of your red blood cells"},
	cbc.ParamMCH:         {"MCH", "the average amount of hemoglobin per red blood cell"},
	cbc.ParamMCHC:        {"MCHC", "the concentration of hemoglobin inside red blood cells"},
	cbc.ParamRDWCV:       {"RDW-CV", "how much your red blood cells vary in size"},
	cbc.ParamRDWSD:       {"RDW-SD", "how much your red blood cells vary in size"},
	cbc.ParamNeutrophils: {"Neutrophils", "white cells that fight bacterial infections"},
	cbc.ParamLymphocytes: {"Lymphocytes", "white cells that fight viruses and support immunity"},
	cbc.ParamMonocytes:   {"Monocytes", "white cells that clean up debris and aid repair"},
	cbc.ParamEosinophils: {"Eosinophils", "white cells involved in allergies and parasites"},
	cbc.ParamBasophils:   {"Basophils", "white cells involved in allergic responses"},
	cbc.ParamESR:         {"ESR", "how quickly red cells settle, a marker of inflammation"},
}

// statusLeads open the advice responses with the parameter, its
// direction and the measured value.
func statusLead(param cbc.Parameter, entry *cbc.AssessedValue) string {
	info, ok := parameterDescriptions[param]
	name := string(param)
	if ok {
		name = info.name
	}
	return fmt.Sprintf("Your %s is %s (%s).", name, strings.ToLower(string(entry.Status)), formatValue(entry))
}

// highAdvice returns actionable guidance for an elevated parameter,
// with parameter-specific cause blocks and a generic fallback.
func highAdvice(param cbc.Parameter, entry *cbc.AssessedValue) string {
	lead := statusLead(param, entry)

	switch param {
	case cbc.ParamLymphocytes, cbc.ParamMonocytes, cbc.ParamEosinophils, cbc.ParamBasophils, cbc.ParamNeutrophils:
		return lead + "\n\nCommon causes and suggestions:\n" +
			"- Often related to infection, allergy, inflammation, or recovery.\n" +
			"- Rest, hydration, and treating any known infections or allergies usually help.\n" +
			"- If levels remain high or you have concerning symptoms (fever, weight loss, night sweats), see your doctor.\n" +
			"- Your clinician may repeat the test or order targeted tests such as an allergy or infection screen."
	case cbc.ParamHematocrit:
		return lead + "\n\nWhat to try:\n" +
			"- Drink more fluids; dehydration often raises hematocrit.\n" +
			"- Avoid smoking; treat sleep apnea if present.\n" +
			"- If persistent, your clinician may check oxygenation and kidney function."
	case cbc.ParamMCV, cbc.ParamMCH:
		return lead + "\n\nLikely causes and next steps:\n" +
			"- Consider B12 or folate deficiency, alcohol use, or medication effects.\n" +
			"- Blood tests for B12, folate, and liver function are common next steps.\n" +
			"- Supplements or dietary changes often help when a deficiency is confirmed."
	case cbc.ParamMCHC:
		return lead + "\n\nThis finding is less common:\n" +
			"- It may relate to specific red cell conditions or lab variation.\n" +
			"- Your clinician may repeat the test and consider further hematology workup."
	case cbc.ParamRDWCV, cbc.ParamRDWSD:
		return lead + "\n\nInterpretation and suggestions:\n" +
			"- A rising RDW often means mixed cell sizes; look for nutrient deficiencies.\n" +
			"- Tests for iron, B12, and folate are commonly ordered."
	}

	return lead + "\n\nGeneral advice for elevated values:\n" +
		"- Many elevated values are temporary (illness, dehydration, stress).\n" +
		"- Stay hydrated, rest, and follow up with your clinician if it persists.\n" +
		"- Bring this report to your appointment so your provider can interpret it in context."
}

// lowAdvice returns actionable guidance for a low parameter.
func lowAdvice(param cbc.Parameter, entry *cbc.AssessedValue) string {
	lead := statusLead(param, entry)

	switch param {
	case cbc.ParamHemoglobin, cbc.ParamRBC, cbc.ParamHematocrit:
		return lead + "\n\nCommon causes and actions:\n" +
			"- Low values often reflect anemia caused by iron deficiency, chronic disease, or blood loss.\n" +
			"- Dietary iron, B12, and folate intake matter; your clinician may order iron studies and ferritin.\n" +
			"- If you feel symptomatic (fatigue, breathlessness), seek medical advice promptly."
	case cbc.ParamPlatelets:
		return lead + "\n\nLow platelets (thrombocytopenia) may be due to:\n" +
			"- Viral infections, some medications, or immune causes.\n" +
			"- Avoid NSAIDs and blood thinners until reviewed if platelets are low.\n" +
			"- Your clinician may repeat the test and investigate if platelets are significantly low."
	case cbc.ParamNeutrophils:
		return lead + "\n\nLow neutrophils (neutropenia) are important to monitor:\n" +
			"- They may increase infection risk; avoid contact with sick people and practice good hygiene.\n" +
			"- Your clinician may repeat the test and review medications."
	case cbc.ParamLymphocytes, cbc.ParamMonocytes, cbc.ParamEosinophils, cbc.ParamBasophils:
		return lead + "\n\nLow levels:\n" +
			"- Can reflect recent illness, certain medications, or immune changes.\n" +
			"- Often transient; if persistent, your clinician will investigate further."
	case cbc.ParamMCV, cbc.ParamMCH, cbc.ParamMCHC, cbc.ParamRDWCV, cbc.ParamRDWSD:
		return lead + "\n\nLow red cell indices:\n" +
			"- Often suggest iron deficiency or microcytic anemia.\n" +
			"- Iron studies and dietary evaluation are usually recommended."
	}

	return lead + "\n\nGeneral advice for lower-than-normal values:\n" +
		"- Many low values are manageable with nutrition, medication review, or treating underlying causes.\n" +
		"- Consult your clinician for targeted tests and personalized treatment."
}

// overallStatus answers "is everything normal" style questions from
// the abnormal parameter list.
func overallStatus(a cbc.Assessment) string {
	abnormal := a.AbnormalParameters()
	if len(abnormal) == 0 {
		return "Everything in your CBC report looks normal! Your blood parameters are within healthy ranges."
	}

	names := make([]string, 0, 3)
	for i, p := range abnormal {
		if i == 3 {
			break
		}
		names = append(names, string(p))
	}

	more := ""
	if len(abnormal) > 3 {
		more = " and more"
	}

	return fmt.Sprintf("Your report shows some values that need attention: %s%s.\n\n"+
		"It's not necessarily serious, but you should discuss these with your doctor to understand them better. "+
		"Would you like me to explain any of these values?", strings.Join(names, ", "), more)
}

// reassurance answers worry questions. When a specific parameter is
// named it addresses that value, otherwise it summarizes how many
// values are flagged.
func reassurance(question string, a cbc.Assessment) string {
	param, entry := findMeasuredParameter(question, a)
	if entry != nil {
		if entry.Status == cbc.StatusNormal {
			return fmt.Sprintf("No need to worry: your %s is within the normal range (%s).", param, formatValue(entry))
		}
		return fmt.Sprintf("I understand the concern. Your %s is %s (%s). "+
			"Many mild abnormalities are temporary. Please discuss this with your healthcare provider for personalized advice.",
			param, strings.ToLower(string(entry.Status)), formatValue(entry))
	}

	abnormal := a.AbnormalParameters()
	if len(abnormal) == 0 {
		return "Great news: no significant abnormalities were detected in your CBC."
	}
	return fmt.Sprintf("I see %d parameter(s) outside reference ranges. "+
		"Many causes are temporary; please follow up with your clinician for tailored guidance.", len(abnormal))
}

// whatToDo returns practical advice for a named parameter, or a
// general action plan when the question names none.
func whatToDo(question string, a cbc.Assessment) string {
	param, entry := findMeasuredParameter(question, a)
	if entry != nil {
		switch entry.Status {
		case cbc.StatusHigh:
			return highAdvice(param, entry)
		case cbc.StatusLow:
			return lowAdvice(param, entry)
		}
		return fmt.Sprintf("Your %s is within the normal range (%s).\n"+
			"Maintain healthy habits: balanced diet, hydration, sleep, and exercise.", param, formatValue(entry))
	}
	return generalActionPlan(a)
}

// highLowAdvice handles directional questions. When the claimed
// direction contradicts the actual status it returns a reassuring
// correction. Returns "" when no measured parameter is named.
func highLowAdvice(question string, a cbc.Assessment) string {
	param, entry := findMeasuredParameter(question, a)
	if entry == nil {
		return ""
	}

	askingHigh := containsAnyPhrase(question, []string{"high", "elevated", "increase", "above"})
	askingLow := containsAnyPhrase(question, []string{"low", "decrease", "reduced", "below"})

	switch {
	case askingHigh && entry.Status == cbc.StatusHigh:
		return highAdvice(param, entry)
	case askingLow && entry.Status == cbc.StatusLow:
		return lowAdvice(param, entry)
	case askingHigh:
		return fmt.Sprintf("Good news: your %s is not high. It's %s (%s).",
			param, strings.ToLower(string(entry.Status)), formatValue(entry))
	case askingLow:
		return fmt.Sprintf("Good news: your %s is not low. It's %s (%s).",
			param, strings.ToLower(string(entry.Status)), formatValue(entry))
	case entry.Status == cbc.StatusHigh:
		return highAdvice(param, entry)
	case entry.Status == cbc.StatusLow:
		return lowAdvice(param, entry)
	}

	return ""
}

// explanation answers "what is X" questions with a lay definition plus
// the current value, status and range.
func explanation(question string, a cbc.Assessment) string {
	param, entry := findMeasuredParameter(question, a)
	if entry == nil {
		return ""
	}

	info, ok := parameterDescriptions[param]
	if !ok {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s.\n\n", info.name, info.simple)
	fmt.Fprintf(&sb, "Your value: %s\n", formatValue(entry))
	fmt.Fprintf(&sb, "Status: %s\n", entry.Status)
	if entry.Range != "" {
		fmt.Fprintf(&sb, "Normal range: %s\n", entry.Range)
	}
	return sb.String()
}

// valueResponse reports the current value, status and range for a
// named parameter. When the parameter was named but not measured it
// says so instead of failing.
func valueResponse(question string, a cbc.Assessment) string {
	param, entry := findMeasuredParameter(question, a)
	if entry != nil {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %s\n\n", param, formatValue(entry))

		switch entry.Status {
		case cbc.StatusNormal:
			sb.WriteString("Status: within normal range, nothing specific needed.\n")
		case cbc.StatusHigh:
			sb.WriteString("Status: elevated, consider follow-up and reviewing causes.\n")
		case cbc.StatusLow:
			sb.WriteString("Status: below reference, may need evaluation depending on symptoms.\n")
		default:
			sb.WriteString("Status: no reference range available.\n")
		}

		if entry.Range != "" {
			fmt.Fprintf(&sb, "\nNormal range: %s\n", entry.Range)
		}
		sb.WriteString("\nAsk me 'what to do' if you'd like specific suggestions.")
		return sb.String()
	}

	if param, ok := mentionedParameter(question); ok {
		return fmt.Sprintf("I couldn't find %s in this report. It may not have been measured, or the report hasn't been analyzed yet.", param)
	}

	return ""
}

// normalRanges renders the full static reference table.
func normalRanges() string {
	var sb strings.Builder
	sb.WriteString("CBC Normal Ranges (typical)\n\n")
	for _, line := range cbc.ReferenceTableLines() {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\nRanges vary by lab and patient. Ask about a specific parameter for details.")
	return sb.String()
}

// reportSummary produces the full overview: patient metadata, counts
// of normal vs abnormal parameters, and the flagged entries.
func reportSummary(report cbc.ParsedReport, a cbc.Assessment) string {
	age := "N/A"
	if report.Age != nil {
		age = fmt.Sprintf("%d", *report.Age)
	}
	sex := "N/A"
	if report.Sex != nil {
		sex = *report.Sex
	}

	var normal, abnormal []string
	for _, p := range cbc.AllParameters {
		entry := a.Assessed[p]
		if entry.Value == nil {
			continue
		}
		line := fmt.Sprintf("%s: %s", p, formatValue(&entry))
		if entry.Status == cbc.StatusNormal {
			normal = append(normal, line)
		} else {
			abnormal = append(abnormal, fmt.Sprintf("%s (%s)", line, entry.Status))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CBC Summary\nPatient: Age %s, %s\n\n", age, sex)
	fmt.Fprintf(&sb, "Analyzed parameters: %d\n", len(normal)+len(abnormal))
	fmt.Fprintf(&sb, "Normal: %d\nOutside range: %d\n\n", len(normal), len(abnormal))

	if len(abnormal) == 0 {
		sb.WriteString("All values fall within reference ranges. Great job!")
		return sb.String()
	}

	sb.WriteString("Parameters needing attention:\n")
	for _, line := range abnormal {
		fmt.Fprintf(&sb, "- %s\n", line)
	}
	sb.WriteString("\nPlease review these with your clinician.")
	return sb.String()
}

// comparison renders a side-by-side view of the parameters named in
// the question. Returns "" unless at least two are recognized.
func comparison(question string, a cbc.Assessment) string {
	mentioned := mentionedParameters(question)
	if len(mentioned) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Comparison of mentioned parameters:\n")
	for i, p := range mentioned {
		if i == 5 {
			break
		}
		entry := a.Assessed[p]
		fmt.Fprintf(&sb, "- %s: %s (%s)\n", p, formatValue(&entry), entry.Status)
	}
	sb.WriteString("\nNote: each parameter conveys different information; review with your clinician for full context.")
	return sb.String()
}

func cbcGeneralInfo() string {
	return "Complete Blood Count (CBC): a standard test measuring red cells, white cells, and platelets.\n\n" +
		"Ask about any specific parameter for tailored info, e.g. 'What is hemoglobin?'."
}

// generalActionPlan summarizes next steps across all flagged values.
func generalActionPlan(a cbc.Assessment) string {
	abnormal := a.AbnormalParameters()
	if len(abnormal) == 0 {
		return "Your CBC looks good overall. Maintain a balanced diet, hydration, activity, and routine follow-up with your healthcare provider."
	}

	var sb strings.Builder
	sb.WriteString("Action plan:\n")
	for i, p := range abnormal {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "- %s: %s\n", p, a.Assessed[p].Status)
	}
	sb.WriteString("\nSchedule a follow-up with your clinician to interpret these in your full medical context. " +
		"Bring this report and any symptoms you're experiencing.")
	return sb.String()
}

// smartGuidance is the last-resort generator: a named parameter's
// snapshot, or discussion prompts for flagged values, or a capability
// statement.
func smartGuidance(question string, a cbc.Assessment) string {
	for _, s := range parameterSynonyms {
		if !strings.Contains(question, s.keyword) {
			continue
		}
		entry, ok := a.Assessed[s.param]
		if !ok {
			continue
		}
		return fmt.Sprintf("%s: %s (%s)\n"+
			"Ask: 'What does this mean?', 'What should I do?', or 'What's the normal range?'",
			s.param, formatValue(&entry), entry.Status)
	}

	abnormal := a.AbnormalParameters()
	if len(abnormal) > 0 {
		return fmt.Sprintf("I see some values outside reference ranges. Try asking:\n"+
			"- 'Give me a summary'\n- 'What should I do about my %s?'", strings.ToLower(string(abnormal[0])))
	}

	return "I can explain parameters, give normal ranges, or summarize your report. Try: 'What is hemoglobin?' or 'Give me a summary.'"
}
