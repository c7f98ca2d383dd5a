// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
//
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"strings"
	"testing"

	"github.com/hemolens/hemolens/cbc"
)

func ptr(f float64) *float64 { return &f }

// testAssessment builds an assessment with every key present and the
// given overrides measured.
func testAssessment(values map[cbc.Parameter]cbc.AssessedValue) cbc.Assessment {
	assessed := make(map[cbc.Parameter]cbc.AssessedValue, len(cbc.AllParameters))
	for _, p := range cbc.AllParameters {
		assessed[p] = cbc.AssessedValue{Status: cbc.StatusNA, Range: "N/A"}
	}
	for p, v := range values {
		assessed[p] = v
	}
	return cbc.Assessment{
		Assessed:       assessed,
		AbsoluteCounts: map[string]cbc.AbsoluteCount{},
	}
}

func normalAssessment() cbc.Assessment {
	return testAssessment(map[cbc.Parameter]cbc.AssessedValue{
		cbc.ParamHemoglobin: {Value: ptr(14.5), Status: cbc.StatusNormal, Unit: "g/dL", Range: "13.0-17.0"},
		cbc.ParamPlatelets:  {Value: ptr(250000), Status: cbc.StatusNormal, Unit: "/µL", Range: "150000.0-450000.0"},
	})
}

func TestAnswerCasualGreeting(t *testing.T) {
	t.Parallel()

	got := Answer("hi", cbc.ParsedReport{}, normalAssessment())
	want := "Hi there! How can I help you understand your CBC report today?"
	if got != want {
		t.Fatalf("expected canned greeting, got %q", got)
	}
}

func TestAnswerCasualNotInsideWords(t *testing.T) {
	t.Parallel()

	// "high" contains "hi" but must not trigger the greeting.
	a := testAssessment(map[cbc.Parameter]cbc.AssessedValue{
		cbc.ParamPlatelets: {Value: ptr(520000), Status: cbc.StatusHigh, Unit: "/µL", Range: "150000.0-450000.0"},
	})
	got := Answer("why is my platelet count high", cbc.ParsedReport{}, a)
	if strings.Contains(got, "Hi there!") {
		t.Fatalf("greeting fired inside 'high': %q", got)
	}
	if !strings.Contains(got, "Platelets") {
		t.Fatalf("expected platelet advice, got %q", got)
	}
}

func TestAnswerWorryBeatsHighLow(t *testing.T) {
	t.Parallel()

	a := testAssessment(map[cbc.Parameter]cbc.AssessedValue{
		cbc.ParamHemoglobin: {Value: ptr(11.2), Status: cbc.StatusLow, Unit: "g/dL", Range: "13.0-17.0"},
	})

	got := Answer("Should I worry, is my hemoglobin low?", cbc.ParsedReport{}, a)
	if !strings.Contains(got, "HEMOGLOBIN") {
		t.Fatalf("worry response should reference hemoglobin, got %q", got)
	}
	if !strings.Contains(got, "11.20 g/dL") {
		t.Fatalf("worry response should include the measured value, got %q", got)
	}
}

func TestAnswerHealthCheckWithAbnormal(t *testing.T) {
	t.Parallel()

	a := testAssessment(map[cbc.Parameter]cbc.AssessedValue{
		cbc.ParamHemoglobin: {Value: ptr(14.5), Status: cbc.StatusNormal, Unit: "g/dL", Range: "13.0-17.0"},
		cbc.ParamPlatelets:  {Value: ptr(520000), Status: cbc.StatusHigh, Unit: "/µL", Range: "150000.0-450000.0"},
	})

	got := Answer("is everything normal?", cbc.ParsedReport{}, a)
	if !strings.Contains(got, "PLATELET COUNT") {
		t.Fatalf("expected abnormal parameter named in %q", got)
	}
	if strings.Contains(got, "looks normal") {
		t.Fatalf("must not declare a report with a High value normal: %q", got)
	}
}

func TestAnswerHealthCheckAllNormal(t *testing.T) {
	t.Parallel()

	got := Answer("is everything okay", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "looks normal") {
		t.Fatalf("expected all-clear response, got %q", got)
	}
}

func TestAnswerDirectionMismatch(t *testing.T) {
	t.Parallel()

	got := Answer("is my hemoglobin high?", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "not high") {
		t.Fatalf("expected direction correction, got %q", got)
	}
}

func TestAnswerWhatIs(t *testing.T) {
	t.Parallel()

	got := Answer("what is hemoglobin?", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "carries oxygen") {
		t.Fatalf("expected definition, got %q", got)
	}
	if !strings.Contains(got, "14.50 g/dL") {
		t.Fatalf("expected current value in definition, got %q", got)
	}
}

func TestAnswerMyValueUnmeasured(t *testing.T) {
	t.Parallel()

	got := Answer("what is my esr value?", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "couldn't find ESR") {
		t.Fatalf("expected unmeasured notice, got %q", got)
	}
}

func TestAnswerNormalRangesWithoutParameter(t *testing.T) {
	t.Parallel()

	got := Answer("show me the normal ranges", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "13.0-17.0") || !strings.Contains(got, "4500.0-11000.0") {
		t.Fatalf("expected reference table, got %q", got)
	}
}

func TestAnswerSummary(t *testing.T) {
	t.Parallel()

	age := 30
	sex := "M"
	report := cbc.ParsedReport{Age: &age, Sex: &sex}

	got := Answer("give me a summary", report, normalAssessment())
	if !strings.Contains(got, "Age 30, M") {
		t.Fatalf("expected patient metadata, got %q", got)
	}
	if !strings.Contains(got, "All values fall within reference ranges") {
		t.Fatalf("expected all-clear summary, got %q", got)
	}
}

func TestAnswerComparison(t *testing.T) {
	t.Parallel()

	got := Answer("compare hemoglobin and platelets", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "HEMOGLOBIN") || !strings.Contains(got, "PLATELET COUNT") {
		t.Fatalf("expected both parameters, got %q", got)
	}
}

func TestAnswerCBCGeneral(t *testing.T) {
	t.Parallel()

	got := Answer("cbc", cbc.ParsedReport{}, normalAssessment())
	if !strings.Contains(got, "Complete Blood Count") {
		t.Fatalf("expected general CBC info, got %q", got)
	}
}

func TestAnswerFallback(t *testing.T) {
	t.Parallel()

	got := Answer("", cbc.ParsedReport{}, normalAssessment())
	if got != fallbackResponse {
		t.Fatalf("expected fallback for empty question, got %q", got)
	}
}

func TestAnswerRecoversFromNilAssessment(t *testing.T) {
	t.Parallel()

	// A nil Assessed map must not crash the router.
	got := Answer("give me a summary of everything", cbc.ParsedReport{}, cbc.Assessment{})
	if got == "" {
		t.Fatal("expected non-empty response")
	}
}
