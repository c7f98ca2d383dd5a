// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cbc

import (
	"math"
	"reflect"
	"testing"
)

const sampleReport = `ABC Diagnostics Laboratory
Patient Name: Test Patient
Age/Gender: 30/M

COMPLETE BLOOD COUNT

Hemoglobin 11.5 g/dL 13.0-17.0
Total Leukocyte Count 8.0 10^3/uL 4.5-11.0
Platelet Count 2.1 Lacs Per cmm 1.5-4.5
Hematocrit 42 % 40-50
MCV 88 fL 80-100
Neutrophils 55 % 40-80
Lymphocytes 35 % 20-40
ESR 12 mm/hr up to 20`

func TestExtractSampleReport(t *testing.T) {
	t.Parallel()

	report := Extract(sampleReport)

	if report.Age == nil || *report.Age != 30 {
		t.Fatalf("expected age 30, got %v", report.Age)
	}

	if report.Sex == nil || *report.Sex != SexMale {
		t.Fatalf("expected sex Male, got %v", report.Sex)
	}

	assertParamValue(t, report, ParamHemoglobin, 11.5)
	assertParamValue(t, report, ParamLeukocytes, 8000)
	assertParamValue(t, report, ParamPlatelets, 210_000)
	assertParamValue(t, report, ParamHematocrit, 42)
	assertParamValue(t, report, ParamMCV, 88)
	assertParamValue(t, report, ParamNeutrophils, 55)
	assertParamValue(t, report, ParamLymphocytes, 35)
	assertParamValue(t, report, ParamESR, 12)

	hgbRange := report.Ranges[ParamHemoglobin]
	if hgbRange == nil || hgbRange.Low != 13.0 || hgbRange.High != 17.0 {
		t.Fatalf("expected printed hemoglobin range 13.0-17.0, got %v", hgbRange)
	}

	esrRange := report.Ranges[ParamESR]
	if esrRange == nil || esrRange.Low != 0 || esrRange.High != 20 {
		t.Fatalf("expected synthesized ESR range 0-20, got %v", esrRange)
	}

	if report.Parameters[ParamBasophils] != nil {
		t.Fatalf("expected nil value for unmatched basophils")
	}

	if report.RawParameters[ParamBasophils].Raw != nil {
		t.Fatalf("expected nil raw token for unmatched basophils")
	}
}

func TestExtractKeyCompleteness(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "no blood values here", sampleReport}
	for _, input := range inputs {
		report := Extract(input)

		if len(report.Parameters) != len(AllParameters) {
			t.Fatalf("expected %d parameter keys, got %d", len(AllParameters), len(report.Parameters))
		}

		if len(report.RawParameters) != len(AllParameters) {
			t.Fatalf("expected %d raw parameter keys, got %d", len(AllParameters), len(report.RawParameters))
		}

		if len(report.Ranges) != len(AllParameters) {
			t.Fatalf("expected %d range keys, got %d", len(AllParameters), len(report.Ranges))
		}

		for _, p := range AllParameters {
			if _, ok := report.Parameters[p]; !ok {
				t.Fatalf("missing parameter key %s", p)
			}
		}
	}
}

func TestExtractIdempotent(t *testing.T) {
	t.Parallel()

	first := Extract(sampleReport)
	second := Extract(sampleReport)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestExtractUnitNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		key  Parameter
		want float64
	}{
		{name: "hemoglobin g/L to g/dL", text: "Hemoglobin 120 g/L", key: ParamHemoglobin, want: 12.0},
		{name: "hemoglobin g/dL unchanged", text: "Hemoglobin 12.5 g/dL", key: ParamHemoglobin, want: 12.5},
		{name: "leukocytes thousands scaled", text: "TLC 7.5 10^3/uL", key: ParamLeukocytes, want: 7500},
		{name: "leukocytes bare unit scaled", text: "WBC 7.5", key: ParamLeukocytes, want: 7500},
		{name: "rbc millions scaled", text: "RBC 4.8 million/cumm", key: ParamRBC, want: 4_800_000},
		{name: "platelets lakh scaled", text: "Platelet Count 1.8 Lacs", key: ParamPlatelets, want: 180_000},
		{name: "platelets thousands scaled", text: "PLT 250 10^3", key: ParamPlatelets, want: 250_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := Extract(tt.text)
			assertParamValue(t, report, tt.key, tt.want)
		})
	}
}

func TestExtractRDWFallback(t *testing.T) {
	t.Parallel()

	t.Run("generic RDW fills RDW-CV", func(t *testing.T) {
		t.Parallel()

		report := Extract("Red Cell Distribution Width 13.2 %")
		assertParamValue(t, report, ParamRDWCV, 13.2)
	})

	t.Run("specific RDW-CV wins", func(t *testing.T) {
		t.Parallel()

		report := Extract("RDW-CV 12.1 %\nRDW 15.9 %")
		assertParamValue(t, report, ParamRDWCV, 12.1)
	})
}

func TestExtractAgeSexVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		wantAge *int
		wantSex *string
	}{
		{name: "combined slash form", text: "Age/Gender: 45/F", wantAge: intPtr(45), wantSex: strPtr(SexFemale)},
		{name: "separate fields", text: "Age: 62\nSex: Male", wantAge: intPtr(62), wantSex: strPtr(SexMale)},
		{name: "gender word form", text: "Gender: female", wantAge: nil, wantSex: strPtr(SexFemale)},
		{name: "other sex capitalized", text: "Sex: Other", wantAge: nil, wantSex: strPtr("Other")},
		{name: "absent metadata", text: "Hemoglobin 12 g/dL", wantAge: nil, wantSex: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := Extract(tt.text)

			switch {
			case tt.wantAge == nil && report.Age != nil:
				t.Fatalf("expected nil age, got %d", *report.Age)
			case tt.wantAge != nil && (report.Age == nil || *report.Age != *tt.wantAge):
				t.Fatalf("expected age %d, got %v", *tt.wantAge, report.Age)
			}

			switch {
			case tt.wantSex == nil && report.Sex != nil:
				t.Fatalf("expected nil sex, got %s", *report.Sex)
			case tt.wantSex != nil && (report.Sex == nil || *report.Sex != *tt.wantSex):
				t.Fatalf("expected sex %s, got %v", *tt.wantSex, report.Sex)
			}
		})
	}
}

func TestExtractValueOnFollowingLine(t *testing.T) {
	t.Parallel()

	// OCR often splits a table row across lines; the lookahead window
	// has to pick up the value from a later line.
	report := Extract("Hemoglobin\ng/dL\n14.2\n13.0-17.0")
	assertParamValue(t, report, ParamHemoglobin, 14.2)
}

func TestNormalizeLines(t *testing.T) {
	t.Parallel()

	lines := NormalizeLines("  first\tline \r\n\n second line\r")
	want := []string{"first line", "second line"}

	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
}

func TestParseNumberString(t *testing.T) {
	t.Parallel()

	if v := parseNumberString("4,500"); v == nil || *v != 4500 {
		t.Fatalf("expected 4500, got %v", v)
	}

	if v := parseNumberString("<0.5"); v == nil || *v != 0.5 {
		t.Fatalf("expected 0.5, got %v", v)
	}

	if v := parseNumberString("n/a"); v != nil {
		t.Fatalf("expected nil for unparseable token, got %v", *v)
	}
}

func assertParamValue(t *testing.T, report ParsedReport, p Parameter, want float64) {
	t.Helper()

	got := report.Parameters[p]
	if got == nil {
		t.Fatalf("expected %s value %v, got nil", p, want)
	}

	if math.Abs(*got-want) > 1e-9 {
		t.Fatalf("expected %s value %v, got %v", p, want, *got)
	}
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
