// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/hemolens/hemolens/cbc"
)

func floatPtr(f float64) *float64 { return &f }

func sampleReport(t *testing.T, ctx context.Context, userName string) *Report {
	t.Helper()

	user, err := GetOrCreateUser(ctx, userName)
	if err != nil {
		t.Fatalf("GetOrCreateUser failed: %v", err)
	}

	age := 30
	sex := cbc.SexMale
	parameters := map[cbc.Parameter]*float64{
		cbc.ParamHemoglobin: floatPtr(11.5),
		cbc.ParamPlatelets:  floatPtr(210000),
	}
	for _, p := range cbc.AllParameters {
		if _, ok := parameters[p]; !ok {
			parameters[p] = nil
		}
	}

	assessment := cbc.Assess(parameters, &age, &sex, nil)

	report := &Report{
		UserID:     user.ID,
		SourceText: "Hemoglobin 11.5 g/dL",
		Age:        &age,
		Sex:        &sex,
		Parameters: parameters,
		Assessment: assessment.Assessed,
	}
	if err := SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	return report
}

func TestGetOrCreateUserIsCaseInsensitive(t *testing.T) {
	resetDatabase(t)
	ctx := context.Background()

	first, err := GetOrCreateUser(ctx, "Alice")
	if err != nil {
		t.Fatalf("GetOrCreateUser failed: %v", err)
	}

	second, err := GetOrCreateUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetOrCreateUser failed: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same user, got %s and %s", first.ID, second.ID)
	}
}

func TestSaveAndGetReport(t *testing.T) {
	resetDatabase(t)
	ctx := context.Background()

	saved := sampleReport(t, ctx, "Bob")

	loaded, err := GetReport(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}

	if loaded.Age == nil || *loaded.Age != 30 {
		t.Fatalf("expected age 30, got %v", loaded.Age)
	}

	hgb := loaded.Parameters[cbc.ParamHemoglobin]
	if hgb == nil || *hgb != 11.5 {
		t.Fatalf("expected hemoglobin 11.5, got %v", hgb)
	}

	if loaded.Assessment[cbc.ParamHemoglobin].Status != cbc.StatusLow {
		t.Fatalf("expected Low hemoglobin, got %s", loaded.Assessment[cbc.ParamHemoglobin].Status)
	}
}

func TestGetUserReportsOrder(t *testing.T) {
	resetDatabase(t)
	ctx := context.Background()

	first := sampleReport(t, ctx, "Carol")
	second := sampleReport(t, ctx, "Carol")

	reports, err := GetUserReports(ctx, first.UserID, 10)
	if err != nil {
		t.Fatalf("GetUserReports failed: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	// Most recent first.
	if reports[0].ID != second.ID {
		t.Fatalf("expected newest report first")
	}
}

func TestUpdateReportParameter(t *testing.T) {
	resetDatabase(t)
	ctx := context.Background()

	saved := sampleReport(t, ctx, "Dave")

	updated, err := UpdateReportParameter(ctx, saved.ID, cbc.ParamHemoglobin, floatPtr(14.5))
	if err != nil {
		t.Fatalf("UpdateReportParameter failed: %v", err)
	}

	if updated.Assessment[cbc.ParamHemoglobin].Status != cbc.StatusNormal {
		t.Fatalf("expected reassessed Normal, got %s", updated.Assessment[cbc.ParamHemoglobin].Status)
	}

	loaded, err := GetReport(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if v := loaded.Parameters[cbc.ParamHemoglobin]; v == nil || *v != 14.5 {
		t.Fatalf("expected persisted 14.5, got %v", v)
	}
}

func TestGetParameterHistory(t *testing.T) {
	resetDatabase(t)
	ctx := context.Background()

	first := sampleReport(t, ctx, "Eve")
	sampleReport(t, ctx, "Eve")

	points, err := GetParameterHistory(ctx, first.UserID, cbc.ParamHemoglobin, 10)
	if err != nil {
		t.Fatalf("GetParameterHistory failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	// Chronological order for trend charts.
	if points[0].ReportDate.After(points[1].ReportDate) {
		t.Fatalf("expected oldest point first")
	}
}
