/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hemolens/hemolens/cbc"
)

// GetOrCreateUser returns the user with the given display name,
// creating it on first use. Names are matched case-insensitively.
func GetOrCreateUser(ctx context.Context, name string) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var user User

	err := pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE LOWER(name) = LOWER($1)
	`, name).Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO users (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`, name).Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("Created new user", "name", user.Name, "id", user.ID)

	return &user, nil
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var user User

	err := pool.QueryRow(ctx, `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Name, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// SaveReport persists an analyzed report. Parameters and assessment
// are serialized to JSONB.
func SaveReport(ctx context.Context, report *Report) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	parameters, err := json.Marshal(report.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}

	assessment, err := json.Marshal(report.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	err = pool.QueryRow(ctx, `
		INSERT INTO reports (user_id, filename, source_text, age, sex, parameters, assessment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, report.UserID, report.Filename, report.SourceText, report.Age, report.Sex,
		parameters, assessment).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// scanReport reads one report row including its JSONB payloads.
func scanReport(row pgx.Row) (*Report, error) {
	var report Report
	var parameters, assessment []byte

	err := row.Scan(&report.ID, &report.UserID, &report.Filename, &report.SourceText,
		&report.Age, &report.Sex, &parameters, &assessment, &report.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(parameters, &report.Parameters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parameters: %w", err)
	}
	if err := json.Unmarshal(assessment, &report.Assessment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}

	return &report, nil
}

// GetReport returns a single report by ID.
func GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	report, err := scanReport(pool.QueryRow(ctx, `
		SELECT id, user_id, filename, source_text, age, sex, parameters, assessment, created_at
		FROM reports
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}

	return report, nil
}

// GetUserReports returns a user's reports, most recent first.
func GetUserReports(ctx context.Context, userID uuid.UUID, limit int) ([]*Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = 20
	}

	rows, err := pool.Query(ctx, `
		SELECT id, user_id, filename, source_text, age, sex, parameters, assessment, created_at
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report

	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}

		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// UpdateReportParameter overwrites one extracted value on a stored
// report and recomputes the full assessment against the stored
// patient metadata.
func UpdateReportParameter(ctx context.Context, reportID uuid.UUID, param cbc.Parameter, value *float64) (*Report, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	report, err := GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if report.Parameters == nil {
		report.Parameters = make(map[cbc.Parameter]*float64, len(cbc.AllParameters))
	}
	report.Parameters[param] = value

	assessment := cbc.Assess(report.Parameters, report.Age, report.Sex, nil)
	report.Assessment = assessment.Assessed

	parameters, err := json.Marshal(report.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parameters: %w", err)
	}

	assessed, err := json.Marshal(report.Assessment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assessment: %w", err)
	}

	_, err = pool.Exec(ctx, `
		UPDATE reports
		SET parameters = $1, assessment = $2
		WHERE id = $3
	`, parameters, assessed, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return report, nil
}

// DeleteUserReports removes all reports for a user.
func DeleteUserReports(ctx context.Context, userID uuid.UUID) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `
		DELETE FROM reports
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}

	return tag.RowsAffected(), nil
}

// GetParameterHistory returns the values of one parameter across a
// user's reports in chronological order, for the trends view.
func GetParameterHistory(ctx context.Context, userID uuid.UUID, param cbc.Parameter, limit int) ([]ParameterPoint, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	reports, err := GetUserReports(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	// GetUserReports returns newest first; trends read oldest first.
	var points []ParameterPoint
	for i := len(reports) - 1; i >= 0; i-- {
		report := reports[i]
		value, ok := report.Parameters[param]
		if !ok || value == nil {
			continue
		}

		points = append(points, ParameterPoint{
			ReportID:   report.ID,
			ReportDate: report.CreatedAt,
			Value:      *value,
		})
	}

	return points, nil
}
