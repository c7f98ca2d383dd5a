/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveChatTurn appends one message to a user's chat history.
func SaveChatTurn(ctx context.Context, turn *ChatTurn) error {
	if pool == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	err := pool.QueryRow(ctx, `
		INSERT INTO chat_history (user_id, report_id, sender, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, turn.UserID, turn.ReportID, turn.Sender, turn.Message).Scan(&turn.ID, &turn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save chat turn: %w", err)
	}

	return nil
}

// GetChatHistory returns a user's chat turns in chronological order.
func GetChatHistory(ctx context.Context, userID uuid.UUID, limit int) ([]ChatTurn, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = 100
	}

	rows, err := pool.Query(ctx, `
		SELECT id, user_id, report_id, sender, message, created_at
		FROM (
			SELECT id, user_id, report_id, sender, message, created_at
			FROM chat_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var turns []ChatTurn

	for rows.Next() {
		var turn ChatTurn
		if err := rows.Scan(&turn.ID, &turn.UserID, &turn.ReportID, &turn.Sender,
			&turn.Message, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat turn: %w", err)
		}

		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat history: %w", err)
	}

	return turns, nil
}

// ClearChatHistory deletes all chat turns for a user.
func ClearChatHistory(ctx context.Context, userID uuid.UUID) (int64, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	tag, err := pool.Exec(ctx, `
		DELETE FROM chat_history
		WHERE user_id = $1
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear chat history: %w", err)
	}

	return tag.RowsAffected(), nil
}
