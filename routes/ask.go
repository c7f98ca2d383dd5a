/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/hemolens/hemolens/chat"
	"github.com/hemolens/hemolens/db"
)

// Ask routes a free-text question about the analyzed report to the
// chat engine. Requires an analysis in the session; the chat history
// save is best-effort.
func Ask(c flamego.Context, s session.Session) {
	var request struct {
		Question string `json:"question"`
	}

	if err := json.NewDecoder(c.Request().Body().ReadCloser()).Decode(&request); err != nil {
		writeJSONError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.TrimSpace(request.Question)
	if question == "" {
		writeJSONError(c, http.StatusBadRequest, "question is empty")
		return
	}

	state, ok := requireAnalysis(c, s)
	if !ok {
		return
	}

	answer := chat.Answer(question, state.Report, state.Assessment)

	saveChatTurns(c, s, question, answer)

	writeJSON(c, http.StatusOK, map[string]string{
		"question": question,
		"answer":   answer,
	})
}

// saveChatTurns appends the question/answer pair to the user's stored
// history. Failures are logged, never surfaced to the client.
func saveChatTurns(c flamego.Context, s session.Session, question, answer string) {
	userName := sessionUserName(s)
	if userName == "" {
		return
	}

	ctx := c.Request().Context()

	user, err := db.GetOrCreateUser(ctx, userName)
	if err != nil {
		logger.Warn("Failed to resolve user for chat history", "user", userName, "error", err)
		return
	}

	var reportID *uuid.UUID
	if raw := sessionReportID(s); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			reportID = &id
		}
	}

	for _, turn := range []db.ChatTurn{
		{UserID: user.ID, ReportID: reportID, Sender: db.ChatSenderUser, Message: question},
		{UserID: user.ID, ReportID: reportID, Sender: db.ChatSenderBot, Message: answer},
	} {
		turn := turn
		if err := db.SaveChatTurn(ctx, &turn); err != nil {
			logger.Warn("Failed to save chat turn", "user", userName, "error", err)
			return
		}
	}
}

// ChatHistory returns the user's stored chat turns in order.
func ChatHistory(c flamego.Context, s session.Session) {
	userName := sessionUserName(s)
	if userName == "" {
		writeJSONError(c, http.StatusPreconditionFailed, errMissingUserName.Error())
		return
	}

	ctx := c.Request().Context()

	user, err := db.GetOrCreateUser(ctx, userName)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to resolve user")
		return
	}

	turns, err := db.GetChatHistory(ctx, user.ID, 100)
	if err != nil {
		writeJSONError(c, http.StatusInternalServerError, "failed to load chat history")
		return
	}

	type turnEntry struct {
		Sender  string `json:"sender"`
		Message string `json:"message"`
		At      string `json:"at"`
	}

	entries := make([]turnEntry, 0, len(turns))
	for _, turn := range turns {
		entries = append(entries, turnEntry{
			Sender:  string(turn.Sender),
			Message: turn.Message,
			At:      turn.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	writeJSON(c, http.StatusOK, map[string]interface{}{
		"user":  user.Name,
		"turns": entries,
	})
}
