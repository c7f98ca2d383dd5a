/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/hemolens/hemolens/cbc"
)

// User represents a person whose reports are tracked. Users are
// identified by display name only; there is no authentication.
type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Report represents one analyzed CBC report. The extracted parameters
// and the computed assessment are stored as JSONB so historical
// reports replay without re-parsing the source text.
type Report struct {
	ID         uuid.UUID                           `db:"id"`
	UserID     uuid.UUID                           `db:"user_id"`
	Filename   *string                             `db:"filename"`
	SourceText string                              `db:"source_text"`
	Age        *int                                `db:"age"`
	Sex        *string                             `db:"sex"`
	Parameters map[cbc.Parameter]*float64          `db:"parameters"`
	Assessment map[cbc.Parameter]cbc.AssessedValue `db:"assessment"`
	CreatedAt  time.Time                           `db:"created_at"`
}

// MeasuredCount returns the number of parameters with a value.
func (r *Report) MeasuredCount() int {
	count := 0
	for _, v := range r.Parameters {
		if v != nil {
			count++
		}
	}
	return count
}

// FormatDate formats the report timestamp as YYYY-MM-DD.
func (r *Report) FormatDate() string {
	return r.CreatedAt.Format("2006-01-02")
}

// ChatSender represents who authored a chat turn.
type ChatSender string

// ChatSender values represent supported chat turn authors.
const (
	ChatSenderUser ChatSender = "user"
	ChatSenderBot  ChatSender = "bot"
)

// ChatTurn represents one message in a user's chat history.
type ChatTurn struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	ReportID  *uuid.UUID `db:"report_id"`
	Sender    ChatSender `db:"sender"`
	Message   string     `db:"message"`
	CreatedAt time.Time  `db:"created_at"`
}

// ParameterPoint represents a single parameter value from one report,
// used by the trends view.
type ParameterPoint struct {
	ReportID   uuid.UUID `db:"report_id"`
	ReportDate time.Time `db:"created_at"`
	Value      float64
}
